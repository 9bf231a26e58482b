package models

import (
	"encoding/json"
	"strings"
)

// RawOptions is the wire form of a poll's options. Clients send either a
// JSON array of strings or a single newline-delimited string; both decode to
// the same slice.
type RawOptions []string

func (o *RawOptions) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*o = RawOptions(strings.Split(single, "\n"))
		return nil
	}

	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return err
	}
	*o = RawOptions(many)
	return nil
}

// Values returns the trimmed, non-empty option texts in submission order.
func (o RawOptions) Values() []string {
	out := make([]string, 0, len(o))
	for _, v := range o {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// HasDuplicates reports whether two options share the same text after
// trimming, case-sensitively.
func (o RawOptions) HasDuplicates() bool {
	seen := make(map[string]struct{}, len(o))
	for _, v := range o.Values() {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}
