// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package jobs runs background maintenance work. The only job today is the
// hourly Sweeper that flips ativa=false on polls whose dataFim has passed.
package jobs
