package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	JWTSecret    string
	JWTExpiresIn time.Duration
	CORSOrigin   string
	Env          string
	RateLimit    int
	RateWindow   time.Duration
}

// Development reports whether error responses may carry internal detail.
func (c Config) Development() bool { return c.Env == "development" }

// ParseFlags validates flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var expiresIn string
	var rateWindowMin int

	fs := flag.NewFlagSet("enquete", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CORSOrigin, "cors", "", "Allowed CORS origin")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", "", "JWT signing secret (prefer env)")
	fs.StringVar(&expiresIn, "jwt-expires", "", "JWT lifetime, e.g. 24h (prefer env)")

	fs.IntVar(&cfg.RateLimit, "rate-limit", 0, "Max requests per client per window")
	fs.IntVar(&rateWindowMin, "rate-window", 0, "Rate limit window in minutes")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3000 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "postgres"
		}
	}
	if cfg.DatabaseType != "postgres" && cfg.DatabaseType != "sqlite" {
		return Config{}, errors.New("database type must be postgres or sqlite")
	}

	// Secrets - MUST be provided
	if cfg.JWTSecret == "" {
		cfg.JWTSecret = os.Getenv("JWT_SECRET")
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET required")
	}

	if expiresIn == "" {
		expiresIn = os.Getenv("JWT_EXPIRES_IN")
		if expiresIn == "" {
			expiresIn = "24h"
		}
	}
	dur, err := time.ParseDuration(expiresIn)
	if err != nil || dur <= 0 {
		return Config{}, errors.New("invalid JWT_EXPIRES_IN value")
	}
	cfg.JWTExpiresIn = dur

	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = os.Getenv("CORS_ORIGIN")
		if cfg.CORSOrigin == "" {
			cfg.CORSOrigin = "*"
		}
	}

	cfg.Env = os.Getenv("ENV")

	if cfg.RateLimit == 0 {
		if v := os.Getenv("RATE_LIMIT"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid RATE_LIMIT env variable")
			}
			cfg.RateLimit = n
		} else {
			cfg.RateLimit = 100
		}
	}
	if rateWindowMin == 0 {
		if v := os.Getenv("RATE_WINDOW_MINUTES"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return Config{}, errors.New("invalid RATE_WINDOW_MINUTES env variable")
			}
			rateWindowMin = n
		} else {
			rateWindowMin = 15
		}
	}
	cfg.RateWindow = time.Duration(rateWindowMin) * time.Minute

	return cfg, nil
}
