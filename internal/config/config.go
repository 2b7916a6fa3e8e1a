package config

import (
	"os"
	"time"

	"github.com/yusaku0324/osakamenesu-sub000/internal/utils"
)

const (
	DefaultPublicAPIBase = "http://localhost:8000"
	DefaultSiteOrigin    = "http://localhost:3000"

	DefaultRequestTimeout = 15 * time.Second
)

// Config is built once at startup and passed down explicitly; nothing in
// this module reads the process environment after FromEnv returns, so tests
// can construct a Config literal instead of mutating env vars.
type Config struct {
	// InternalAPIBase is tried first when set (in-cluster address that
	// bypasses the public edge). May be empty.
	InternalAPIBase string
	// PublicAPIBase is the fallback (and default) API address.
	PublicAPIBase string
	// SiteOrigin resolves relative bases into absolute URLs so the same
	// client works from both server-render and browser contexts.
	SiteOrigin string

	RequestTimeout time.Duration
}

// FromEnv loads configuration from the process environment. A missing
// variable degrades to a default rather than failing: the client must be
// constructible even on a bare dev machine.
func FromEnv() *Config {
	cfg := &Config{
		InternalAPIBase: os.Getenv("API_INTERNAL_BASE_URL"),
		PublicAPIBase:   os.Getenv("API_PUBLIC_BASE_URL"),
		SiteOrigin:      os.Getenv("SITE_ORIGIN"),
		RequestTimeout:  DefaultRequestTimeout,
	}
	if cfg.PublicAPIBase == "" {
		cfg.PublicAPIBase = DefaultPublicAPIBase
	}
	if cfg.SiteOrigin == "" {
		cfg.SiteOrigin = DefaultSiteOrigin
	}

	if cfg.InternalAPIBase != "" {
		utils.Logger.Debugf("API reachable via internal base %s (public fallback %s)", cfg.InternalAPIBase, cfg.PublicAPIBase)
	} else {
		utils.Logger.Debugf("API reachable via public base %s only", cfg.PublicAPIBase)
	}

	return cfg
}
