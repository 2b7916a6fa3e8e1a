package apiclient

import (
	"strings"

	"github.com/yusaku0324/osakamenesu-sub000/internal/config"
)

// Resolver produces the ordered list of candidate API bases and turns a
// relative API path into an absolute request URL. The internal-network base
// comes first when configured so in-cluster calls skip the public edge.
type Resolver struct {
	bases      []string
	siteOrigin string
}

func NewResolver(cfg *config.Config) *Resolver {
	var bases []string
	if cfg.InternalAPIBase != "" {
		bases = append(bases, cfg.InternalAPIBase)
	}
	if cfg.PublicAPIBase != "" {
		bases = append(bases, cfg.PublicAPIBase)
	}
	if len(bases) == 0 {
		bases = append(bases, config.DefaultPublicAPIBase)
	}
	origin := cfg.SiteOrigin
	if origin == "" {
		origin = config.DefaultSiteOrigin
	}
	return &Resolver{bases: bases, siteOrigin: origin}
}

// Candidates returns the bases in preference order. Never empty.
func (r *Resolver) Candidates() []string {
	out := make([]string, len(r.bases))
	copy(out, r.bases)
	return out
}

// BuildURL joins base and path with normalized slashes. An already-absolute
// base passes through untouched; a relative base is resolved against the
// site origin so the result is usable from both server and browser contexts.
func (r *Resolver) BuildURL(base, path string) string {
	p := "/" + strings.TrimLeft(path, "/")
	if isAbsoluteBase(base) {
		return strings.TrimRight(base, "/") + p
	}
	prefix := strings.Trim(base, "/")
	if prefix != "" {
		prefix = "/" + prefix
	}
	return strings.TrimRight(r.siteOrigin, "/") + prefix + p
}

func isAbsoluteBase(base string) bool {
	return strings.HasPrefix(base, "http://") ||
		strings.HasPrefix(base, "https://") ||
		strings.HasPrefix(base, "//")
}
