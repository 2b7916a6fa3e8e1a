package apiclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusaku0324/osakamenesu-sub000/internal/config"
)

func TestCandidatesPreferInternalBase(t *testing.T) {
	r := NewResolver(&config.Config{
		InternalAPIBase: "http://api.internal:8000",
		PublicAPIBase:   "https://api.example.com",
	})
	assert.Equal(t, []string{"http://api.internal:8000", "https://api.example.com"}, r.Candidates())
}

func TestCandidatesPublicOnly(t *testing.T) {
	r := NewResolver(&config.Config{PublicAPIBase: "https://api.example.com"})
	assert.Equal(t, []string{"https://api.example.com"}, r.Candidates())
}

func TestCandidatesNeverEmpty(t *testing.T) {
	r := NewResolver(&config.Config{})
	cands := r.Candidates()
	require.Len(t, cands, 1)
	assert.Equal(t, config.DefaultPublicAPIBase, cands[0])
}

func TestBuildURLAbsoluteBase(t *testing.T) {
	r := NewResolver(&config.Config{PublicAPIBase: "https://api.example.com"})

	assert.Equal(t, "https://api.example.com/api/health",
		r.BuildURL("https://api.example.com", "/api/health"))
	assert.Equal(t, "https://api.example.com/api/health",
		r.BuildURL("https://api.example.com/", "api/health"))
	assert.Equal(t, "//api.example.com/api/health",
		r.BuildURL("//api.example.com", "/api/health"))
}

func TestBuildURLRelativeBaseUsesSiteOrigin(t *testing.T) {
	r := NewResolver(&config.Config{
		PublicAPIBase: "/backend",
		SiteOrigin:    "https://osakamenesu.example/",
	})
	assert.Equal(t, "https://osakamenesu.example/backend/api/health",
		r.BuildURL("/backend", "api/health"))
	assert.Equal(t, "https://osakamenesu.example/api/health",
		r.BuildURL("", "/api/health"))
}
