package dashboard_test

import (
	"net/http/httptest"
	"testing"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/config"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/testbackend"
)

// newEnv starts one in-memory backend and a client pointed at it.
func newEnv(t *testing.T) (*testbackend.Server, *apiclient.Client) {
	t.Helper()
	tb := testbackend.New()
	srv := httptest.NewServer(tb.Handler())
	t.Cleanup(srv.Close)
	return tb, apiclient.New(&config.Config{PublicAPIBase: srv.URL})
}

func seedProfile() dtos.ShopProfile {
	return dtos.ShopProfile{
		Name:     "Aroma Lily",
		Area:     "難波/日本橋",
		Address:  "大阪市中央区1-2-3",
		PriceMin: 10000,
		PriceMax: 18000,
		Menus: []dtos.MenuItem{
			{Name: "アロマ60分", Price: 10000, DurationMin: 60},
			{Name: "アロマ90分", Price: 14000, DurationMin: 90},
		},
	}
}

func seedTherapists(names ...string) []dtos.TherapistRecord {
	out := make([]dtos.TherapistRecord, len(names))
	for i, n := range names {
		out[i] = dtos.TherapistRecord{Name: n}
	}
	return out
}

func seedNotifications() dtos.NotificationSettings {
	return dtos.NotificationSettings{
		EmailEnabled:    true,
		EmailRecipients: []string{"owner@example.com"},
	}
}
