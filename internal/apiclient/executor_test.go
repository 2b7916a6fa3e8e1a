package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/config"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/testbackend"
)

func startBackend(t *testing.T) (*testbackend.Server, *httptest.Server) {
	t.Helper()
	tb := testbackend.New()
	srv := httptest.NewServer(tb.Handler())
	t.Cleanup(srv.Close)
	return tb, srv
}

func seedShop(tb *testbackend.Server) string {
	return tb.SeedShop(
		dtos.ShopProfile{Name: "Aroma Lily", Area: "難波/日本橋"},
		nil,
		dtos.NotificationSettings{EmailEnabled: true, EmailRecipients: []string{"owner@example.com"}},
	)
}

func TestExchangeFailsOverToSecondBase(t *testing.T) {
	broken, brokenSrv := startBackend(t)
	broken.ForceStatus(http.StatusInternalServerError)
	healthy, healthySrv := startBackend(t)
	shopID := seedShop(healthy)

	client := apiclient.New(&config.Config{
		InternalAPIBase: brokenSrv.URL,
		PublicAPIBase:   healthySrv.URL,
	})

	path := routes.ShopProfile(shopID)
	ex, err := client.Exchange(context.Background(), http.MethodGet, path, nil, nil, http.StatusOK)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)

	// both bases were attempted, in order
	assert.Equal(t, 1, broken.RequestCount(http.MethodGet, path))
	assert.Equal(t, 1, healthy.RequestCount(http.MethodGet, path))
}

func TestExchangeUnreachableBaseFallsThrough(t *testing.T) {
	healthy, healthySrv := startBackend(t)
	shopID := seedShop(healthy)

	deadSrv := httptest.NewServer(http.NotFoundHandler())
	deadURL := deadSrv.URL
	deadSrv.Close() // nothing listens here anymore

	client := apiclient.New(&config.Config{
		InternalAPIBase: deadURL,
		PublicAPIBase:   healthySrv.URL,
		RequestTimeout:  2 * time.Second,
	})

	ex, err := client.Exchange(context.Background(), http.MethodGet, routes.ShopProfile(shopID), nil, nil, http.StatusOK)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)
}

func TestExchangeTerminalStatusStopsFailover(t *testing.T) {
	first, firstSrv := startBackend(t)
	second, secondSrv := startBackend(t)

	client := apiclient.New(&config.Config{
		InternalAPIBase: firstSrv.URL,
		PublicAPIBase:   secondSrv.URL,
	})

	// unknown shop: 404 is business-final, the second base must not be tried
	path := routes.ShopProfile("missing-shop")
	ex, err := client.Exchange(context.Background(), http.MethodGet, path, nil, nil, http.StatusOK)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, ex.StatusCode)
	assert.Equal(t, 1, first.RequestCount(http.MethodGet, path))
	assert.Equal(t, 0, second.RequestCount(http.MethodGet, path))
}

func TestExchangeAllBasesFailed(t *testing.T) {
	first, firstSrv := startBackend(t)
	second, secondSrv := startBackend(t)
	first.ForceStatus(http.StatusInternalServerError)
	second.ForceStatus(http.StatusBadGateway)

	client := apiclient.New(&config.Config{
		InternalAPIBase: firstSrv.URL,
		PublicAPIBase:   secondSrv.URL,
	})

	_, err := client.Exchange(context.Background(), http.MethodGet, routes.Health, nil, nil, http.StatusOK)
	require.Error(t, err)

	var exErr *apiclient.ExchangeError
	require.ErrorAs(t, err, &exErr)
	assert.Contains(t, exErr.Error(), "all API bases failed")

	// and the executor error maps onto the generic error variant
	res := apiclient.MapResult[dtos.ShopProfile](apiclient.Exchange{}, err)
	assert.Equal(t, apiclient.StatusError, res.Status)
}

func TestExchangeCancelledContext(t *testing.T) {
	_, srv := startBackend(t)
	client := apiclient.New(&config.Config{PublicAPIBase: srv.URL})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Exchange(ctx, http.MethodGet, routes.Health, nil, nil, http.StatusOK)
	require.ErrorIs(t, err, context.Canceled)
}

func TestExchangeForwardsSessionCookie(t *testing.T) {
	tb, srv := startBackend(t)
	shopID := seedShop(tb)
	tb.RequireSession("session=op-123")

	client := apiclient.New(&config.Config{PublicAPIBase: srv.URL})
	path := routes.ShopProfile(shopID)

	ex, err := client.Exchange(context.Background(), http.MethodGet, path, nil, nil, http.StatusOK)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, ex.StatusCode)

	opts := &apiclient.RequestOptions{SessionCookie: "session=op-123"}
	ex, err = client.Exchange(context.Background(), http.MethodGet, path, nil, opts, http.StatusOK)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, ex.StatusCode)
}
