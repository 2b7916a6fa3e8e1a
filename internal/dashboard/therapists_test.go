package dashboard_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dashboard"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
)

func TestTherapistListOrderedByDisplayOrder(t *testing.T) {
	tb, api := newEnv(t)
	shopID := tb.SeedShop(seedProfile(), seedTherapists("Yua", "Rin", "Mio"), seedNotifications())
	client := dashboard.NewTherapistClient(api)

	res := client.List(context.Background(), shopID, nil)
	require.Equal(t, apiclient.StatusSuccess, res.Status)
	require.Len(t, res.Data.Therapists, 3)
	assert.Equal(t, []int{10, 20, 30}, displayOrders(res.Data.Therapists))
}

func TestTherapistCreateAppendsAtEnd(t *testing.T) {
	tb, api := newEnv(t)
	shopID := tb.SeedShop(seedProfile(), seedTherapists("Yua", "Rin"), seedNotifications())
	client := dashboard.NewTherapistClient(api)

	res := client.Create(context.Background(), shopID, dtos.TherapistRecord{Name: "Mio", Specialties: []string{"アロマ"}}, nil)
	require.Equal(t, apiclient.StatusSuccess, res.Status)
	assert.NotEmpty(t, res.Data.ID)
	assert.Equal(t, 30, res.Data.DisplayOrder)
	assert.NotEmpty(t, res.Data.UpdatedAt)
}

func TestTherapistUpdateConflict(t *testing.T) {
	tb, api := newEnv(t)
	shopID := tb.SeedShop(seedProfile(), seedTherapists("Yua"), seedNotifications())
	client := dashboard.NewTherapistClient(api)
	ctx := context.Background()

	listed := client.List(ctx, shopID, nil)
	require.Equal(t, apiclient.StatusSuccess, listed.Status)
	rec := listed.Data.Therapists[0]

	winner := rec
	winner.Biography = "updated by another session"
	require.Equal(t, apiclient.StatusSuccess, client.Update(ctx, shopID, winner, nil).Status)

	stale := rec
	stale.Biography = "stale edit"
	res := client.Update(ctx, shopID, stale, nil)
	require.Equal(t, apiclient.StatusConflict, res.Status)
	require.NotNil(t, res.Current)
	assert.Equal(t, "updated by another session", res.Current.Biography)
}

func TestTherapistDelete(t *testing.T) {
	tb, api := newEnv(t)
	shopID := tb.SeedShop(seedProfile(), seedTherapists("Yua", "Rin"), seedNotifications())
	client := dashboard.NewTherapistClient(api)
	ctx := context.Background()

	rec := client.List(ctx, shopID, nil).Data.Therapists[0]
	res := client.Delete(ctx, shopID, rec.ID, nil)
	require.Equal(t, apiclient.StatusSuccess, res.Status)

	left := client.List(ctx, shopID, nil)
	require.Len(t, left.Data.Therapists, 1)
	assert.Equal(t, "Rin", left.Data.Therapists[0].Name)

	gone := client.Get(ctx, shopID, rec.ID, nil)
	assert.Equal(t, apiclient.StatusNotFound, gone.Status)
}

func TestTherapistReorderPersistsExplicitAssignment(t *testing.T) {
	tb, api := newEnv(t)
	shopID := tb.SeedShop(seedProfile(), seedTherapists("Yua", "Rin", "Mio"), seedNotifications())
	client := dashboard.NewTherapistClient(api)
	ctx := context.Background()

	roster := client.List(ctx, shopID, nil).Data.Therapists
	assignments := []dtos.ReorderAssignment{
		{ID: roster[2].ID, DisplayOrder: 10},
		{ID: roster[1].ID, DisplayOrder: 20},
		{ID: roster[0].ID, DisplayOrder: 30},
	}
	res := client.Reorder(ctx, shopID, assignments, nil)
	require.Equal(t, apiclient.StatusSuccess, res.Status)
	assert.Equal(t, []string{"Mio", "Rin", "Yua"}, names(res.Data.Therapists))
	assert.Equal(t, []int{10, 20, 30}, displayOrders(res.Data.Therapists))
}

func displayOrders(recs []dtos.TherapistRecord) []int {
	out := make([]int, len(recs))
	for i, r := range recs {
		out[i] = r.DisplayOrder
	}
	return out
}

func names(recs []dtos.TherapistRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Name
	}
	return out
}
