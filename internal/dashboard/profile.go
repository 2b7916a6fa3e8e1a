package dashboard

import (
	"context"
	"net/http"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/validation"
)

// ProfileClient reads and mutates the shop-profile resource.
type ProfileClient struct {
	api *apiclient.Client
}

func NewProfileClient(api *apiclient.Client) *ProfileClient {
	return &ProfileClient{api: api}
}

func (c *ProfileClient) Get(ctx context.Context, shopID string, opts *apiclient.RequestOptions) apiclient.Result[dtos.ShopProfile] {
	ex, err := c.api.Exchange(ctx, http.MethodGet, routes.ShopProfile(shopID), nil, opts, http.StatusOK)
	return apiclient.MapResult[dtos.ShopProfile](ex, err)
}

// Update submits an edited profile under its last-known updated_at token.
// Predictably-invalid drafts are rejected before any network call; empty
// menu/staff rows are dropped rather than rejected.
func (c *ProfileClient) Update(ctx context.Context, shopID string, draft dtos.ShopProfile, opts *apiclient.RequestOptions) apiclient.Result[dtos.ShopProfile] {
	validation.NormalizeShopProfile(&draft)
	if ferr := validation.ShopProfile(draft); ferr != nil {
		return apiclient.Invalid[dtos.ShopProfile](ferr)
	}
	return submitVersioned(ctx, c.api, http.MethodPut, routes.ShopProfile(shopID), draft, opts, http.StatusOK)
}

// Create registers a new shop. No version token is involved; the server
// has nothing to conflict with yet.
func (c *ProfileClient) Create(ctx context.Context, draft dtos.ShopProfile, opts *apiclient.RequestOptions) apiclient.Result[dtos.ShopProfile] {
	validation.NormalizeShopProfile(&draft)
	if ferr := validation.ShopProfile(draft); ferr != nil {
		return apiclient.Invalid[dtos.ShopProfile](ferr)
	}
	ex, err := c.api.Exchange(ctx, http.MethodPost, routes.DashboardShops, draft, opts, http.StatusCreated)
	return apiclient.MapResult[dtos.ShopProfile](ex, err)
}
