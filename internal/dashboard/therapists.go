package dashboard

import (
	"context"
	"net/http"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/validation"
)

// TherapistClient manages the ordered therapist roster of a shop.
type TherapistClient struct {
	api *apiclient.Client
}

func NewTherapistClient(api *apiclient.Client) *TherapistClient {
	return &TherapistClient{api: api}
}

func (c *TherapistClient) List(ctx context.Context, shopID string, opts *apiclient.RequestOptions) apiclient.Result[dtos.TherapistList] {
	ex, err := c.api.Exchange(ctx, http.MethodGet, routes.ShopTherapists(shopID), nil, opts, http.StatusOK)
	return apiclient.MapResult[dtos.TherapistList](ex, err)
}

func (c *TherapistClient) Get(ctx context.Context, shopID, therapistID string, opts *apiclient.RequestOptions) apiclient.Result[dtos.TherapistRecord] {
	ex, err := c.api.Exchange(ctx, http.MethodGet, routes.ShopTherapist(shopID, therapistID), nil, opts, http.StatusOK)
	return apiclient.MapResult[dtos.TherapistRecord](ex, err)
}

func (c *TherapistClient) Create(ctx context.Context, shopID string, draft dtos.TherapistRecord, opts *apiclient.RequestOptions) apiclient.Result[dtos.TherapistRecord] {
	if ferr := validation.TherapistRecord(draft); ferr != nil {
		return apiclient.Invalid[dtos.TherapistRecord](ferr)
	}
	ex, err := c.api.Exchange(ctx, http.MethodPost, routes.ShopTherapists(shopID), draft, opts, http.StatusCreated)
	return apiclient.MapResult[dtos.TherapistRecord](ex, err)
}

// Update submits the full edited record under its last-known updated_at
// token via PATCH.
func (c *TherapistClient) Update(ctx context.Context, shopID string, draft dtos.TherapistRecord, opts *apiclient.RequestOptions) apiclient.Result[dtos.TherapistRecord] {
	if ferr := validation.TherapistRecord(draft); ferr != nil {
		return apiclient.Invalid[dtos.TherapistRecord](ferr)
	}
	return submitVersioned(ctx, c.api, http.MethodPatch, routes.ShopTherapist(shopID, draft.ID), draft, opts, http.StatusOK)
}

func (c *TherapistClient) Delete(ctx context.Context, shopID, therapistID string, opts *apiclient.RequestOptions) apiclient.Result[struct{}] {
	ex, err := c.api.Exchange(ctx, http.MethodDelete, routes.ShopTherapist(shopID, therapistID), nil, opts, http.StatusNoContent)
	return apiclient.MapResult[struct{}](ex, err)
}

// Reorder persists an explicit display_order assignment for every
// therapist and returns the server's canonical roster.
func (c *TherapistClient) Reorder(ctx context.Context, shopID string, assignments []dtos.ReorderAssignment, opts *apiclient.RequestOptions) apiclient.Result[dtos.TherapistList] {
	body := dtos.ReorderRequest{Therapists: assignments}
	ex, err := c.api.Exchange(ctx, http.MethodPost, routes.ShopTherapistsReorder(shopID), body, opts, http.StatusOK)
	return apiclient.MapResult[dtos.TherapistList](ex, err)
}
