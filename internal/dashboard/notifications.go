package dashboard

import (
	"context"
	"net/http"

	"github.com/yusaku0324/osakamenesu-sub000/internal/apiclient"
	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
	"github.com/yusaku0324/osakamenesu-sub000/internal/routes"
	"github.com/yusaku0324/osakamenesu-sub000/internal/validation"
)

// NotificationClient reads and mutates a shop's notification settings.
type NotificationClient struct {
	api *apiclient.Client
}

func NewNotificationClient(api *apiclient.Client) *NotificationClient {
	return &NotificationClient{api: api}
}

func (c *NotificationClient) Get(ctx context.Context, shopID string, opts *apiclient.RequestOptions) apiclient.Result[dtos.NotificationSettings] {
	ex, err := c.api.Exchange(ctx, http.MethodGet, routes.ShopNotifications(shopID), nil, opts, http.StatusOK)
	return apiclient.MapResult[dtos.NotificationSettings](ex, err)
}

func (c *NotificationClient) Update(ctx context.Context, shopID string, draft dtos.NotificationSettings, opts *apiclient.RequestOptions) apiclient.Result[dtos.NotificationSettings] {
	if ferr := validation.NotificationSettings(draft); ferr != nil {
		return apiclient.Invalid[dtos.NotificationSettings](ferr)
	}
	return submitVersioned(ctx, c.api, http.MethodPut, routes.ShopNotifications(shopID), draft, opts, http.StatusOK)
}

// SendTest asks the backend to deliver a test notification over the
// currently saved channels.
func (c *NotificationClient) SendTest(ctx context.Context, shopID string, opts *apiclient.RequestOptions) apiclient.Result[struct{}] {
	ex, err := c.api.Exchange(ctx, http.MethodPost, routes.ShopNotificationsTest(shopID), nil, opts, http.StatusNoContent)
	return apiclient.MapResult[struct{}](ex, err)
}
