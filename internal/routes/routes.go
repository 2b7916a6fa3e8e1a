package routes

import "fmt"

// Dashboard API paths, relative to a resolved API base.
const (
	Health = "/api/health"

	DashboardShops = "/api/dashboard/shops"
)

func ShopProfile(shopID string) string {
	return fmt.Sprintf("%s/%s/profile", DashboardShops, shopID)
}

func ShopTherapists(shopID string) string {
	return fmt.Sprintf("%s/%s/therapists", DashboardShops, shopID)
}

func ShopTherapist(shopID, therapistID string) string {
	return fmt.Sprintf("%s/%s/therapists/%s", DashboardShops, shopID, therapistID)
}

func ShopTherapistsReorder(shopID string) string {
	return fmt.Sprintf("%s/%s/therapists:reorder", DashboardShops, shopID)
}

func ShopNotifications(shopID string) string {
	return fmt.Sprintf("%s/%s/notifications", DashboardShops, shopID)
}

func ShopNotificationsTest(shopID string) string {
	return fmt.Sprintf("%s/%s/notifications/test", DashboardShops, shopID)
}
