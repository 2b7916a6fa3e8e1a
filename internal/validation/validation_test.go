package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yusaku0324/osakamenesu-sub000/internal/dtos"
)

func validSettings() dtos.NotificationSettings {
	return dtos.NotificationSettings{
		EmailEnabled:    true,
		EmailRecipients: []string{"owner@example.com"},
	}
}

func TestNotificationSettingsValid(t *testing.T) {
	assert.Nil(t, NotificationSettings(validSettings()))
}

func TestNotificationSettingsNoChannel(t *testing.T) {
	err := NotificationSettings(dtos.NotificationSettings{})
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "at least one notification channel")
}

func TestRecipientsCaseInsensitiveDuplicate(t *testing.T) {
	s := validSettings()
	s.EmailRecipients = SplitRecipients("a@x.com, A@x.com")
	err := NotificationSettings(s)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields["email_recipients"], "duplicate recipient")
}

func TestRecipientsMaxFive(t *testing.T) {
	s := validSettings()
	s.EmailRecipients = SplitRecipients("a@x.com,b@x.com,c@x.com,d@x.com,e@x.com,f@x.com")
	err := NotificationSettings(s)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields["email_recipients"], "at most 5")

	s.EmailRecipients = SplitRecipients("a@x.com,b@x.com,c@x.com,d@x.com,e@x.com")
	assert.Nil(t, NotificationSettings(s))
}

func TestRecipientsRequiredAndSyntax(t *testing.T) {
	s := validSettings()
	s.EmailRecipients = []string{"  ", ""}
	err := NotificationSettings(s)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields["email_recipients"], "at least one recipient")

	s.EmailRecipients = []string{"not-an-email"}
	err = NotificationSettings(s)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields["email_recipients"], "not a valid email")
}

func TestLineTokenRules(t *testing.T) {
	s := dtos.NotificationSettings{LineEnabled: true, LineToken: strings.Repeat("a", 43)}
	assert.Nil(t, NotificationSettings(s))

	s.LineToken = strings.Repeat("a", 39) // too short
	require.NotNil(t, NotificationSettings(s))

	s.LineToken = strings.Repeat("a", 42) + "!" // bad character
	require.NotNil(t, NotificationSettings(s))

	s.LineToken = strings.Repeat("a", 65) // too long
	require.NotNil(t, NotificationSettings(s))
}

func TestSlackWebhookPrefix(t *testing.T) {
	s := dtos.NotificationSettings{SlackEnabled: true, SlackWebhookURL: "https://hooks.slack.com/services/T0/B0/x"}
	assert.Nil(t, NotificationSettings(s))

	s.SlackWebhookURL = "https://evil.example/hook"
	err := NotificationSettings(s)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields["slack_webhook_url"], "hooks.slack.com")
}

func TestShopProfileRequiredFields(t *testing.T) {
	p := dtos.ShopProfile{Name: "Aroma Lily", Area: "梅田"}
	assert.Nil(t, ShopProfile(p))

	p.Area = ""
	err := ShopProfile(p)
	require.NotNil(t, err)
	assert.Equal(t, "this field is required", err.Fields["area"])
}

func TestShopProfilePriceRange(t *testing.T) {
	p := dtos.ShopProfile{Name: "Aroma Lily", Area: "梅田", PriceMin: 12000, PriceMax: 10000}
	err := ShopProfile(p)
	require.NotNil(t, err)
	assert.Contains(t, err.Fields["price_max"], "price_min")

	p.PriceMax = 12000 // equal is fine
	assert.Nil(t, ShopProfile(p))

	p.PriceMax = 0 // unset max is fine
	assert.Nil(t, ShopProfile(p))
}

func TestNormalizeShopProfileDropsEmptyRows(t *testing.T) {
	p := dtos.ShopProfile{
		Name: " Aroma Lily ",
		Area: "梅田",
		Menus: []dtos.MenuItem{
			{Name: "アロマ60分", Price: 10000},
			{Name: "   "},
		},
		Staff: []dtos.StaffRow{
			{Name: ""},
			{Name: " Mio "},
		},
	}
	NormalizeShopProfile(&p)

	assert.Equal(t, "Aroma Lily", p.Name)
	require.Len(t, p.Menus, 1)
	assert.Equal(t, "アロマ60分", p.Menus[0].Name)
	require.Len(t, p.Staff, 1)
	assert.Equal(t, "Mio", p.Staff[0].Name)
}

func TestSplitRecipients(t *testing.T) {
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, SplitRecipients(" a@x.com , b@x.com ,"))
	assert.Empty(t, SplitRecipients("  ,  "))
}
