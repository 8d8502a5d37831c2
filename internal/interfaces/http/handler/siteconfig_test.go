package handler

import (
	"net/http"
	"testing"

	"github.com/podplatform/backend/internal/domain/siteconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func settingsByKey(settings []siteconfig.Setting) map[string]siteconfig.Setting {
	out := make(map[string]siteconfig.Setting, len(settings))
	for _, s := range settings {
		out[s.Key] = s
	}
	return out
}

func TestSiteConfigHandler_SeedsDefaults(t *testing.T) {
	env := newTestEnv(t)
	r := env.engine(false)

	w := request(r, http.MethodGet, "/api/v1/site-config", nil)

	require.Equal(t, http.StatusOK, w.Code)
	settings := settingsByKey(decodeAs[[]siteconfig.Setting](t, w).Data)
	require.Len(t, settings, 4)
	assert.Equal(t, "Transform Your Art into Global Brands", settings["home.hero.title"].Value)
	assert.Equal(t, "textarea", settings["home.hero.subtitle"].Type)
	assert.Equal(t, "Get started", settings["home.cta.primary"].Value)
}

func TestSiteConfigHandler_BulkUpdate(t *testing.T) {
	env := newTestEnv(t)
	r := env.engine(false)

	w := request(r, http.MethodPost, "/api/v1/admin/site-config", []SettingRequest{
		{Key: "home.hero.title", Value: "Print Anything"},
		{Key: "footer.note", Value: "Made in Leeds"},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, 2, decodeAs[BulkUpdateResponse](t, w).Data.Updated)

	w = request(r, http.MethodGet, "/api/v1/admin/site-config", nil)
	settings := settingsByKey(decodeAs[[]siteconfig.Setting](t, w).Data)
	assert.Equal(t, "Print Anything", settings["home.hero.title"].Value)
	assert.Equal(t, "general", settings["footer.note"].Group)
	assert.Equal(t, "text", settings["footer.note"].Type)

	w = request(r, http.MethodPost, "/api/v1/admin/site-config", `[{"key":"","value":"x"}]`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSiteConfigHandler_PaymentConfig(t *testing.T) {
	env := newTestEnv(t)
	r := env.engine(false)

	w := request(r, http.MethodGet, "/api/v1/admin/config/payment", nil)
	require.Equal(t, http.StatusOK, w.Code)
	cfg := decodeAs[siteconfig.PaymentConfig](t, w).Data
	assert.True(t, cfg.StripeEnabled)
	assert.True(t, cfg.PayPalEnabled)

	w = request(r, http.MethodPost, "/api/v1/admin/config/payment", siteconfig.PaymentConfig{
		StripeEnabled:   true,
		StripePublicKey: "pk_test_abc",
		StripeSecretKey: "sk_test_51Habcdef1234",
		PayPalEnabled:   true,
	})
	require.Equal(t, http.StatusOK, w.Code)
	cfg = decodeAs[siteconfig.PaymentConfig](t, w).Data
	assert.Equal(t, "sk_t****1234", cfg.StripeSecretKey)
	assert.Equal(t, "pk_test_abc", cfg.StripePublicKey)

	// posting the masked value back keeps the stored secret
	cfg.PayPalEnabled = false
	w = request(r, http.MethodPost, "/api/v1/admin/config/payment", cfg)
	require.Equal(t, http.StatusOK, w.Code)

	stored, err := env.settings.LoadPaymentConfig(t.Context())
	require.NoError(t, err)
	assert.Equal(t, "sk_test_51Habcdef1234", stored.StripeSecretKey)
	assert.False(t, stored.PayPalEnabled)
}

func TestSiteConfigHandler_PublicHidesPaymentSettings(t *testing.T) {
	env := newTestEnv(t)
	r := env.engine(false)

	w := request(r, http.MethodPost, "/api/v1/admin/config/payment", siteconfig.PaymentConfig{
		StripeEnabled:   true,
		StripeSecretKey: "sk_live_secretvalue",
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = request(r, http.MethodGet, "/api/v1/site-config", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "sk_live")
	for _, s := range decodeAs[[]siteconfig.Setting](t, w).Data {
		assert.NotEqual(t, siteconfig.PaymentGroup, s.Group, s.Key)
	}
}
