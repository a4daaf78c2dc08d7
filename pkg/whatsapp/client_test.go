package whatsapp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/whatsapp"
)

func TestNewClientConfigValidation(t *testing.T) {
	t.Parallel()

	_, err := whatsapp.NewClient(whatsapp.Config{AccessToken: "token"})
	require.ErrorIs(t, err, whatsapp.ErrInvalidConfig)

	_, err = whatsapp.NewClient(whatsapp.Config{PhoneNumberID: "123"})
	require.ErrorIs(t, err, whatsapp.ErrInvalidConfig)

	_, err = whatsapp.NewClient(whatsapp.Config{PhoneNumberID: "123", AccessToken: "token"})
	require.NoError(t, err)
}

func TestSendTemplate(t *testing.T) {
	t.Parallel()

	var captured struct {
		path    string
		auth    string
		payload map[string]any
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		captured.auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured.payload))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	sender, err := whatsapp.NewClient(whatsapp.Config{
		PhoneNumberID: "5550001",
		AccessToken:   "test-token",
		BaseURL:       srv.URL,
		CountryCode:   "91",
	})
	require.NoError(t, err)

	err = sender.SendTemplate(context.Background(), whatsapp.SendTemplateParams{
		To:         "9999999999",
		Template:   "aastha_chits_credentials",
		BodyParams: []string{"A", "USR1234", "secret", "https://app.example.com/login"},
	})
	require.NoError(t, err)

	assert.Equal(t, "/5550001/messages", captured.path)
	assert.Equal(t, "Bearer test-token", captured.auth)
	assert.Equal(t, "whatsapp", captured.payload["messaging_product"])
	assert.Equal(t, "919999999999", captured.payload["to"])

	tpl := captured.payload["template"].(map[string]any)
	assert.Equal(t, "aastha_chits_credentials", tpl["name"])
	components := tpl["components"].([]any)
	require.Len(t, components, 1)
	params := components[0].(map[string]any)["parameters"].([]any)
	assert.Len(t, params, 4)
}

func TestSendTemplateAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]any{"message": "invalid token", "code": 190},
		})
	}))
	defer srv.Close()

	sender, err := whatsapp.NewClient(whatsapp.Config{
		PhoneNumberID: "5550001",
		AccessToken:   "expired",
		BaseURL:       srv.URL,
	})
	require.NoError(t, err)

	err = sender.SendTemplate(context.Background(), whatsapp.SendTemplateParams{
		To:       "9999999999",
		Template: "aastha_chits_credentials",
	})
	require.ErrorIs(t, err, whatsapp.ErrFailedToSendMessage)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestSendTemplateParamsValidate(t *testing.T) {
	t.Parallel()

	err := whatsapp.SendTemplateParams{Template: "t"}.Validate()
	require.ErrorIs(t, err, whatsapp.ErrInvalidParams)

	err = whatsapp.SendTemplateParams{To: "9999999999"}.Validate()
	require.ErrorIs(t, err, whatsapp.ErrInvalidParams)

	err = whatsapp.SendTemplateParams{To: "9999999999", Template: "t"}.Validate()
	require.NoError(t, err)
}
