package email_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aasthachits/chitfund/pkg/email"
)

func TestSendEmailParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		params  email.SendEmailParams
		wantErr bool
	}{
		{
			name: "valid",
			params: email.SendEmailParams{
				SendTo:   "member@example.com",
				Subject:  "Your Credentials",
				BodyHTML: "<p>hello</p>",
			},
		},
		{
			name: "missing recipient",
			params: email.SendEmailParams{
				Subject:  "Your Credentials",
				BodyHTML: "<p>hello</p>",
			},
			wantErr: true,
		},
		{
			name: "malformed recipient",
			params: email.SendEmailParams{
				SendTo:   "not-an-address",
				Subject:  "Your Credentials",
				BodyHTML: "<p>hello</p>",
			},
			wantErr: true,
		},
		{
			name: "missing subject",
			params: email.SendEmailParams{
				SendTo:   "member@example.com",
				BodyHTML: "<p>hello</p>",
			},
			wantErr: true,
		},
		{
			name: "missing body",
			params: email.SendEmailParams{
				SendTo:  "member@example.com",
				Subject: "Your Credentials",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.params.Validate()
			if tt.wantErr {
				require.ErrorIs(t, err, email.ErrInvalidParams)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestNewPostmarkClientConfigValidation(t *testing.T) {
	t.Parallel()

	valid := email.Config{
		PostmarkServerToken:  "server-token",
		PostmarkAccountToken: "account-token",
		SenderEmail:          "no-reply@aasthachits.com",
		SupportEmail:         "support@aasthachits.com",
	}

	_, err := email.NewPostmarkClient(valid)
	require.NoError(t, err)

	for name, mutate := range map[string]func(*email.Config){
		"missing server token":  func(c *email.Config) { c.PostmarkServerToken = "" },
		"missing account token": func(c *email.Config) { c.PostmarkAccountToken = "" },
		"missing sender":        func(c *email.Config) { c.SenderEmail = "" },
		"invalid sender":        func(c *email.Config) { c.SenderEmail = "bogus" },
		"missing support":       func(c *email.Config) { c.SupportEmail = "" },
	} {
		t.Run(name, func(t *testing.T) {
			cfg := valid
			mutate(&cfg)
			_, err := email.NewPostmarkClient(cfg)
			require.ErrorIs(t, err, email.ErrInvalidConfig)
		})
	}
}

func TestDevSenderWritesFiles(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	sender := email.NewDevSender(dir)

	err := sender.SendEmail(context.Background(), email.SendEmailParams{
		SendTo:   "member@example.com",
		Subject:  "Transaction Completed",
		BodyHTML: "<h2>Hello</h2>",
		Tag:      "transaction-status",
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	var htmlFile, jsonFile string
	for _, e := range entries {
		switch filepath.Ext(e.Name()) {
		case ".html":
			htmlFile = filepath.Join(dir, e.Name())
		case ".json":
			jsonFile = filepath.Join(dir, e.Name())
		}
	}
	require.NotEmpty(t, htmlFile)
	require.NotEmpty(t, jsonFile)

	body, err := os.ReadFile(htmlFile)
	require.NoError(t, err)
	assert.Equal(t, "<h2>Hello</h2>", string(body))

	meta, err := os.ReadFile(jsonFile)
	require.NoError(t, err)
	var parsed map[string]any
	require.NoError(t, json.Unmarshal(meta, &parsed))
	assert.Equal(t, "member@example.com", parsed["send_to"])
	assert.True(t, strings.Contains(filepath.Base(htmlFile), "transaction-status"))
}
