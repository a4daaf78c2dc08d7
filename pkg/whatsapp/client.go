package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// MessageSender represents the outbound WhatsApp capability.
type MessageSender interface {
	SendTemplate(ctx context.Context, params SendTemplateParams) error
}

// SendTemplateParams describes one template message.
type SendTemplateParams struct {
	To         string   // Recipient phone number without country code
	Template   string   // Pre-approved template name
	BodyParams []string // Positional text parameters for the template body
}

// Validate checks the parameters before any network call is made.
func (p SendTemplateParams) Validate() error {
	if p.To == "" {
		return fmt.Errorf("%w: To is required", ErrInvalidParams)
	}
	if p.Template == "" {
		return fmt.Errorf("%w: Template is required", ErrInvalidParams)
	}
	return nil
}

type client struct {
	httpClient *http.Client
	config     Config
}

// Option configures the client.
type Option func(*client)

// WithHTTPClient sets a custom HTTP client, primarily for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewClient creates a WhatsApp Cloud API sender. Credentials are validated
// up front so a misconfigured service fails at startup.
func NewClient(cfg Config, opts ...Option) (MessageSender, error) {
	if cfg.PhoneNumberID == "" {
		return nil, fmt.Errorf("%w: PhoneNumberID is required", ErrInvalidConfig)
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: AccessToken is required", ErrInvalidConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://graph.facebook.com/v18.0"
	}
	if cfg.TemplateLanguage == "" {
		cfg.TemplateLanguage = "en"
	}

	c := &client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		config:     cfg,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// MustNewClient creates a WhatsApp client that panics on invalid config.
func MustNewClient(cfg Config, opts ...Option) MessageSender {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// Cloud API request/response shapes. Only the fields this service touches.

type templateRequest struct {
	MessagingProduct string   `json:"messaging_product"`
	To               string   `json:"to"`
	Type             string   `json:"type"`
	Template         template `json:"template"`
}

type template struct {
	Name       string      `json:"name"`
	Language   language    `json:"language"`
	Components []component `json:"components,omitempty"`
}

type language struct {
	Code string `json:"code"`
}

type component struct {
	Type       string      `json:"type"`
	Parameters []parameter `json:"parameters,omitempty"`
}

type parameter struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// SendTemplate sends one pre-approved template message through the Cloud API.
func (c *client) SendTemplate(ctx context.Context, params SendTemplateParams) error {
	if err := params.Validate(); err != nil {
		return err
	}

	body := templateRequest{
		MessagingProduct: "whatsapp",
		To:               c.config.CountryCode + params.To,
		Type:             "template",
		Template: template{
			Name:     params.Template,
			Language: language{Code: c.config.TemplateLanguage},
		},
	}
	if len(params.BodyParams) > 0 {
		comp := component{Type: "body"}
		for _, text := range params.BodyParams {
			comp.Parameters = append(comp.Parameters, parameter{Type: "text", Text: text})
		}
		body.Template.Components = []component{comp}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return errors.Join(ErrFailedToSendMessage, err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.config.BaseURL, c.config.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return errors.Join(ErrFailedToSendMessage, err)
	}
	req.Header.Set("Authorization", "Bearer "+c.config.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSendMessage, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr apiError
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if jsonErr := json.Unmarshal(raw, &apiErr); jsonErr == nil && apiErr.Error.Message != "" {
			return errors.Join(
				ErrFailedToSendMessage,
				fmt.Errorf("cloud api error: %d - %s", apiErr.Error.Code, apiErr.Error.Message),
			)
		}
		return errors.Join(ErrFailedToSendMessage, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}
	return nil
}
