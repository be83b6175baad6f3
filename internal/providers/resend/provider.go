package resend

import (
	"context"

	"github.com/resend/resend-go/v3"

	"github.com/bizmgr/dispatch/internal/core"
)

// Provider implements the core.Provider interface for Resend.
// Resend has no server-side template store, so templateID and serviceID
// are accepted for interface parity and the message is assembled from
// the mapped parameters, including the pre-rendered HTML body.
type Provider struct {
	client *resend.Client
	config core.ProviderSettings
}

// NewProvider creates a new Resend provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "Resend API key is required")
	}

	return &Provider{
		client: resend.NewClient(apiKey),
		config: settings,
	}, nil
}

// SendTemplate sends a single email assembled from the parameter map.
func (p *Provider) SendTemplate(ctx context.Context, serviceID, templateID string, params core.TemplateParameters) (*core.Receipt, error) {
	to := params["to_email"]
	if to == "" {
		return nil, core.NewValidationError("to_email", "recipient address is required")
	}
	if params["from_email"] == "" {
		return nil, core.NewValidationError("from_email", "sender address is required")
	}

	req := &resend.SendEmailRequest{
		From:    core.FormatAddress(params["from_name"], params["from_email"]),
		To:      []string{to},
		Subject: params["subject"],
		Text:    params["message"],
		Html:    params["message_html"],
		ReplyTo: params["reply_to"],
		Cc:      core.SplitList(params["cc_emails"]),
		Bcc:     core.SplitList(params["bcc_emails"]),
	}

	sent, err := p.client.Emails.SendWithContext(ctx, req)
	if err != nil {
		return nil, core.WrapProviderError("resend", "send_error", err)
	}

	return &core.Receipt{
		MessageID: sent.Id,
		Provider:  p.Name(),
		Raw:       sent,
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "Resend API key is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "resend"
}
