package mailgun

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"

	"github.com/bizmgr/dispatch/internal/core"
)

// Provider implements the core.Provider interface for Mailgun using
// stored templates. The sending domain plays the role of the service
// identifier and is fixed at construction.
type Provider struct {
	client mailgun.Mailgun
	config core.ProviderSettings
}

// NewProvider creates a new Mailgun provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "Mailgun API key is required")
	}

	domain := settings.Get("domain")
	if domain == "" {
		return nil, core.NewValidationError("domain", "Mailgun domain is required")
	}

	client := mailgun.NewMailgun(domain, apiKey)

	// EU customers route through a regional base URL.
	if baseURL := settings.Get("base_url"); baseURL != "" {
		client.SetAPIBase(baseURL)
	}

	return &Provider{client: client, config: settings}, nil
}

// SendTemplate sends a single email rendered by a Mailgun stored
// template. All parameters travel as template variables.
func (p *Provider) SendTemplate(ctx context.Context, serviceID, templateID string, params core.TemplateParameters) (*core.Receipt, error) {
	to := params["to_email"]
	if to == "" {
		return nil, core.NewValidationError("to_email", "recipient address is required")
	}

	from := core.FormatAddress(params["from_name"], params["from_email"])
	message := mailgun.NewMessage(from, params["subject"], params["message"], to)
	message.SetTemplate(templateID)

	for key, value := range params {
		if err := message.AddTemplateVariable(key, value); err != nil {
			return nil, core.WrapProviderError("mailgun", "template_variable_error",
				fmt.Errorf("failed to add template variable %s: %w", key, err))
		}
	}

	if replyTo := params["reply_to"]; replyTo != "" {
		message.SetReplyTo(replyTo)
	}
	for _, cc := range core.SplitList(params["cc_emails"]) {
		message.AddCC(cc)
	}
	for _, bcc := range core.SplitList(params["bcc_emails"]) {
		message.AddBCC(bcc)
	}

	body, id, err := p.client.Send(ctx, message)
	if err != nil {
		return nil, core.WrapProviderError("mailgun", "send_error", err)
	}

	return &core.Receipt{
		MessageID: id,
		Provider:  p.Name(),
		Raw:       body,
	}, nil
}

// ValidateConfig validates the Mailgun provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "Mailgun API key is required")
	}
	if p.config.Get("domain") == "" {
		return core.NewValidationError("domain", "Mailgun domain is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mailgun"
}
