package sendgrid

import (
	"context"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/bizmgr/dispatch/internal/core"
)

// Provider implements the core.Provider interface for SendGrid using
// dynamic transactional templates. SendGrid has no separate service
// identifier, so serviceID is accepted and ignored.
type Provider struct {
	client *sendgrid.Client
	config core.ProviderSettings
}

// NewProvider creates a new SendGrid provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	apiKey := settings.Get("api_key")
	if apiKey == "" {
		return nil, core.NewValidationError("api_key", "SendGrid API key is required")
	}

	return &Provider{
		client: sendgrid.NewSendClient(apiKey),
		config: settings,
	}, nil
}

// SendTemplate sends a single templated email using SendGrid dynamic
// templates. All parameters travel as dynamic template data.
func (p *Provider) SendTemplate(ctx context.Context, serviceID, templateID string, params core.TemplateParameters) (*core.Receipt, error) {
	to := params["to_email"]
	if to == "" {
		return nil, core.NewValidationError("to_email", "recipient address is required")
	}

	message := mail.NewV3Mail()
	message.SetTemplateID(templateID)
	message.SetFrom(mail.NewEmail(params["from_name"], params["from_email"]))

	personalization := mail.NewPersonalization()
	personalization.AddTos(mail.NewEmail(params["to_name"], to))
	for _, cc := range core.SplitList(params["cc_emails"]) {
		personalization.AddCCs(mail.NewEmail("", cc))
	}
	for _, bcc := range core.SplitList(params["bcc_emails"]) {
		personalization.AddBCCs(mail.NewEmail("", bcc))
	}
	for key, value := range params {
		personalization.SetDynamicTemplateData(key, value)
	}
	message.AddPersonalizations(personalization)

	if replyTo := params["reply_to"]; replyTo != "" {
		message.SetReplyTo(mail.NewEmail("", replyTo))
	}

	response, err := p.client.SendWithContext(ctx, message)
	if err != nil {
		return nil, core.WrapProviderError("sendgrid", "send_error", err)
	}
	if response.StatusCode >= 400 {
		return nil, core.NewProviderError("sendgrid", "api_error", response.Body)
	}

	// SendGrid reports the assigned id via the X-Message-Id header.
	var messageID string
	if ids := response.Headers["X-Message-Id"]; len(ids) > 0 {
		messageID = ids[0]
	}

	return &core.Receipt{
		MessageID: messageID,
		Provider:  p.Name(),
		Raw:       response,
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("api_key") == "" {
		return core.NewValidationError("api_key", "SendGrid API key is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "sendgrid"
}
