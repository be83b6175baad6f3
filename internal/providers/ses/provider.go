package ses

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"

	"github.com/bizmgr/dispatch/internal/core"
)

// Provider implements the core.Provider interface for AWS SES using
// templated sends. The configuration set plays the role of the service
// identifier.
type Provider struct {
	client *ses.Client
	config core.ProviderSettings
}

// NewProvider creates a new AWS SES provider.
func NewProvider(settings core.ProviderSettings) (core.Provider, error) {
	region := settings.Get("region")
	if region == "" {
		return nil, core.NewValidationError("region", "AWS region is required")
	}

	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion(region),
	)
	if err != nil {
		return nil, core.WrapProviderError("aws_ses", "config_error", err)
	}

	// Explicit credentials override the default chain when provided.
	if accessKey := settings.Get("access_key"); accessKey != "" {
		secretKey := settings.Get("secret_key")
		if secretKey == "" {
			return nil, core.NewValidationError("secret_key", "secret key is required when access key is provided")
		}
		cfg.Credentials = aws.CredentialsProviderFunc(func(ctx context.Context) (aws.Credentials, error) {
			return aws.Credentials{
				AccessKeyID:     accessKey,
				SecretAccessKey: secretKey,
			}, nil
		})
	}

	return &Provider{
		client: ses.NewFromConfig(cfg),
		config: settings,
	}, nil
}

// SendTemplate sends a single email rendered by an SES template.
// Parameters are serialized as the JSON template data.
func (p *Provider) SendTemplate(ctx context.Context, serviceID, templateID string, params core.TemplateParameters) (*core.Receipt, error) {
	to := params["to_email"]
	if to == "" {
		return nil, core.NewValidationError("to_email", "recipient address is required")
	}

	source := core.FormatAddress(params["from_name"], params["from_email"])
	if source == "" {
		source = p.config.Get("source")
	}
	if source == "" {
		return nil, core.NewValidationError("from_email", "sender address is required")
	}

	data, err := json.Marshal(params)
	if err != nil {
		return nil, core.WrapProviderError("aws_ses", "template_data_error", err)
	}

	input := &ses.SendTemplatedEmailInput{
		Source:       aws.String(source),
		Template:     aws.String(templateID),
		TemplateData: aws.String(string(data)),
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
	}
	if cc := core.SplitList(params["cc_emails"]); len(cc) > 0 {
		input.Destination.CcAddresses = cc
	}
	if bcc := core.SplitList(params["bcc_emails"]); len(bcc) > 0 {
		input.Destination.BccAddresses = bcc
	}
	if replyTo := params["reply_to"]; replyTo != "" {
		input.ReplyToAddresses = []string{replyTo}
	}
	if serviceID != "" {
		input.ConfigurationSetName = aws.String(serviceID)
	}

	output, err := p.client.SendTemplatedEmail(ctx, input)
	if err != nil {
		return nil, core.WrapProviderError("aws_ses", "send_error", err)
	}

	return &core.Receipt{
		MessageID: aws.ToString(output.MessageId),
		Provider:  p.Name(),
		Raw:       output,
	}, nil
}

// ValidateConfig validates the provider configuration.
func (p *Provider) ValidateConfig() error {
	if p.config.Get("region") == "" {
		return core.NewValidationError("region", "AWS region is required")
	}
	return nil
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "aws_ses"
}
