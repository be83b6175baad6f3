package dispatch

import (
	"log/slog"
	"time"
)

// Option is a functional option for configuring the dispatch client.
type Option func(*Client)

// WithSendGrid configures a SendGrid provider. The API key is the
// public key; serviceID is accepted for interface parity but unused by
// SendGrid itself.
func WithSendGrid(apiKey, serviceID, templateID string) Option {
	return func(c *Client) {
		c.config.Provider.Type = ProviderSendGrid
		c.config.Provider.PublicKey = apiKey
		c.config.Provider.ServiceID = serviceID
		c.config.Provider.TemplateID = templateID
	}
}

// WithMailgun configures a Mailgun provider. The sending domain plays
// the role of the service identifier.
func WithMailgun(apiKey, domain, templateID string) Option {
	return func(c *Client) {
		c.config.Provider.Type = ProviderMailgun
		c.config.Provider.PublicKey = apiKey
		c.config.Provider.ServiceID = domain
		c.config.Provider.TemplateID = templateID
	}
}

// WithMailgunEU configures a Mailgun provider against the EU region.
func WithMailgunEU(apiKey, domain, templateID string) Option {
	return func(c *Client) {
		WithMailgun(apiKey, domain, templateID)(c)
		c.config.Provider.Settings.Set("base_url", "https://api.eu.mailgun.net")
	}
}

// WithAWSSES configures an AWS SES provider. accessKey and secretKey
// map to the public and private keys; the configuration set plays the
// role of the service identifier.
func WithAWSSES(region, accessKey, secretKey, configurationSet, templateID string) Option {
	return func(c *Client) {
		c.config.Provider.Type = ProviderAWSSES
		c.config.Provider.PublicKey = accessKey
		c.config.Provider.PrivateKey = secretKey
		c.config.Provider.ServiceID = configurationSet
		c.config.Provider.TemplateID = templateID
		c.config.Provider.Settings.Set("region", region)
	}
}

// WithResend configures a Resend provider. Resend has no server-side
// templates; template sends are built from the mapped parameters.
func WithResend(apiKey, serviceID, templateID string) Option {
	return func(c *Client) {
		c.config.Provider.Type = ProviderResend
		c.config.Provider.PublicKey = apiKey
		c.config.Provider.ServiceID = serviceID
		c.config.Provider.TemplateID = templateID
	}
}

// WithSender sets the default sender identity.
func WithSender(name, email string) Option {
	return func(c *Client) {
		c.config.Sender = SenderIdentity{Name: name, Email: email}
	}
}

// WithPacingDelay sets the fixed wait between consecutive bulk sends.
func WithPacingDelay(d time.Duration) Option {
	return func(c *Client) {
		c.config.PacingDelay = d
	}
}

// WithSimulatedLatency sets the fixed wait the simulator applies per
// send. Use a small value in tests.
func WithSimulatedLatency(d time.Duration) Option {
	return func(c *Client) {
		c.config.SimulatedLatency = d
	}
}

// WithLogger sets the structured logger used for operational notices.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithProvider injects a pre-built provider, bypassing construction
// from configuration. Intended for tests and custom adapters.
func WithProvider(p Provider) Option {
	return func(c *Client) {
		c.provider = p
	}
}
