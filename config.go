package dispatch

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete dispatch configuration. It is resolved once
// by the caller's bootstrap (directly or via FromEnv) and injected at
// construction; the client never re-reads the environment on its own.
type Config struct {
	// Provider contains delivery provider configuration.
	Provider ProviderConfig

	// Sender is the default sender identity used when a request does
	// not carry its own From address.
	Sender SenderIdentity

	// PacingDelay is the fixed wait inserted after every send in a
	// bulk dispatch.
	PacingDelay time.Duration

	// SimulatedLatency is the fixed wait the simulator applies to
	// emulate network behavior.
	SimulatedLatency time.Duration
}

// ProviderConfig contains delivery provider settings. Absence of
// ServiceID, TemplateID, or PublicKey puts the client in simulated
// mode; that is a normal, expected state, not an error.
type ProviderConfig struct {
	// Type specifies the delivery provider to use.
	Type ProviderType

	// ServiceID identifies the provider-side sending service
	// (Mailgun sending domain, SES configuration set).
	ServiceID string

	// TemplateID identifies the provider-side message template used
	// for template sends. May be overridden per call.
	TemplateID string

	// PublicKey is the provider API key.
	PublicKey string

	// PrivateKey is an optional secondary credential, consumed only
	// at client initialization when the provider requires one
	// (the SES secret access key). It does not affect readiness.
	PrivateKey string

	// Settings carries additional provider-specific knobs such as
	// the SES region or the Mailgun base URL.
	Settings ProviderSettings
}

// Configured reports dispatch readiness: ServiceID, TemplateID, and
// PublicKey must all be present. PrivateKey is deliberately excluded.
func (pc ProviderConfig) Configured() bool {
	return pc.ServiceID != "" && pc.TemplateID != "" && pc.PublicKey != ""
}

// ProviderType represents the type of delivery provider.
type ProviderType string

const (
	// ProviderSendGrid represents the SendGrid email service.
	ProviderSendGrid ProviderType = "sendgrid"

	// ProviderMailgun represents the Mailgun email service.
	ProviderMailgun ProviderType = "mailgun"

	// ProviderAWSSES represents Amazon Simple Email Service.
	ProviderAWSSES ProviderType = "aws_ses"

	// ProviderResend represents the Resend email service.
	ProviderResend ProviderType = "resend"
)

// String returns the string representation of the provider type.
func (pt ProviderType) String() string {
	return string(pt)
}

// Valid checks if the provider type is supported.
func (pt ProviderType) Valid() bool {
	switch pt {
	case ProviderSendGrid, ProviderMailgun, ProviderAWSSES, ProviderResend:
		return true
	default:
		return false
	}
}

// SenderIdentity is the default sender used for requests without an
// explicit From address.
type SenderIdentity struct {
	// Name is the display name shown to recipients.
	Name string

	// Email is the sender address.
	Email string
}

// Default timing values: simulated sends take 1.5s, bulk sends pace at
// 1s intervals.
const (
	DefaultPacingDelay      = time.Second
	DefaultSimulatedLatency = 1500 * time.Millisecond
)

// DefaultConfig returns a configuration with sensible defaults.
// Without provider credentials the client runs in simulated mode.
func DefaultConfig() Config {
	return Config{
		Provider: ProviderConfig{
			Type:     ProviderSendGrid,
			Settings: ProviderSettings{},
		},
		Sender: SenderIdentity{
			Name:  "Business Manager",
			Email: "noreply@bizmgr.app",
		},
		PacingDelay:      DefaultPacingDelay,
		SimulatedLatency: DefaultSimulatedLatency,
	}
}

// envPrefix is the prefix for environment-provided configuration,
// e.g. DISPATCH_SERVICE_ID.
const envPrefix = "DISPATCH"

// FromEnv resolves configuration from process environment variables on
// top of the defaults:
//
//	DISPATCH_PROVIDER      provider type (default "sendgrid")
//	DISPATCH_SERVICE_ID    provider sending service identifier
//	DISPATCH_TEMPLATE_ID   provider template identifier
//	DISPATCH_PUBLIC_KEY    provider API key
//	DISPATCH_PRIVATE_KEY   optional secondary credential
//	DISPATCH_REGION        provider region, where applicable
//	DISPATCH_SENDER_NAME   default sender display name
//	DISPATCH_SENDER_EMAIL  default sender address
//
// Absent values surface as empty strings; no shape validation happens
// here. FromEnv reads the environment at call time, so tests may set
// variables per call.
func FromEnv() Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	cfg := DefaultConfig()
	if pt := v.GetString("provider"); pt != "" {
		cfg.Provider.Type = ProviderType(pt)
	}
	cfg.Provider.ServiceID = v.GetString("service_id")
	cfg.Provider.TemplateID = v.GetString("template_id")
	cfg.Provider.PublicKey = v.GetString("public_key")
	cfg.Provider.PrivateKey = v.GetString("private_key")
	if region := v.GetString("region"); region != "" {
		cfg.Provider.Settings.Set("region", region)
	}
	if name := v.GetString("sender_name"); name != "" {
		cfg.Sender.Name = name
	}
	if email := v.GetString("sender_email"); email != "" {
		cfg.Sender.Email = email
	}
	return cfg
}

// Validate checks if the configuration is valid and complete.
// Missing credentials are fine (simulated mode); malformed knobs are
// not.
func (c *Config) Validate() error {
	if !c.Provider.Type.Valid() {
		return NewValidationError("provider.type",
			"invalid or unsupported provider type: "+string(c.Provider.Type))
	}
	if c.PacingDelay < 0 {
		return NewValidationError("pacing_delay", "pacing delay must not be negative")
	}
	if c.SimulatedLatency < 0 {
		return NewValidationError("simulated_latency", "simulated latency must not be negative")
	}
	if c.Sender.Email == "" {
		return NewValidationError("sender.email", "default sender address is required")
	}
	return nil
}
