package dispatch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/bizmgr/dispatch/internal/core"
	"github.com/bizmgr/dispatch/internal/providers/mailgun"
	"github.com/bizmgr/dispatch/internal/providers/resend"
	"github.com/bizmgr/dispatch/internal/providers/sendgrid"
	"github.com/bizmgr/dispatch/internal/providers/ses"
)

// Client implements the Dispatcher interface. All methods are safe for
// concurrent use; see SendAll for the pacing caveat on overlapping bulk
// calls.
type Client struct {
	config    Config
	provider  Provider
	simulator *Simulator
	logger    *slog.Logger
	tracer    trace.Tracer
	mu        sync.RWMutex
	closed    bool
}

// New creates a dispatch client from the given configuration.
//
// Missing provider credentials are not an error: the client degrades to
// simulation mode, which is the normal state in development and tests.
// Provider construction failure likewise degrades to simulation with a
// notice, never a failure, since readiness checks gate real sends
// independently of construction success.
func New(config Config, opts ...Option) (*Client, error) {
	if config.Provider.Settings == nil {
		config.Provider.Settings = ProviderSettings{}
	}

	client := &Client{
		config: config,
		logger: slog.Default(),
		tracer: otel.Tracer("github.com/bizmgr/dispatch"),
	}

	for _, opt := range opts {
		opt(client)
	}

	if err := client.config.Validate(); err != nil {
		return nil, err
	}

	client.simulator = NewSimulator(client.config.SimulatedLatency, client.logger)

	// The provider is constructed whenever a key is present, even if
	// the default template is missing: template sends may supply a
	// template per call, so construction and dispatch readiness are
	// gated separately.
	if client.provider == nil && client.config.Provider.PublicKey != "" {
		provider, err := newProvider(client.config)
		if err != nil {
			client.logger.Info("dispatch: provider initialization failed, using simulation mode",
				"provider", client.config.Provider.Type.String(),
				"reason", err.Error(),
			)
		} else {
			client.provider = provider
		}
	}

	client.logger.Debug("dispatch: client initialized",
		"user_agent", UserAgent(),
		"provider", client.ProviderName(),
	)

	return client, nil
}

// Send validates, maps, and submits a single email request. The outcome
// is always a result object; nothing propagates as a raised failure,
// including a panicking provider.
func (c *Client) Send(ctx context.Context, req *EmailRequest) (result *DispatchResult) {
	ctx, span := c.tracer.Start(ctx, "dispatch.Client.Send")
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, "send panicked")
			result = &DispatchResult{Success: false, Error: panicMessage(r)}
		}
	}()

	if c.isClosed() {
		span.SetStatus(codes.Error, ErrClientClosed.Error())
		return &DispatchResult{Success: false, Error: ErrClientClosed.Error()}
	}

	if !c.configured() {
		span.SetAttributes(attribute.String("dispatch.mode", "simulated"))
		return c.simulator.Simulate(ctx, req)
	}

	if err := req.Validate(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		return &DispatchResult{Success: false, Error: err.Error()}
	}

	span.SetAttributes(
		attribute.String("dispatch.to", req.To),
		attribute.String("dispatch.subject", req.Subject),
		attribute.String("dispatch.provider", c.provider.Name()),
	)

	params := MapParameters(req, c.config.Sender)
	params[paramMessageHTML] = RenderBody(req.Body)

	receipt, err := c.provider.SendTemplate(ctx,
		c.config.Provider.ServiceID, c.config.Provider.TemplateID, params)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "send failed")
		return &DispatchResult{
			Success: false,
			Error:   ClassifyProviderMessage(err.Error()),
			Details: err.Error(),
		}
	}

	id := receipt.MessageID
	if id == "" {
		id = uuid.NewString()
	}
	span.SetAttributes(attribute.String("dispatch.message_id", id))
	span.SetStatus(codes.Ok, "email sent")

	return &DispatchResult{Success: true, MessageID: id, Details: receipt.Raw}
}

// SendTemplate submits a send driven by a provider-side template.
// Content is authored server-side, so only the destination is required
// here and the full request validation does not run. Provider errors
// are surfaced as-is: template sends deliberately skip the failure
// classification used by Send.
func (c *Client) SendTemplate(ctx context.Context, req *TemplateSend) (result *DispatchResult) {
	ctx, span := c.tracer.Start(ctx, "dispatch.Client.SendTemplate")
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			span.SetStatus(codes.Error, "template send panicked")
			result = &DispatchResult{Success: false, Error: panicMessage(r)}
		}
	}()

	if c.isClosed() {
		span.SetStatus(codes.Error, ErrClientClosed.Error())
		return &DispatchResult{Success: false, Error: ErrClientClosed.Error()}
	}

	if req.To == "" {
		span.SetStatus(codes.Error, ErrNoRecipient.Error())
		return &DispatchResult{Success: false, Error: ErrNoRecipient.Error()}
	}

	templateID := req.TemplateID
	if templateID == "" {
		templateID = c.config.Provider.TemplateID
	}

	if c.provider == nil || c.config.Provider.ServiceID == "" || templateID == "" {
		span.SetAttributes(attribute.String("dispatch.mode", "simulated"))
		return c.simulator.Simulate(ctx, &EmailRequest{
			To:      req.To,
			Subject: "Notification",
			Body:    "You have a new notification.",
		})
	}

	span.SetAttributes(
		attribute.String("dispatch.to", req.To),
		attribute.String("dispatch.template_id", templateID),
		attribute.String("dispatch.provider", c.provider.Name()),
	)

	receipt, err := c.provider.SendTemplate(ctx,
		c.config.Provider.ServiceID, templateID, mapTemplateParameters(req))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "template send failed")
		return &DispatchResult{Success: false, Error: err.Error(), Details: err.Error()}
	}

	id := receipt.MessageID
	if id == "" {
		id = uuid.NewString()
	}
	span.SetAttributes(attribute.String("dispatch.message_id", id))
	span.SetStatus(codes.Ok, "email sent")

	return &DispatchResult{Success: true, MessageID: id, Details: receipt.Raw}
}

// Preview returns the rendered markup for the request body without
// sending anything. Pure and read-only.
func (c *Client) Preview(req *EmailRequest) string {
	return RenderBody(req.Body)
}

// Close closes the client. Subsequent sends report a failed result.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

// Provider returns the active provider name, or "simulator" in
// simulation mode.
func (c *Client) ProviderName() string {
	if !c.configured() {
		return "simulator"
	}
	return c.provider.Name()
}

// configured reports whether real sends can happen: the configuration
// must be complete and the provider must have been constructed.
func (c *Client) configured() bool {
	return c.provider != nil && c.config.Provider.Configured()
}

func (c *Client) isClosed() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.closed
}

// panicMessage extracts a usable failure message from a recovered
// panic value.
func panicMessage(r any) string {
	switch v := r.(type) {
	case error:
		if v.Error() != "" {
			return v.Error()
		}
	case string:
		if v != "" {
			return v
		}
	}
	return MsgUnknown
}

// newProvider constructs a provider adapter from the configuration.
func newProvider(config Config) (Provider, error) {
	pc := config.Provider

	settings := core.ProviderSettings{}
	for k, v := range pc.Settings {
		settings[k] = v
	}
	settings.Set("api_key", pc.PublicKey)

	switch pc.Type {
	case ProviderSendGrid:
		return sendgrid.NewProvider(settings)
	case ProviderMailgun:
		settings.Set("domain", pc.ServiceID)
		return mailgun.NewProvider(settings)
	case ProviderAWSSES:
		settings.Set("access_key", pc.PublicKey)
		settings.Set("secret_key", pc.PrivateKey)
		return ses.NewProvider(settings)
	case ProviderResend:
		return resend.NewProvider(settings)
	default:
		return nil, fmt.Errorf("%w: unsupported provider type %q", ErrProviderUnavailable, pc.Type)
	}
}
