package dispatch

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bizmgr/dispatch/internal/core"
)

// MockProvider is a testify mock implementing core.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SendTemplate(ctx context.Context, serviceID, templateID string, params core.TemplateParameters) (*core.Receipt, error) {
	args := m.Called(ctx, serviceID, templateID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*core.Receipt), args.Error(1)
}

func (m *MockProvider) ValidateConfig() error {
	return m.Called().Error(0)
}

func (m *MockProvider) Name() string {
	return m.Called().String(0)
}

// configuredConfig returns a config complete enough for real sends.
func configuredConfig() Config {
	cfg := DefaultConfig()
	cfg.Provider.ServiceID = "svc_1"
	cfg.Provider.TemplateID = "tpl_1"
	cfg.Provider.PublicKey = "key_1"
	cfg.SimulatedLatency = 0
	cfg.PacingDelay = 0
	return cfg
}

func newTestClient(t *testing.T, cfg Config, provider Provider) *Client {
	t.Helper()
	client, err := New(cfg, WithProvider(provider))
	require.NoError(t, err)
	return client
}

func validRequest() *EmailRequest {
	return &EmailRequest{
		To:      "alice@example.com",
		Subject: "Welcome",
		Body:    "Hello Alice",
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Provider.Type = "smoke-signals"
	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "provider type")
}

func TestNew_ConstructsProviderWithoutDefaultTemplate(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Provider.Type = ProviderMailgun
	cfg.Provider.ServiceID = "mg.example.com"
	cfg.Provider.PublicKey = "key-1"
	cfg.SimulatedLatency = 0

	client, err := New(cfg)
	require.NoError(t, err)

	// Construction is keyed on credentials alone, so the per-call
	// template override path has a real provider to reach.
	require.NotNil(t, client.provider)
	require.Equal(t, "mailgun", client.provider.Name())

	// Regular sends still need the full configuration.
	result := client.Send(context.Background(), validRequest())
	require.True(t, result.Success)
	require.True(t, strings.HasPrefix(result.MessageID, "sim_"))
}

func TestSend_SimulatedWhenUnconfigured(t *testing.T) {
	t.Parallel()

	client, err := New(DefaultConfig(), WithSimulatedLatency(10*time.Millisecond))
	require.NoError(t, err)
	require.Equal(t, "simulator", client.ProviderName())

	start := time.Now()
	result := client.Send(context.Background(), validRequest())
	elapsed := time.Since(start)

	require.True(t, result.Success)
	require.True(t, strings.HasPrefix(result.MessageID, "sim_"), "got %q", result.MessageID)
	require.GreaterOrEqual(t, elapsed, 10*time.Millisecond)
}

func TestSend_ValidationFailureSkipsProvider(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	client := newTestClient(t, configuredConfig(), provider)

	result := client.Send(context.Background(), &EmailRequest{To: "alice@example.com"})

	require.False(t, result.Success)
	require.Equal(t, "missing required fields", result.Error)
	provider.AssertNotCalled(t, "SendTemplate")
}

func TestSend_InvalidAddress(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	client := newTestClient(t, configuredConfig(), provider)

	result := client.Send(context.Background(), &EmailRequest{
		To:      "not-an-address",
		Subject: "Hi",
		Body:    "hello",
	})

	require.False(t, result.Success)
	require.Contains(t, result.Error, "invalid address format")
	provider.AssertNotCalled(t, "SendTemplate")
}

func TestSend_Success(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	provider.On("SendTemplate", mock.Anything, "svc_1", "tpl_1", mock.Anything).
		Return(&core.Receipt{MessageID: "msg_42", Provider: "sendgrid", Raw: "accepted"}, nil)

	client := newTestClient(t, configuredConfig(), provider)
	result := client.Send(context.Background(), validRequest())

	require.True(t, result.Success)
	require.Equal(t, "msg_42", result.MessageID)
	require.Equal(t, "accepted", result.Details)
	provider.AssertExpectations(t)
}

func TestSend_ParametersIncludeRenderedBody(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")

	var captured core.TemplateParameters
	provider.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(3).(core.TemplateParameters)
		}).
		Return(&core.Receipt{MessageID: "msg_1"}, nil)

	client := newTestClient(t, configuredConfig(), provider)
	client.Send(context.Background(), validRequest())

	require.Equal(t, "Hello Alice", captured["message"])
	require.Contains(t, captured["message_html"], "<p ")
	require.Contains(t, captured["message_html"], "Hello Alice")
}

func TestSend_GeneratesFallbackMessageID(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("mailgun")
	provider.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&core.Receipt{}, nil)

	client := newTestClient(t, configuredConfig(), provider)
	result := client.Send(context.Background(), validRequest())

	require.True(t, result.Success)
	require.NotEmpty(t, result.MessageID)
}

func TestSend_ProviderErrorClassified(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	provider.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, core.NewProviderError("sendgrid", "429", "rate limit exceeded"))

	client := newTestClient(t, configuredConfig(), provider)
	result := client.Send(context.Background(), validRequest())

	require.False(t, result.Success)
	require.Equal(t, MsgRateLimited, result.Error)
	require.Contains(t, result.Details.(string), "rate limit exceeded")
}

func TestSend_RecoversProviderPanic(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, configuredConfig(), &panicProvider{payload: "connection reset"})
	result := client.Send(context.Background(), validRequest())

	require.False(t, result.Success)
	require.Equal(t, "connection reset", result.Error)
}

func TestSend_RecoversProviderPanicWithoutMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, configuredConfig(), &panicProvider{payload: ""})
	result := client.Send(context.Background(), validRequest())

	require.False(t, result.Success)
	require.Equal(t, MsgUnknown, result.Error)
}

func TestSend_Closed(t *testing.T) {
	t.Parallel()

	client, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, client.Close())

	result := client.Send(context.Background(), validRequest())
	require.False(t, result.Success)
	require.Equal(t, ErrClientClosed.Error(), result.Error)
}

func TestSendTemplate_NoRecipient(t *testing.T) {
	t.Parallel()

	client, err := New(DefaultConfig())
	require.NoError(t, err)

	result := client.SendTemplate(context.Background(), &TemplateSend{})
	require.False(t, result.Success)
	require.Equal(t, ErrNoRecipient.Error(), result.Error)
}

func TestSendTemplate_Success(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	provider.On("SendTemplate", mock.Anything, "svc_1", "tpl_1", core.TemplateParameters{
		"to_email": "alice@example.com",
		"order_id": "1042",
	}).Return(&core.Receipt{MessageID: "msg_7"}, nil)

	client := newTestClient(t, configuredConfig(), provider)
	result := client.SendTemplate(context.Background(), &TemplateSend{
		To:        "alice@example.com",
		Variables: map[string]string{"order_id": "1042"},
	})

	require.True(t, result.Success)
	require.Equal(t, "msg_7", result.MessageID)
	provider.AssertExpectations(t)
}

func TestSendTemplate_PerCallTemplateOverride(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	provider.On("SendTemplate", mock.Anything, "svc_1", "tpl_password_reset", mock.Anything).
		Return(&core.Receipt{MessageID: "msg_8"}, nil)

	client := newTestClient(t, configuredConfig(), provider)
	result := client.SendTemplate(context.Background(), &TemplateSend{
		To:         "alice@example.com",
		TemplateID: "tpl_password_reset",
	})

	require.True(t, result.Success)
	provider.AssertExpectations(t)
}

func TestSendTemplate_OverrideWithoutDefaultTemplate(t *testing.T) {
	t.Parallel()

	cfg := configuredConfig()
	cfg.Provider.TemplateID = ""

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	provider.On("SendTemplate", mock.Anything, "svc_1", "tpl_override", mock.Anything).
		Return(&core.Receipt{MessageID: "msg_9"}, nil)

	client := newTestClient(t, cfg, provider)
	result := client.SendTemplate(context.Background(), &TemplateSend{
		To:         "alice@example.com",
		TemplateID: "tpl_override",
	})

	require.True(t, result.Success)
	require.Equal(t, "msg_9", result.MessageID)
	provider.AssertExpectations(t)
}

func TestSendTemplate_RecoversProviderPanic(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, configuredConfig(), &panicProvider{payload: "connection reset"})
	result := client.SendTemplate(context.Background(), &TemplateSend{To: "alice@example.com"})

	require.False(t, result.Success)
	require.Equal(t, "connection reset", result.Error)
}

func TestSendTemplate_ErrorNotClassified(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("sendgrid")
	provider.On("SendTemplate", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, core.NewProviderError("sendgrid", "500", "rate limit exceeded"))

	client := newTestClient(t, configuredConfig(), provider)
	result := client.SendTemplate(context.Background(), &TemplateSend{To: "alice@example.com"})

	require.False(t, result.Success)
	// Template send failures pass through verbatim.
	require.NotEqual(t, MsgRateLimited, result.Error)
	require.Contains(t, result.Error, "rate limit exceeded")
}

func TestSendTemplate_SimulatedWithoutTemplate(t *testing.T) {
	t.Parallel()

	cfg := configuredConfig()
	cfg.Provider.TemplateID = ""

	provider := new(MockProvider)
	client := newTestClient(t, cfg, provider)

	result := client.SendTemplate(context.Background(), &TemplateSend{To: "alice@example.com"})

	require.True(t, result.Success)
	require.True(t, strings.HasPrefix(result.MessageID, "sim_"))
	provider.AssertNotCalled(t, "SendTemplate")
}

func TestProviderName_Configured(t *testing.T) {
	t.Parallel()

	provider := new(MockProvider)
	provider.On("Name").Return("resend")

	client := newTestClient(t, configuredConfig(), provider)
	require.Equal(t, "resend", client.ProviderName())
}
