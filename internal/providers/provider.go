// Package providers exposes the provider adapter constructors for
// callers that wire adapters manually instead of going through the
// client configuration.
package providers

import (
	"github.com/bizmgr/dispatch"
	"github.com/bizmgr/dispatch/internal/providers/mailgun"
	"github.com/bizmgr/dispatch/internal/providers/resend"
	"github.com/bizmgr/dispatch/internal/providers/sendgrid"
	"github.com/bizmgr/dispatch/internal/providers/ses"
)

// NewSendGridProvider creates a new SendGrid provider.
func NewSendGridProvider(settings dispatch.ProviderSettings) (dispatch.Provider, error) {
	return sendgrid.NewProvider(settings)
}

// NewMailgunProvider creates a new Mailgun provider.
func NewMailgunProvider(settings dispatch.ProviderSettings) (dispatch.Provider, error) {
	return mailgun.NewProvider(settings)
}

// NewSESProvider creates a new AWS SES provider.
func NewSESProvider(settings dispatch.ProviderSettings) (dispatch.Provider, error) {
	return ses.NewProvider(settings)
}

// NewResendProvider creates a new Resend provider.
func NewResendProvider(settings dispatch.ProviderSettings) (dispatch.Provider, error) {
	return resend.NewProvider(settings)
}
