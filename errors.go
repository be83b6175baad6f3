package dispatch

import (
	"errors"
	"strings"
)

// Predefined sentinel errors for common cases.
var (
	// ErrClientClosed indicates the client has been closed.
	ErrClientClosed = errors.New("client closed")

	// ErrNoRecipient indicates a template send without a destination.
	ErrNoRecipient = errors.New("recipient address is required")

	// ErrProviderUnavailable indicates a provider could not be
	// constructed from the configuration.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

// Stable, user-facing messages for the classified provider failure
// taxonomy. Callers may match on these to branch on failure kind.
const (
	// MsgRateLimited reports a provider-side rate limit.
	MsgRateLimited = "Email rate limit exceeded. Please try again later."

	// MsgConfiguration reports a provider-side configuration problem
	// (bad service, template, or key).
	MsgConfiguration = "Invalid email service configuration. Please verify the service settings."

	// MsgNetwork reports a connectivity failure.
	MsgNetwork = "Network error while sending email. Please check your connection."

	// MsgUnknown reports a recovered failure with no usable message.
	MsgUnknown = "Unknown error"
)

// ClassifyProviderMessage maps raw provider error text onto the stable
// failure taxonomy by substring match, returning the user-facing
// message. Text that matches no known pattern is echoed unchanged.
//
// The matching rules are deliberately preserved from the behavior this
// layer is compatible with: "rate limit" and "network" match
// case-insensitively, while the configuration check matches only the
// literal spellings "invalid" and "Invalid". A rate-limit match wins
// regardless of any other content in the message.
func ClassifyProviderMessage(msg string) string {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "rate limit"):
		return MsgRateLimited
	case strings.Contains(msg, "invalid") || strings.Contains(msg, "Invalid"):
		return MsgConfiguration
	case strings.Contains(lower, "network"):
		return MsgNetwork
	case msg == "":
		return MsgUnknown
	default:
		return msg
	}
}
