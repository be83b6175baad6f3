package core

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// Provider defines the interface for email delivery providers.
// Implementations translate the flat template parameters into the
// provider's own send API.
type Provider interface {
	// SendTemplate submits a single templated send to the provider.
	// serviceID and templateID identify the provider-side sending
	// service and message template; params carries the flat field map.
	SendTemplate(ctx context.Context, serviceID, templateID string, params TemplateParameters) (*Receipt, error)

	// ValidateConfig validates the provider configuration.
	// Returns an error if the configuration is invalid or incomplete.
	ValidateConfig() error

	// Name returns the provider's name for identification and logging.
	Name() string
}

// ProviderSettings represents free-form configuration settings for
// provider adapters (region, base URL, and similar knobs).
type ProviderSettings map[string]string

// Get retrieves a configuration value by key.
func (ps ProviderSettings) Get(key string) string {
	return ps[key]
}

// Set sets a configuration value.
func (ps ProviderSettings) Set(key, value string) {
	ps[key] = value
}

// Receipt is the normalized provider response for a single send.
type Receipt struct {
	// MessageID is the identifier assigned by the provider.
	// May be empty when the provider does not report one.
	MessageID string

	// Provider is the name of the provider that accepted the send.
	Provider string

	// Raw holds the unmodified provider response for diagnostics.
	Raw any
}

// TemplateParameters is a flat mapping from provider-recognized field
// names to string values. It is constructed per send and discarded
// after the provider call.
type TemplateParameters map[string]string

// SetIfPresent adds key only when value is non-empty. Optional fields
// are omitted entirely rather than sent as empty strings, so the
// provider template never sees an explicit empty override.
func (tp TemplateParameters) SetIfPresent(key, value string) {
	if value != "" {
		tp[key] = value
	}
}

// Merge overlays other onto tp, with other taking precedence on
// key collision.
func (tp TemplateParameters) Merge(other map[string]string) {
	for k, v := range other {
		tp[k] = v
	}
}

// addressPattern is the recipient address grammar: one or more
// non-space non-@ characters, "@", one or more non-space non-@
// characters, ".", one or more non-space characters. A syntactic
// check only; no DNS or internationalized-address support.
var addressPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidAddress reports whether addr matches the address grammar.
func ValidAddress(addr string) bool {
	return addressPattern.MatchString(addr)
}

// LocalPart returns the substring of addr before the first "@".
// Returns addr unchanged when it contains no "@".
func LocalPart(addr string) string {
	if i := strings.Index(addr, "@"); i >= 0 {
		return addr[:i]
	}
	return addr
}

// SplitList splits a ", "-joined parameter value back into its items.
// Returns nil for an empty value.
func SplitList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ", ")
}

// FormatAddress formats a display name and address into RFC 5322 form.
// Returns "Name <email>" when a name is present, otherwise just the
// address.
func FormatAddress(name, email string) string {
	if name == "" || name == email {
		return email
	}
	return name + " <" + email + ">"
}

// EmailRequest represents a single outbound email request.
type EmailRequest struct {
	To      string   `json:"to"`                 // Recipient address (required)
	Subject string   `json:"subject"`            // Email subject (required)
	Body    string   `json:"body"`               // Plain text body with newlines (required)
	From    string   `json:"from,omitempty"`     // Sender address (optional)
	ReplyTo string   `json:"reply_to,omitempty"` // Reply-to address (optional)
	CC      []string `json:"cc,omitempty"`       // Carbon copy recipients (optional, ordered)
	BCC     []string `json:"bcc,omitempty"`      // Blind carbon copy recipients (optional, ordered)
}

// Validate checks the request's structure and the recipient address
// syntax. It is pure and never touches the network.
func (r *EmailRequest) Validate() error {
	if r.To == "" || r.Subject == "" || r.Body == "" {
		return NewValidationError("request", "missing required fields")
	}
	if !ValidAddress(r.To) {
		return NewValidationErrorWithValue("to", "invalid address format", r.To)
	}
	return nil
}

// TemplateSend represents a send driven entirely by a provider-side
// template. Content is authored server-side, so only the destination
// is required here.
type TemplateSend struct {
	// To is the destination address (required).
	To string

	// TemplateID overrides the configured template for this call
	// (optional).
	TemplateID string

	// Variables are merged over the base parameter map, taking
	// precedence on key collision.
	Variables map[string]string
}

// DispatchResult is the outcome of a single dispatch. It is never
// mutated after construction; failures are reported here rather than
// raised.
type DispatchResult struct {
	// Success reports whether the send was accepted.
	Success bool `json:"success"`

	// MessageID is the provider-assigned identifier, a generated
	// fallback identifier, or a "sim_"-prefixed identifier in
	// simulation mode.
	MessageID string `json:"message_id,omitempty"`

	// Error is the classified, human-readable failure message.
	Error string `json:"error,omitempty"`

	// Details carries the raw provider response or error for
	// diagnostics.
	Details any `json:"details,omitempty"`
}

// BulkOutcome partitions the results of a bulk dispatch. Both lists
// mirror the input order.
type BulkOutcome struct {
	// Succeeded holds results for requests that were accepted.
	Succeeded []*DispatchResult

	// Failed holds each failed request paired with its error message.
	Failed []BulkFailure
}

// BulkFailure records one failed request in a bulk dispatch.
type BulkFailure struct {
	Request *EmailRequest
	Error   string
}

// ValidationError represents a validation error with specific field
// information.
type ValidationError struct {
	// Field is the name of the field that failed validation.
	Field string

	// Message is the validation error message.
	Message string

	// Value is the invalid value (optional).
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Value)
	}
	return e.Message
}

// Is implements error matching for errors.Is.
func (e *ValidationError) Is(target error) bool {
	_, ok := target.(*ValidationError)
	return ok
}

// NewValidationError creates a new validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a new validation error carrying
// the offending value.
func NewValidationErrorWithValue(field, message string, value any) *ValidationError {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// ProviderError represents an error surfaced by a delivery provider.
type ProviderError struct {
	// Provider is the name of the provider that generated the error.
	Provider string

	// Code is the provider-specific error code.
	Code string

	// Message is the error message from the provider.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("provider %s error [%s]: %s", e.Provider, e.Code, e.Message)
	}
	return fmt.Sprintf("provider %s error: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying error.
func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Is implements error matching for errors.Is.
func (e *ProviderError) Is(target error) bool {
	pe, ok := target.(*ProviderError)
	if !ok {
		return false
	}
	return e.Provider == pe.Provider && e.Code == pe.Code
}

// NewProviderError creates a new provider error.
func NewProviderError(provider, code, message string) *ProviderError {
	return &ProviderError{Provider: provider, Code: code, Message: message}
}

// WrapProviderError creates a provider error wrapping an underlying
// cause.
func WrapProviderError(provider, code string, cause error) *ProviderError {
	return &ProviderError{Provider: provider, Code: code, Message: cause.Error(), Cause: cause}
}
