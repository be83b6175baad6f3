package dispatch

import (
	"context"

	"github.com/bizmgr/dispatch/internal/core"
)

// Dispatcher defines the core email dispatch interface.
// All methods are safe for concurrent use, with the exception noted on
// SendAll.
type Dispatcher interface {
	// Send validates, maps, and submits a single email request.
	// The outcome is always reported through the returned result;
	// Send never panics and never returns a raised failure.
	Send(ctx context.Context, req *EmailRequest) *DispatchResult

	// SendTemplate submits a send driven by a provider-side template.
	// Only the destination address is required; message content is
	// authored server-side. Provider errors are surfaced as-is,
	// without classification.
	SendTemplate(ctx context.Context, req *TemplateSend) *DispatchResult

	// SendAll dispatches the requests strictly sequentially, pacing
	// each send to respect provider rate limits, and partitions the
	// outcomes. Two overlapping SendAll calls defeat the pacing
	// guarantee; callers must serialize bulk dispatches themselves.
	SendAll(ctx context.Context, reqs []*EmailRequest) *BulkOutcome

	// Preview returns the rendered markup for the request body without
	// sending anything.
	Preview(req *EmailRequest) string

	// Close releases client resources. After Close the dispatcher
	// reports every send as failed.
	Close() error
}

// Type aliases re-export core types for the public API, keeping
// implementation details internal while users write dispatch.EmailRequest
// rather than core.EmailRequest.
type (
	Provider           = core.Provider
	ProviderSettings   = core.ProviderSettings
	EmailRequest       = core.EmailRequest
	TemplateSend       = core.TemplateSend
	TemplateParameters = core.TemplateParameters
	DispatchResult     = core.DispatchResult
	BulkOutcome        = core.BulkOutcome
	BulkFailure        = core.BulkFailure
	Receipt            = core.Receipt
	ValidationError    = core.ValidationError
	ProviderError      = core.ProviderError
)

// Error constructor functions
var (
	NewValidationError          = core.NewValidationError
	NewValidationErrorWithValue = core.NewValidationErrorWithValue
	NewProviderError            = core.NewProviderError
	WrapProviderError           = core.WrapProviderError
)

// ValidAddress reports whether addr matches the recipient address
// grammar used by request validation.
func ValidAddress(addr string) bool {
	return core.ValidAddress(addr)
}
