package dispatch

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// SendAll dispatches the requests strictly sequentially, never
// concurrently, to respect provider rate limits. After every send,
// success or failure, a fixed pacing delay elapses before the next.
// The succeeded and failed lists mirror the input order.
//
// Two simultaneous SendAll calls defeat the pacing guarantee; callers
// who pace for provider rate limits must serialize bulk dispatches.
func (c *Client) SendAll(ctx context.Context, reqs []*EmailRequest) *BulkOutcome {
	ctx, span := c.tracer.Start(ctx, "dispatch.Client.SendAll")
	defer span.End()

	span.SetAttributes(attribute.Int("dispatch.bulk.size", len(reqs)))

	outcome := &BulkOutcome{}
	for _, req := range reqs {
		result := c.Send(ctx, req)
		if result.Success {
			outcome.Succeeded = append(outcome.Succeeded, result)
		} else {
			msg := result.Error
			if msg == "" {
				msg = MsgUnknown
			}
			outcome.Failed = append(outcome.Failed, BulkFailure{Request: req, Error: msg})
		}
		c.pace(ctx)
	}

	span.SetAttributes(
		attribute.Int("dispatch.bulk.succeeded", len(outcome.Succeeded)),
		attribute.Int("dispatch.bulk.failed", len(outcome.Failed)),
	)
	if len(outcome.Failed) > 0 {
		span.SetStatus(codes.Error, "bulk dispatch completed with failures")
	} else {
		span.SetStatus(codes.Ok, "bulk dispatch completed")
	}

	return outcome
}

// pace waits the configured pacing delay, honoring context
// cancellation.
func (c *Client) pace(ctx context.Context) {
	if c.config.PacingDelay <= 0 {
		return
	}
	timer := time.NewTimer(c.config.PacingDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}
