package dispatch

import (
	"context"
	"log/slog"
	"strconv"
	"time"
)

// Simulator is a deterministic stand-in send used when no provider is
// configured. It waits a fixed latency to emulate network behavior and
// always succeeds, never consulting the network or configuration.
// It exists so calling code can be exercised without credentials.
type Simulator struct {
	latency time.Duration
	logger  *slog.Logger
}

// NewSimulator creates a simulator with the given latency and logger.
func NewSimulator(latency time.Duration, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Simulator{latency: latency, logger: logger}
}

// Simulate emulates a send. The returned message ID carries the "sim_"
// prefix followed by the current timestamp in milliseconds.
func (s *Simulator) Simulate(ctx context.Context, req *EmailRequest) *DispatchResult {
	if s.latency > 0 {
		timer := time.NewTimer(s.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
		case <-timer.C:
		}
	}

	id := "sim_" + strconv.FormatInt(time.Now().UnixMilli(), 10)
	s.logger.Info("dispatch: email simulated (not sent)",
		"to", req.To,
		"subject", req.Subject,
		"message_id", id,
	)
	return &DispatchResult{Success: true, MessageID: id}
}
