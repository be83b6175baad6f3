// Package dispatch provides a best-effort outbound-email dispatch layer
// with pluggable delivery providers and a deterministic local
// simulation fallback.
//
// A dispatch accepts a structured email request, validates it, renders
// the plain text body into styled markup, maps the request onto flat
// provider template parameters, and submits it to the configured
// delivery provider. When no provider is configured the client runs in
// simulation mode, emulating successful sends without network I/O, so
// calling code works unchanged in development and tests.
//
// # Basic Usage
//
//	client, err := dispatch.New(dispatch.FromEnv())
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close()
//
//	result := client.Send(context.Background(), &dispatch.EmailRequest{
//		To:      "user@example.com",
//		Subject: "Welcome",
//		Body:    "Hello!\nSee https://example.com to get started.",
//	})
//	if !result.Success {
//		log.Println("send failed:", result.Error)
//	}
//
// Send and SendAll never return raised failures: every outcome,
// including validation and provider errors, arrives as a result object
// so bulk flows can handle partial failure uniformly.
//
// # Supported Providers
//
//   - SendGrid (dynamic templates)
//   - Mailgun (stored templates)
//   - AWS SES (templated sends)
//   - Resend (parameter-driven sends)
//
// # Features
//
//   - Provider-agnostic template send interface
//   - Simulation mode when credentials are absent
//   - Deterministic plain-text to HTML rendering with preview
//   - Sequential bulk dispatch with fixed pacing and partial-failure
//     accounting
//   - Stable classification of provider error text
//   - Distributed tracing with OpenTelemetry
//   - Context-aware operations
package dispatch
