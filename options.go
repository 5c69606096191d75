package infermedica

import (
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API base URL.
//
// The default is [DefaultBaseURL]. Any path in the URL is preserved,
// so "https://example.com/infermedica/v2" works as expected.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithTimeout sets the default request timeout of the HTTP client.
//
// Ignored when a custom [Transport] is installed with [WithTransport].
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithHTTPClient sets a custom HTTP client.
//
// The client's own Timeout takes precedence over [WithTimeout] when set.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// WithModel selects a non-default knowledge model, e.g. "infermedica-es".
// It is sent in the Model header.
func WithModel(model string) Option {
	return func(c *Client) {
		c.model = model
	}
}

// WithDevMode marks requests as development traffic (Dev-Mode header).
func WithDevMode(enabled bool) Option {
	return func(c *Client) {
		c.devMode = enabled
	}
}

// WithInterviewID sets the Interview-Id header used by the API to group
// the calls of one interview. See [NewInterviewID].
func WithInterviewID(id string) Option {
	return func(c *Client) {
		c.interviewID = id
	}
}

// WithTransport replaces the default HTTP transport.
//
// The transport becomes responsible for credentials and timeouts.
func WithTransport(t Transport) Option {
	return func(c *Client) {
		c.transport = t
	}
}

// WithLogger sets the logger used for request diagnostics.
// By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithTracerProvider sets the OpenTelemetry tracer provider.
// The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *Client) {
		c.tracerProvider = tp
	}
}
