package infermedica

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	// DefaultBaseURL is the public Infermedica API endpoint.
	DefaultBaseURL = "https://api.infermedica.com/v2"

	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "infermedica-go/" + Version

	tracerName = "github.com/tomblancdev/infermedica-go"
)

// Client is the Infermedica API client.
//
// A Client is immutable once created and safe for concurrent use.
type Client struct {
	appID  string
	appKey string

	baseURL     string
	httpClient  *http.Client
	timeout     time.Duration
	userAgent   string
	model       string
	devMode     bool
	interviewID string

	transport      Transport
	logger         *slog.Logger
	tracerProvider trace.TracerProvider
	tracer         trace.Tracer
}

// NewClient creates a new Infermedica client authenticated with the
// application id and key issued by the developer portal.
//
//	client := infermedica.NewClient(os.Getenv("APP_ID"), os.Getenv("APP_KEY"))
func NewClient(appID, appKey string, opts ...Option) *Client {
	c := &Client{
		appID:     appID,
		appKey:    appKey,
		baseURL:   DefaultBaseURL,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	c.logger = c.logger.With("component", "infermedica")

	if c.tracerProvider == nil {
		c.tracerProvider = otel.GetTracerProvider()
	}
	c.tracer = c.tracerProvider.Tracer(tracerName, trace.WithInstrumentationVersion(Version))

	if c.transport == nil {
		httpClient := c.httpClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: c.timeout}
		}
		c.transport = newHTTPTransport(c.baseURL, httpClient, c.headers())
	}

	return c
}

// NewInterviewID returns a random identifier suitable for [WithInterviewID].
func NewInterviewID() string {
	return uuid.NewString()
}

// headers returns the fixed headers attached to every request.
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("App-Id", c.appID)
	h.Set("App-Key", c.appKey)
	h.Set("User-Agent", c.userAgent)
	if c.model != "" {
		h.Set("Model", c.model)
	}
	if c.devMode {
		h.Set("Dev-Mode", "true")
	}
	if c.interviewID != "" {
		h.Set("Interview-Id", c.interviewID)
	}
	return h
}

// call dispatches req through the transport inside a span named after op.
func (c *Client) call(ctx context.Context, op string, req *Request) (json.RawMessage, error) {
	ctx, span := c.tracer.Start(ctx, "infermedica."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", req.Method),
			attribute.String("url.path", req.Path),
		),
	)
	defer span.End()

	start := time.Now()
	result, err := c.transport.Do(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status != 0 {
			span.SetAttributes(attribute.Int("http.response.status_code", apiErr.Status))
		}
		c.logger.WarnContext(ctx, "request failed",
			"operation", op,
			"method", req.Method,
			"path", req.Path,
			"duration", elapsed,
			"error", err,
		)
		return nil, err
	}

	c.logger.DebugContext(ctx, "request completed",
		"operation", op,
		"method", req.Method,
		"path", req.Path,
		"duration", elapsed,
	)
	return result, nil
}
