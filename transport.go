package infermedica

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"path"

	"github.com/go-openapi/runtime"
)

// maxErrorBodySize limits the size of error response bodies read from the server.
const maxErrorBodySize = 4096

// Request describes a single call to the API.
//
// The client builds one Request per operation and hands it to its
// [Transport]. Query values with more than one entry are sent as
// repeated parameters.
type Request struct {
	// Method is the HTTP verb, http.MethodGet or http.MethodPost.
	Method string

	// Path is relative to the base URL, e.g. "/symptoms/s_21". It is
	// already escaped: an id containing "/" arrives as "%2F".
	Path string

	// Query holds the URL query parameters. May be nil.
	Query url.Values

	// Body is the JSON request body. Nil for GET requests.
	Body map[string]any
}

// Transport performs requests on behalf of a [Client].
//
// Implementations attach credentials, encode the body, and decode the
// response. Any error returned is propagated to the caller unmodified.
// Use [WithTransport] to plug in a custom implementation.
type Transport interface {
	Do(ctx context.Context, req *Request) (json.RawMessage, error)
}

// httpTransport is the default net/http based Transport.
type httpTransport struct {
	baseURL    string
	httpClient *http.Client
	headers    http.Header
	producer   runtime.Producer
	consumer   runtime.Consumer
}

func newHTTPTransport(baseURL string, httpClient *http.Client, headers http.Header) *httpTransport {
	return &httpTransport{
		baseURL:    baseURL,
		httpClient: httpClient,
		headers:    headers,
		producer:   runtime.JSONProducer(),
		consumer:   runtime.JSONConsumer(),
	}
}

func (t *httpTransport) Do(ctx context.Context, req *Request) (json.RawMessage, error) {
	u, err := url.Parse(t.baseURL)
	if err != nil {
		return nil, newError("INVALID_URL", "invalid base URL", 0, err)
	}
	// Preserve any base path in the URL (e.g., /v2)
	if err := joinEscapedPath(u, req.Path); err != nil {
		return nil, newError("INVALID_REQUEST", "invalid request path", 0, err)
	}
	if len(req.Query) > 0 {
		u.RawQuery = req.Query.Encode()
	}

	var body io.Reader = http.NoBody
	if req.Body != nil {
		var buf bytes.Buffer
		if err := t.producer.Produce(&buf, req.Body); err != nil {
			return nil, newError("INVALID_REQUEST", "failed to encode request body", 0, err)
		}
		body = &buf
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, u.String(), body)
	if err != nil {
		return nil, newError("REQUEST_FAILED", "failed to create request", 0, err)
	}
	for k, v := range t.headers {
		httpReq.Header[k] = v
	}
	httpReq.Header.Set(runtime.HeaderAccept, runtime.JSONMime)
	if req.Body != nil {
		httpReq.Header.Set(runtime.HeaderContentType, runtime.JSONMime)
	}

	resp, err := t.httpClient.Do(httpReq)
	if err != nil {
		if resp != nil && resp.Body != nil {
			_ = resp.Body.Close()
		}
		return nil, transportError(ctx, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Limit body read to prevent memory exhaustion from large error responses
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return nil, newStatusError(resp.StatusCode, data)
	}

	var out json.RawMessage
	if err := t.consumer.Consume(resp.Body, &out); err != nil {
		if errors.Is(err, io.EOF) {
			return json.RawMessage("null"), nil
		}
		return nil, &Error{
			Code:    "INVALID_RESPONSE",
			Message: "failed to decode response body",
			Status:  resp.StatusCode,
			Cause:   err,
		}
	}
	return out, nil
}

// joinEscapedPath appends the escaped path p to u, keeping escaped
// separators such as %2F inside their segment.
func joinEscapedPath(u *url.URL, p string) error {
	raw := path.Join(u.EscapedPath(), p)
	unescaped, err := url.PathUnescape(raw)
	if err != nil {
		return err
	}
	u.Path = unescaped
	u.RawPath = raw
	return nil
}

// transportError converts an http.Client error into an *Error.
func transportError(ctx context.Context, err error) *Error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return newError(ErrTimeout.Code, ErrTimeout.Message, 0, err)
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return newError(ErrTimeout.Code, ErrTimeout.Message, 0, err)
	}
	return newError("REQUEST_FAILED", "request failed", 0, err)
}
