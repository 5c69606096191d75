package infermedica

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// ConceptsRequest filters [Client.Concepts].
type ConceptsRequest struct {
	// IDs restricts the result to the given concept ids.
	IDs []string

	// Types restricts the result to the given concept types. Dropped if
	// any element is not a known type, as in [SearchRequest].
	Types []string
}

// collection fetches every item of resource when id is empty, or the
// single item with that id otherwise. The id is always one escaped path
// segment, so "a/b" or "../info" cannot address another resource.
func (c *Client) collection(ctx context.Context, op, resource, id string) (json.RawMessage, error) {
	p := "/" + resource
	if id != "" {
		p += "/" + escapeSegment(id)
	}
	return c.call(ctx, op, &Request{Method: http.MethodGet, Path: p})
}

// escapeSegment escapes id for use as a single path segment. The dot
// segments "." and ".." are encoded too, as PathEscape leaves them as is.
func escapeSegment(id string) string {
	if id == "." || id == ".." {
		return strings.ReplaceAll(id, ".", "%2E")
	}
	return url.PathEscape(id)
}

// Conditions calls GET /conditions or GET /conditions/{id}.
//
// An empty id lists every condition known to the model.
func (c *Client) Conditions(ctx context.Context, id string) (json.RawMessage, error) {
	return c.collection(ctx, "Conditions", "conditions", id)
}

// LabTests calls GET /lab_tests or GET /lab_tests/{id}.
func (c *Client) LabTests(ctx context.Context, id string) (json.RawMessage, error) {
	return c.collection(ctx, "LabTests", "lab_tests", id)
}

// RiskFactors calls GET /risk_factors or GET /risk_factors/{id}.
func (c *Client) RiskFactors(ctx context.Context, id string) (json.RawMessage, error) {
	return c.collection(ctx, "RiskFactors", "risk_factors", id)
}

// Symptoms calls GET /symptoms or GET /symptoms/{id}.
func (c *Client) Symptoms(ctx context.Context, id string) (json.RawMessage, error) {
	return c.collection(ctx, "Symptoms", "symptoms", id)
}

// Concepts calls GET /concepts. A nil request lists every concept.
func (c *Client) Concepts(ctx context.Context, req *ConceptsRequest) (json.RawMessage, error) {
	query := url.Values{}
	if req != nil {
		if len(req.IDs) > 0 {
			query.Set("ids", strings.Join(req.IDs, ","))
		}
		if validTypes(req.Types) {
			query.Set("types", strings.Join(req.Types, ","))
		}
	}
	return c.call(ctx, "Concepts", &Request{
		Method: http.MethodGet,
		Path:   "/concepts",
		Query:  query,
	})
}

// Info calls GET /info.
//
// The result describes the knowledge model: its version, update date and
// the number of conditions, symptoms, risk factors and lab tests.
func (c *Client) Info(ctx context.Context) (json.RawMessage, error) {
	return c.call(ctx, "Info", &Request{Method: http.MethodGet, Path: "/info"})
}

// ServerCompatibility calls GET /info and checks the reported
// api_version against [APIVersionRange].
//
//	result, err := client.ServerCompatibility(ctx)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.IsCompatible() {
//	    log.Println(result.Message)
//	}
func (c *Client) ServerCompatibility(ctx context.Context) (*CompatibilityResult, error) {
	raw, err := c.Info(ctx)
	if err != nil {
		return nil, err
	}

	var info struct {
		APIVersion string `json:"api_version"`
	}
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, newError("INVALID_RESPONSE", "failed to decode info response", 0, err)
	}
	return CheckCompatibility(info.APIVersion), nil
}
