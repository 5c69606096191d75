package infermedica

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// LookupRequest matches a phrase to a single observation.
type LookupRequest struct {
	// Phrase is the text to look up, e.g. "headache". Required.
	Phrase string

	// Sex optionally narrows the result. Values not matching
	// "male" or "female" are dropped rather than rejected.
	Sex string
}

// SearchRequest searches observations by phrase.
type SearchRequest struct {
	// Phrase is the text to search for. Required.
	Phrase string

	// Sex optionally narrows the results. Invalid values are dropped.
	Sex string

	// MaxResults limits the number of results. Nil means [DefaultMaxResults].
	MaxResults *int

	// Types restricts results to the given concept types ("symptom",
	// "risk_factor", "lab_test"). If any element is invalid the whole
	// filter is dropped.
	Types []string
}

// ParseRequest extracts observations from free text.
type ParseRequest struct {
	// Text to analyze. Required, at most [MaxParseTextLength] characters.
	Text string

	// Context lists ids of observations already known. Defaults to [""].
	Context []string

	// ConceptTypes restricts the mentions returned. Sent only when non-empty.
	ConceptTypes []string

	// IncludeTokens asks the API to return the tokenized text.
	IncludeTokens bool

	// CorrectSpelling enables spelling correction.
	CorrectSpelling bool
}

// Lookup calls GET /lookup.
func (c *Client) Lookup(ctx context.Context, req *LookupRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	query := url.Values{}
	query.Set("phrase", req.Phrase)
	if validSex(req.Sex) {
		query.Set("sex", req.Sex)
	}
	return c.call(ctx, "Lookup", &Request{
		Method: http.MethodGet,
		Path:   "/lookup",
		Query:  query,
	})
}

// Search calls GET /search.
//
// Multiple types are sent as repeated type parameters.
func (c *Client) Search(ctx context.Context, req *SearchRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	query := url.Values{}
	query.Set("phrase", req.Phrase)
	query.Set("max_results", strconv.Itoa(maxResults(req.MaxResults)))
	if validSex(req.Sex) {
		query.Set("sex", req.Sex)
	}
	if validTypes(req.Types) {
		query["type"] = append([]string(nil), req.Types...)
	}
	return c.call(ctx, "Search", &Request{
		Method: http.MethodGet,
		Path:   "/search",
		Query:  query,
	})
}

// Parse calls POST /parse.
//
// Text longer than [MaxParseTextLength] characters fails with a
// VALIDATION error before any request is sent:
//
//	_, err := client.Parse(ctx, &infermedica.ParseRequest{Text: longText})
//	if errors.Is(err, infermedica.ErrValidation) { ... }
func (c *Client) Parse(ctx context.Context, req *ParseRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	if err := checkParseText(req.Text); err != nil {
		return nil, err
	}

	parseContext := req.Context
	if parseContext == nil {
		parseContext = []string{""}
	}
	body := map[string]any{
		"text":             req.Text,
		"context":          parseContext,
		"include_tokens":   req.IncludeTokens,
		"correct_spelling": req.CorrectSpelling,
	}
	if len(req.ConceptTypes) > 0 {
		body["concept_types"] = req.ConceptTypes
	}

	return c.call(ctx, "Parse", &Request{
		Method: http.MethodPost,
		Path:   "/parse",
		Body:   body,
	})
}
