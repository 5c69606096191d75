package infermedica

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
)

// DiagnosisRequest describes a patient case for the interview endpoints.
//
// Sex and Age are required by the API. Evidence and Extras default to an
// empty list and object.
//
//	result, err := client.Diagnosis(ctx, &infermedica.DiagnosisRequest{
//	    Sex: infermedica.SexFemale,
//	    Age: 32,
//	    Evidence: []any{
//	        infermedica.Evidence{ID: "s_21", ChoiceID: infermedica.ChoicePresent},
//	        map[string]any{"id": "s_98", "choice_id": "absent", "observed_at": "2017-12-31"},
//	    },
//	})
type DiagnosisRequest struct {
	// Sex is "male" or "female". Required.
	Sex string

	// Age in years. Required.
	Age int

	// Evidence gathered so far. Items are sent unmodified; use [Evidence]
	// or any other JSON-encodable value.
	Evidence []any

	// Extras carries experimental options, e.g. {"disable_groups": true}.
	Extras map[string]any

	// EvaluatedAt is the point in time the case refers to. Sent as
	// evaluated_at only when non-empty. See [EvaluatedAtDate].
	EvaluatedAt string
}

func (r *DiagnosisRequest) body() caseBody {
	return caseBody{
		Sex:         r.Sex,
		Age:         r.Age,
		Evidence:    r.Evidence,
		Extras:      r.Extras,
		EvaluatedAt: r.EvaluatedAt,
	}
}

// ExplainRequest asks which evidence supports a given condition.
type ExplainRequest struct {
	Sex         string
	Age         int
	Evidence    []any
	Extras      map[string]any
	EvaluatedAt string

	// Target is the condition id to explain, e.g. "c_49". Required.
	Target string
}

func (r *ExplainRequest) body() caseBody {
	return caseBody{
		Sex:         r.Sex,
		Age:         r.Age,
		Evidence:    r.Evidence,
		Extras:      r.Extras,
		EvaluatedAt: r.EvaluatedAt,
	}
}

// SuggestRequest is used by [Client.Suggest] and [Client.RedFlags].
type SuggestRequest struct {
	Sex         string
	Age         int
	Evidence    []any
	Extras      map[string]any
	EvaluatedAt string

	// MaxResults limits the number of suggestions.
	// Nil means [DefaultMaxResults]. Sent as the max_results query parameter.
	MaxResults *int
}

func (r *SuggestRequest) body() caseBody {
	return caseBody{
		Sex:         r.Sex,
		Age:         r.Age,
		Evidence:    r.Evidence,
		Extras:      r.Extras,
		EvaluatedAt: r.EvaluatedAt,
	}
}

// TriageRequest describes a case to be triaged.
type TriageRequest struct {
	Sex         string
	Age         int
	Evidence    []any
	Extras      map[string]any
	EvaluatedAt string
}

func (r *TriageRequest) body() caseBody {
	return caseBody{
		Sex:         r.Sex,
		Age:         r.Age,
		Evidence:    r.Evidence,
		Extras:      r.Extras,
		EvaluatedAt: r.EvaluatedAt,
	}
}

// Diagnosis calls POST /diagnosis.
//
// The result holds the next interview question and the ranked list of
// conditions; callers decode it into their own types.
func (c *Client) Diagnosis(ctx context.Context, req *DiagnosisRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	return c.call(ctx, "Diagnosis", &Request{
		Method: http.MethodPost,
		Path:   "/diagnosis",
		Body:   req.body().toMap(),
	})
}

// Rationale calls POST /rationale, which explains why the last question
// of a diagnosis was asked.
func (c *Client) Rationale(ctx context.Context, req *DiagnosisRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	return c.call(ctx, "Rationale", &Request{
		Method: http.MethodPost,
		Path:   "/rationale",
		Body:   req.body().toMap(),
	})
}

// Explain calls POST /explain.
func (c *Client) Explain(ctx context.Context, req *ExplainRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	body := req.body().toMap()
	body["target"] = req.Target

	return c.call(ctx, "Explain", &Request{
		Method: http.MethodPost,
		Path:   "/explain",
		Body:   body,
	})
}

// Suggest calls POST /suggest?max_results={n}.
//
// MaxResults travels in the query string, not in the body.
func (c *Client) Suggest(ctx context.Context, req *SuggestRequest) (json.RawMessage, error) {
	return c.suggest(ctx, "Suggest", "/suggest", req)
}

// RedFlags calls POST /red_flags?max_results={n}. The request is shaped
// like [Client.Suggest].
func (c *Client) RedFlags(ctx context.Context, req *SuggestRequest) (json.RawMessage, error) {
	return c.suggest(ctx, "RedFlags", "/red_flags", req)
}

func (c *Client) suggest(ctx context.Context, op, p string, req *SuggestRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	return c.call(ctx, op, &Request{
		Method: http.MethodPost,
		Path:   p,
		Query:  url.Values{"max_results": {strconv.Itoa(maxResults(req.MaxResults))}},
		Body:   req.body().toMap(),
	})
}

// Triage calls POST /triage.
func (c *Client) Triage(ctx context.Context, req *TriageRequest) (json.RawMessage, error) {
	if req == nil {
		return nil, newError(ErrBadRequest.Code, "request is required", ErrBadRequest.Status, nil)
	}
	return c.call(ctx, "Triage", &Request{
		Method: http.MethodPost,
		Path:   "/triage",
		Body:   req.body().toMap(),
	})
}

// maxResults returns n, or DefaultMaxResults when n is nil.
func maxResults(n *int) int {
	if n == nil {
		return DefaultMaxResults
	}
	return *n
}
