package infermedica

import (
	"time"

	"github.com/go-openapi/strfmt"
)

// Sex values accepted by the API.
const (
	SexMale   = "male"
	SexFemale = "female"
)

// Evidence choice values.
const (
	ChoicePresent = "present"
	ChoiceAbsent  = "absent"
	ChoiceUnknown = "unknown"
)

// Concept types accepted by the search filters.
const (
	TypeSymptom    = "symptom"
	TypeRiskFactor = "risk_factor"
	TypeLabTest    = "lab_test"
)

// DefaultMaxResults is used by [Client.Search], [Client.Suggest] and
// [Client.RedFlags] when MaxResults is nil.
const DefaultMaxResults = 8

// Evidence is a convenience type for a single observation reported for a
// patient. Request Evidence fields accept any JSON-encodable item, so
// callers may also pass maps or json.RawMessage values carrying fields
// this type does not model (e.g. observed_at).
//
// The client forwards evidence to the API as-is and does not check ids
// or choice values.
//
//	ev := infermedica.Evidence{ID: "s_21", ChoiceID: infermedica.ChoicePresent, Initial: swag.Bool(true)}
type Evidence struct {
	// ID is the symptom, risk factor or lab test id, e.g. "s_21".
	ID string `json:"id"`

	// ChoiceID is one of "present", "absent" or "unknown".
	ChoiceID string `json:"choice_id"`

	// Source optionally tells the API where the evidence came from,
	// e.g. "initial", "suggest", "predefined" or "red_flags".
	Source string `json:"source,omitempty"`

	// Initial marks evidence reported by the patient before the interview.
	// Nil omits the field; a pointer to false sends "initial": false.
	Initial *bool `json:"initial,omitempty"`
}

// EvaluatedAtDate formats t as a date ("2006-01-02") for an
// EvaluatedAt field.
func EvaluatedAtDate(t time.Time) string {
	return strfmt.Date(t).String()
}

// EvaluatedAtTime formats t as an RFC 3339 date-time for an EvaluatedAt field.
func EvaluatedAtTime(t time.Time) string {
	return strfmt.DateTime(t).String()
}

// caseBody holds the fields shared by every interview endpoint.
type caseBody struct {
	Sex         string
	Age         int
	Evidence    []any
	Extras      map[string]any
	EvaluatedAt string
}

// toMap builds the JSON body. Missing evidence and extras are sent as an
// empty list and object; evaluated_at is omitted entirely when empty.
func (b caseBody) toMap() map[string]any {
	evidence := b.Evidence
	if evidence == nil {
		evidence = []any{}
	}
	extras := b.Extras
	if extras == nil {
		extras = map[string]any{}
	}

	body := map[string]any{
		"sex":      b.Sex,
		"age":      b.Age,
		"evidence": evidence,
		"extras":   extras,
	}
	if b.EvaluatedAt != "" {
		body["evaluated_at"] = b.EvaluatedAt
	}
	return body
}
