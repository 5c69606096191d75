package infermedica

import (
	"github.com/go-openapi/validate"
)

// MaxParseTextLength is the longest text, in characters, accepted by [Client.Parse].
const MaxParseTextLength = 1024

// The filter patterns are unanchored, so any value containing an allowed
// token passes (e.g. "females").
const (
	sexPattern  = "male|female"
	typePattern = "symptom|risk_factor|lab_test"
)

// validSex reports whether sex should be forwarded as a filter.
func validSex(sex string) bool {
	if sex == "" {
		return false
	}
	return validate.Pattern("sex", "query", sex, sexPattern) == nil
}

// validTypes reports whether every element of types should be forwarded.
// An empty list is never forwarded.
func validTypes(types []string) bool {
	if len(types) == 0 {
		return false
	}
	for _, t := range types {
		if validate.Pattern("type", "query", t, typePattern) != nil {
			return false
		}
	}
	return true
}

// checkParseText enforces the text length limit of /parse.
func checkParseText(text string) error {
	if verr := validate.MaxLength("text", "body", text, MaxParseTextLength); verr != nil {
		return newError(ErrValidation.Code, "text exceeds maximum length", ErrValidation.Status, verr)
	}
	return nil
}
