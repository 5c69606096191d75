// Package infermedica provides a Go SDK for the Infermedica API.
//
// Infermedica is a medical diagnostic reasoning service: given a patient's
// sex, age and reported evidence it returns likely conditions, the next
// interview question, triage levels and more. This SDK shapes requests,
// authenticates them and returns the decoded response. It does no local
// reasoning, caching or retrying.
//
// # Installation
//
//	go get github.com/tomblancdev/infermedica-go
//
// # Quick Start
//
//	package main
//
//	import (
//	    "context"
//	    "fmt"
//	    "log"
//	    "os"
//
//	    "github.com/tomblancdev/infermedica-go"
//	)
//
//	func main() {
//	    client := infermedica.NewClient(os.Getenv("INFERMEDICA_APP_ID"), os.Getenv("INFERMEDICA_APP_KEY"))
//
//	    result, err := client.Diagnosis(context.Background(), &infermedica.DiagnosisRequest{
//	        Sex: infermedica.SexMale,
//	        Age: 30,
//	        Evidence: []any{
//	            infermedica.Evidence{ID: "s_1193", ChoiceID: infermedica.ChoicePresent},
//	        },
//	    })
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(string(result))
//	}
//
// # Results
//
// Every operation returns the response body as [encoding/json.RawMessage].
// The SDK does not impose a schema on results; decode them into your own
// types.
//
// # Client Configuration
//
//	client := infermedica.NewClient(appID, appKey,
//	    infermedica.WithTimeout(10*time.Second),
//	    infermedica.WithModel("infermedica-en"),
//	    infermedica.WithInterviewID(infermedica.NewInterviewID()),
//	    infermedica.WithLogger(slog.Default()),
//	)
//
// # Error Handling
//
// Failures are reported as [*Error]. Remote failures carry the HTTP
// status and the error body returned by the server:
//
//	_, err := client.Symptoms(ctx, "s_0")
//	var apiErr *infermedica.Error
//	if errors.As(err, &apiErr) {
//	    fmt.Println(apiErr.Status, string(apiErr.Body))
//	}
//	if errors.Is(err, infermedica.ErrNotFound) {
//	    // Handle not found
//	}
//
// The only check done before a request is sent is the text length limit
// of [Client.Parse], reported as [ErrValidation].
//
// # Concurrency
//
// The [Client] is safe for concurrent use by multiple goroutines. Each
// method call is independent. Use [Go] to start a call without blocking
// and collect its result later.
package infermedica
