// Command infermedica calls the Infermedica API from the command line and
// prints the JSON result.
//
// Usage:
//
//	infermedica [-config file] [-v] <command> [flags] [args]
//
// Credentials come from the config file or the INFERMEDICA_APP_ID and
// INFERMEDICA_APP_KEY environment variables.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-openapi/swag"

	"github.com/tomblancdev/infermedica-go"
	"github.com/tomblancdev/infermedica-go/internal/config"
)

const usage = `usage: infermedica [-config file] [-v] <command> [flags] [args]

commands:
  info                          model information
  compat                        check server API version
  conditions [id]               list conditions or fetch one
  symptoms [id]                 list symptoms or fetch one
  risk-factors [id]             list risk factors or fetch one
  lab-tests [id]                list lab tests or fetch one
  search [-sex s] [-max n] [-type t]... phrase
  lookup [-sex s] phrase
  parse [-tokens] [-spelling] [-concept-type t]... text
  diagnosis|rationale|triage|suggest|red-flags|explain [-f case.json]
`

func main() {
	os.Exit(Run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// Run is the entrypoint for testing.
//
// Exit codes:
//
//	0 = success
//	1 = API or transport failure
//	2 = usage or configuration error
func Run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("infermedica", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { _, _ = fmt.Fprint(stderr, usage) }

	var (
		configPath string
		verbose    bool
	)
	fs.StringVar(&configPath, "config", "", "Path to a YAML config file")
	fs.BoolVar(&verbose, "v", false, "Log requests to stderr")

	if err := fs.Parse(args[1:]); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if err := cfg.Validate(); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	client := newClient(cfg, verbose, stderr)
	ctx := context.Background()

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	var result json.RawMessage
	switch cmd {
	case "info":
		result, err = client.Info(ctx)
	case "compat":
		return runCompat(ctx, client, stdout, stderr)
	case "conditions":
		result, err = client.Conditions(ctx, optionalArg(cmdArgs))
	case "symptoms":
		result, err = client.Symptoms(ctx, optionalArg(cmdArgs))
	case "risk-factors":
		result, err = client.RiskFactors(ctx, optionalArg(cmdArgs))
	case "lab-tests":
		result, err = client.LabTests(ctx, optionalArg(cmdArgs))
	case "search":
		result, err = runSearch(ctx, client, cmdArgs, stderr)
	case "lookup":
		result, err = runLookup(ctx, client, cmdArgs, stderr)
	case "parse":
		result, err = runParse(ctx, client, cmdArgs, stderr)
	case "diagnosis", "rationale", "triage", "suggest", "red-flags", "explain":
		result, err = runCase(ctx, client, cmd, cmdArgs, stdin, stderr)
	default:
		_, _ = fmt.Fprintf(stderr, "Error: unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}

	if err != nil {
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", usageErr.err)
			return 2
		}
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		var apiErr *infermedica.Error
		if errors.As(err, &apiErr) && len(apiErr.Body) > 0 {
			_, _ = fmt.Fprintln(stderr, string(apiErr.Body))
		}
		return 1
	}

	return printJSON(stdout, stderr, result)
}

func newClient(cfg *config.Config, verbose bool, stderr io.Writer) *infermedica.Client {
	opts := []infermedica.Option{
		infermedica.WithDevMode(cfg.DevMode),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, infermedica.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Model != "" {
		opts = append(opts, infermedica.WithModel(cfg.Model))
	}
	if cfg.Timeout > 0 {
		opts = append(opts, infermedica.WithTimeout(cfg.Timeout))
	}
	if verbose {
		logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		opts = append(opts, infermedica.WithLogger(logger))
	}
	return infermedica.NewClient(cfg.AppID, cfg.AppKey, opts...)
}

// usageError marks errors caused by bad command-line input.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }

func usagef(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}

func optionalArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func printJSON(stdout, stderr io.Writer, result json.RawMessage) int {
	var buf bytes.Buffer
	if err := json.Indent(&buf, result, "", "  "); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: formatting result: %v\n", err)
		return 1
	}
	buf.WriteByte('\n')
	_, _ = stdout.Write(buf.Bytes())
	return 0
}

func runCompat(ctx context.Context, client *infermedica.Client, stdout, stderr io.Writer) int {
	result, err := client.ServerCompatibility(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, _ = fmt.Fprintln(stdout, result.Message)
	if !result.IsCompatible() {
		return 1
	}
	return 0
}

func runSearch(ctx context.Context, client *infermedica.Client, args []string, stderr io.Writer) (json.RawMessage, error) {
	cmd := flag.NewFlagSet("search", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		sex        string
		maxResults int
		types      multiFlag
	)
	cmd.StringVar(&sex, "sex", "", "Filter by sex: male or female")
	cmd.IntVar(&maxResults, "max", infermedica.DefaultMaxResults, "Maximum number of results")
	cmd.Var(&types, "type", "Concept type filter (repeatable): symptom, risk_factor, lab_test")

	if err := cmd.Parse(args); err != nil {
		return nil, &usageError{err: err}
	}
	if cmd.NArg() == 0 {
		return nil, usagef("search requires a phrase")
	}

	return client.Search(ctx, &infermedica.SearchRequest{
		Phrase:     strings.Join(cmd.Args(), " "),
		Sex:        sex,
		MaxResults: swag.Int(maxResults),
		Types:      types,
	})
}

func runLookup(ctx context.Context, client *infermedica.Client, args []string, stderr io.Writer) (json.RawMessage, error) {
	cmd := flag.NewFlagSet("lookup", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var sex string
	cmd.StringVar(&sex, "sex", "", "Filter by sex: male or female")

	if err := cmd.Parse(args); err != nil {
		return nil, &usageError{err: err}
	}
	if cmd.NArg() == 0 {
		return nil, usagef("lookup requires a phrase")
	}

	return client.Lookup(ctx, &infermedica.LookupRequest{
		Phrase: strings.Join(cmd.Args(), " "),
		Sex:    sex,
	})
}

func runParse(ctx context.Context, client *infermedica.Client, args []string, stderr io.Writer) (json.RawMessage, error) {
	cmd := flag.NewFlagSet("parse", flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var (
		tokens       bool
		spelling     bool
		conceptTypes multiFlag
	)
	cmd.BoolVar(&tokens, "tokens", false, "Include tokens in the result")
	cmd.BoolVar(&spelling, "spelling", false, "Correct spelling before parsing")
	cmd.Var(&conceptTypes, "concept-type", "Concept type to return (repeatable)")

	if err := cmd.Parse(args); err != nil {
		return nil, &usageError{err: err}
	}
	if cmd.NArg() == 0 {
		return nil, usagef("parse requires text")
	}

	return client.Parse(ctx, &infermedica.ParseRequest{
		Text:            strings.Join(cmd.Args(), " "),
		ConceptTypes:    conceptTypes,
		IncludeTokens:   tokens,
		CorrectSpelling: spelling,
	})
}

// caseFile is the JSON document accepted by the interview commands.
type caseFile struct {
	Sex         string         `json:"sex"`
	Age         int            `json:"age"`
	Evidence    []any          `json:"evidence"`
	Extras      map[string]any `json:"extras"`
	EvaluatedAt string         `json:"evaluated_at"`
	Target      string         `json:"target"`
	MaxResults  *int           `json:"max_results"`
}

func runCase(ctx context.Context, client *infermedica.Client, name string, args []string, stdin io.Reader, stderr io.Writer) (json.RawMessage, error) {
	cmd := flag.NewFlagSet(name, flag.ContinueOnError)
	cmd.SetOutput(stderr)

	var file string
	cmd.StringVar(&file, "f", "", "Case JSON file (default: stdin)")

	if err := cmd.Parse(args); err != nil {
		return nil, &usageError{err: err}
	}

	in := stdin
	if file != "" {
		f, err := os.Open(file)
		if err != nil {
			return nil, usagef("opening case file: %v", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var c caseFile
	if err := json.NewDecoder(in).Decode(&c); err != nil {
		return nil, usagef("decoding case: %v", err)
	}

	switch name {
	case "diagnosis", "rationale":
		req := &infermedica.DiagnosisRequest{
			Sex: c.Sex, Age: c.Age, Evidence: c.Evidence, Extras: c.Extras, EvaluatedAt: c.EvaluatedAt,
		}
		if name == "rationale" {
			return client.Rationale(ctx, req)
		}
		return client.Diagnosis(ctx, req)
	case "triage":
		return client.Triage(ctx, &infermedica.TriageRequest{
			Sex: c.Sex, Age: c.Age, Evidence: c.Evidence, Extras: c.Extras, EvaluatedAt: c.EvaluatedAt,
		})
	case "suggest", "red-flags":
		req := &infermedica.SuggestRequest{
			Sex: c.Sex, Age: c.Age, Evidence: c.Evidence, Extras: c.Extras, EvaluatedAt: c.EvaluatedAt,
			MaxResults: c.MaxResults,
		}
		if name == "red-flags" {
			return client.RedFlags(ctx, req)
		}
		return client.Suggest(ctx, req)
	default:
		if c.Target == "" {
			return nil, usagef("explain requires a target in the case file")
		}
		return client.Explain(ctx, &infermedica.ExplainRequest{
			Sex: c.Sex, Age: c.Age, Evidence: c.Evidence, Extras: c.Extras, EvaluatedAt: c.EvaluatedAt,
			Target: c.Target,
		})
	}
}
