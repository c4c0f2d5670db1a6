// Package main implements the fhircode CLI tool.
// It checks FHIR code values against built-in or loaded vocabularies.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"

	"github.com/gofhir/codes"
	"github.com/gofhir/codes/pkg/issue"
	"github.com/gofhir/codes/pkg/logger"
	"github.com/gofhir/codes/pkg/vocabulary"
	"github.com/gofhir/codes/terminology"
	"github.com/gofhir/codes/valueset"
	"github.com/gofhir/codes/worker"
)

const (
	version = "0.1.0"
	usage   = `fhircode - FHIR code checker

Usage:
  fhircode --vocab <name|url> [flags] <code>...
  fhircode --vocab <name|url> [flags] -    (read codes from stdin, one per line)
  fhircode --list [flags]

Examples:
  fhircode --vocab AdministrativeGender female
  fhircode --vocab http://hl7.org/fhir/ValueSet/observation-status final amended
  fhircode --vocab-file ValueSet-my-codes.json --vocab MyCodes --output json a b
  fhircode --vocab-dir package/ --list
  fhircode --vocab ObservationStatus --lenient something-new

Flags:
`
)

// Exit codes.
const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	Vocab       string
	VocabFiles  []string
	VocabDir    string
	Lenient     bool
	Output      OutputFormat
	Path        string
	List        bool
	LogLevel    logger.Level
	Verbose     bool
	Workers     int
	ShowVersion bool
	Help        bool
	Codes       []string
}

// CodeOutput is the result of checking one code.
type CodeOutput struct {
	Code     string        `json:"code"`
	Accepted bool          `json:"accepted"`
	Member   bool          `json:"member"`
	Display  string        `json:"display,omitempty"`
	Error    string        `json:"error,omitempty"`
	Issues   []IssueOutput `json:"issues,omitempty"`
}

// IssueOutput represents a single issue in JSON output
type IssueOutput struct {
	Severity    string   `json:"severity"`
	Code        string   `json:"code"`
	Diagnostics string   `json:"diagnostics"`
	Expression  []string `json:"expression,omitempty"`
}

// VocabularyOutput describes a catalog entry for --list.
type VocabularyOutput struct {
	Name       string `json:"name"`
	URL        string `json:"url,omitempty"`
	Extensible bool   `json:"extensible"`
	Codes      int    `json:"codes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flagSet, config := newFlagSet(stderr)
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}
	if err := config.finish(flagSet); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if config.ShowVersion {
		fmt.Fprintf(stdout, "fhircode v%s\n", version)
		return exitOK
	}
	if config.Help || (!config.List && (config.Vocab == "" || len(config.Codes) == 0)) {
		flagSet.Usage()
		if config.Help {
			return exitOK
		}
		return exitUsage
	}

	logger.SetDefault(logger.New(stderr, config.LogLevel))

	catalog, err := buildCatalog(config)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if config.List {
		printList(stdout, catalog, config)
		return exitOK
	}

	binder, ok := catalog.Lookup(config.Vocab)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown vocabulary %q (use --list)\n", config.Vocab)
		return exitUsage
	}

	wires, err := readCodes(config.Codes, stdin)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading stdin: %v\n", err)
		return exitUsage
	}

	var opts []codes.Option
	if config.Path != "" {
		opts = append(opts, codes.WithPath(config.Path))
	}

	batch := worker.NewBatchDecoder(binder, config.Workers).
		Lenient(config.Lenient).
		Options(opts...).
		DecodeBatch(context.Background(), wires)

	outputs := make([]CodeOutput, 0, len(wires))
	for _, r := range batch.Results {
		outputs = append(outputs, checkOutput(binder.Descriptor(), r))
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Fprintln(stdout, string(jsonOutput))
	} else {
		for _, out := range outputs {
			printTextResult(stdout, out)
		}
	}

	if batch.HasErrors() {
		return exitRejected
	}
	return exitOK
}

func newFlagSet(stderr io.Writer) (*pflag.FlagSet, *Config) {
	config := &Config{Output: OutputText}
	flagSet := pflag.NewFlagSet("fhircode", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)

	flagSet.StringVarP(&config.Vocab, "vocab", "V", "", "vocabulary name or canonical URL")
	flagSet.StringSliceVar(&config.VocabFiles, "vocab-file", nil, "ValueSet/CodeSystem JSON or vocabulary YAML file(s) to load")
	flagSet.StringVar(&config.VocabDir, "vocab-dir", "", "directory of CodeSystem-*.json, ValueSet-*.json and *.yaml files to load")
	flagSet.BoolVar(&config.Lenient, "lenient", false, "accept well-formed codes outside the vocabulary")
	flagSet.StringP("output", "o", "text", "output format: text, json")
	flagSet.StringVar(&config.Path, "path", "", "element path used in issues (default \"code\")")
	flagSet.BoolVar(&config.List, "list", false, "list the available vocabularies")
	flagSet.IntVar(&config.Workers, "workers", 0, "number of parallel decoders (default: number of CPUs)")
	flagSet.String("log-level", "warn", "log level: debug, info, warn, error, none")
	flagSet.BoolVarP(&config.Verbose, "verbose", "v", false, "show debug logging (same as --log-level debug)")
	flagSet.BoolVar(&config.ShowVersion, "version", false, "show version")
	flagSet.BoolVarP(&config.Help, "help", "h", false, "show help")

	flagSet.Usage = func() {
		fmt.Fprint(stderr, usage)
		flagSet.PrintDefaults()
	}
	return flagSet, config
}

func (c *Config) finish(flagSet *pflag.FlagSet) error {
	output, _ := flagSet.GetString("output")
	switch strings.ToLower(output) {
	case "text":
		c.Output = OutputText
	case "json":
		c.Output = OutputJSON
	default:
		return fmt.Errorf("unsupported output format: %s", output)
	}
	levelName, _ := flagSet.GetString("log-level")
	level, err := logger.ParseLevel(levelName)
	if err != nil {
		return err
	}
	c.LogLevel = level
	if c.Verbose {
		c.LogLevel = logger.LevelDebug
	}
	c.Codes = flagSet.Args()
	return nil
}

// buildCatalog returns everything loaded from --vocab-file and
// --vocab-dir plus the built-in vocabularies. A loaded vocabulary hides
// a built-in one with the same name or URL.
func buildCatalog(config *Config) (*codes.Catalog, error) {
	catalog := codes.NewCatalog()
	if len(config.VocabFiles) > 0 || config.VocabDir != "" {
		loader := terminology.NewLoader()
		for _, path := range config.VocabFiles {
			if _, err := loader.LoadFile(path); err != nil {
				return nil, err
			}
		}
		if config.VocabDir != "" {
			if _, err := loader.LoadDirectory(config.VocabDir); err != nil {
				return nil, err
			}
		}
		if err := loader.Register(catalog); err != nil {
			return nil, err
		}
	}

	for _, b := range valueset.Tables() {
		d := b.Descriptor()
		_, nameTaken := catalog.Lookup(d.Name())
		_, urlTaken := catalog.Lookup(d.URL())
		if nameTaken || urlTaken {
			logger.Debug("built-in %s hidden by a loaded vocabulary", d.Name())
			continue
		}
		if err := catalog.Register(b); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

func readCodes(args []string, stdin io.Reader) ([]string, error) {
	var wires []string
	for _, arg := range args {
		if arg != "-" {
			wires = append(wires, arg)
			continue
		}
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
				wires = append(wires, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return wires, nil
}

func checkOutput(d vocabulary.Descriptor, r *worker.JobResult) CodeOutput {
	out := CodeOutput{Code: r.Wire, Accepted: r.Error == nil}
	if display, _, ok := d.Describe(r.Wire); ok {
		out.Member = true
		out.Display = display
	}
	if r.Error == nil {
		return out
	}

	out.Error = r.Error.Error()
	var verr *codes.ValidationError
	if errors.As(r.Error, &verr) {
		for _, iss := range verr.Issues {
			out.Issues = append(out.Issues, issueOutput(iss))
		}
	}
	return out
}

func issueOutput(iss issue.Issue) IssueOutput {
	return IssueOutput{
		Severity:    string(iss.Severity),
		Code:        string(iss.Code),
		Diagnostics: iss.Diagnostics,
		Expression:  iss.Expression,
	}
}

func printTextResult(w io.Writer, out CodeOutput) {
	switch {
	case out.Accepted && out.Member:
		fmt.Fprintf(w, "OK       %s", out.Code)
		if out.Display != "" {
			fmt.Fprintf(w, " (%s)", out.Display)
		}
		fmt.Fprintln(w)
	case out.Accepted:
		fmt.Fprintf(w, "UNKNOWN  %s (kept, not in vocabulary)\n", out.Code)
	default:
		fmt.Fprintf(w, "REJECTED %s\n", out.Code)
		if len(out.Issues) == 0 {
			fmt.Fprintf(w, "  ERROR %s\n", out.Error)
		}
		for _, iss := range out.Issues {
			location := ""
			if len(iss.Expression) > 0 {
				location = fmt.Sprintf(" @ %s", strings.Join(iss.Expression, ", "))
			}
			fmt.Fprintf(w, "  %s [%s] %s%s\n", severityLabel(iss.Severity), iss.Code, iss.Diagnostics, location)
		}
	}
}

func printList(w io.Writer, catalog *codes.Catalog, config *Config) {
	var list []VocabularyOutput
	for _, name := range catalog.Names() {
		b, _ := catalog.Lookup(name)
		d := b.Descriptor()
		list = append(list, VocabularyOutput{
			Name:       d.Name(),
			URL:        d.URL(),
			Extensible: d.Extensible(),
			Codes:      d.Len(),
		})
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(list, "", "  ")
		fmt.Fprintln(w, string(jsonOutput))
		return
	}
	for _, v := range list {
		kind := "closed"
		if v.Extensible {
			kind = "extensible"
		}
		fmt.Fprintf(w, "%-28s %3d codes  %-10s  %s\n", v.Name, v.Codes, kind, v.URL)
	}
}

func severityLabel(severity string) string {
	switch issue.Severity(severity) {
	case issue.SeverityError, issue.SeverityFatal:
		return "ERROR"
	case issue.SeverityWarning:
		return "WARN "
	case issue.SeverityInformation:
		return "INFO "
	default:
		return "     "
	}
}
