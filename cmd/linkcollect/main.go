package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/linkcollect"
	"github.com/fwojciec/linkcollect/collect"
	"github.com/fwojciec/linkcollect/fs"
	"github.com/fwojciec/linkcollect/goquery"
	"github.com/fwojciec/linkcollect/html"
	linkhttp "github.com/fwojciec/linkcollect/http"
	linkslog "github.com/fwojciec/linkcollect/slog"
)

func main() {
	ctx := context.Background()

	interrupts := make(chan os.Signal, 1)
	signal.Notify(interrupts, os.Interrupt)

	m := NewMain()
	m.Interrupts = interrupts

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var reported *ReportedError
		if !errors.As(err, &reported) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Path of the saved link list. Set before calling Run().
	OutputPath string

	// Source of URLs in interactive mode.
	Stdin io.Reader

	// Interrupts stops an in-flight run, or leaves the prompt when idle.
	Interrupts <-chan os.Signal
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		OutputPath: fs.DefaultPath(),
		Stdin:      os.Stdin,
	}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Debug bool   `help:"Log fetch, parse and save activity to stderr"`
	URL   string `arg:"" optional:"" help:"Website URL to collect links from; prompts for URLs when omitted"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("linkcollect"),
		kong.Description("Collect the links on a web page and save them to "+fs.DefaultFilename),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	// Logs stay quiet unless --debug is set.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	// Wire dependencies
	var fetcher linkcollect.Fetcher = linkhttp.NewFetcher()
	defer fetcher.Close()

	var extractor linkcollect.LinkExtractor = goquery.NewExtractor(
		goquery.WithFallback(html.NewExtractor()),
	)
	var sink linkcollect.LinkSink = fs.NewSink(m.OutputPath)

	if cli.Debug {
		fetcher = linkslog.NewLoggingFetcher(fetcher, logger)
		extractor = linkslog.NewLoggingExtractor(extractor, logger)
		sink = linkslog.NewLoggingSink(sink, logger)
	}

	pipeline := &collect.Pipeline{
		Fetcher:   fetcher,
		Extractor: extractor,
	}

	deps := &Dependencies{
		Ctx:        ctx,
		Stdin:      m.Stdin,
		Stdout:     stdout,
		Stderr:     stderr,
		Interrupts: m.Interrupts,
		Controller: collect.NewController(pipeline, sink, logger),
	}

	if cli.URL != "" {
		cmd := &CollectCmd{URL: cli.URL}
		return cmd.Run(deps)
	}

	cmd := &PromptCmd{}
	return cmd.Run(deps)
}
