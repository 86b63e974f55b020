package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dvloznov/keep2notion/internal/config"
	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/dvloznov/keep2notion/internal/logger"
	"github.com/dvloznov/keep2notion/internal/notesource"
	"github.com/dvloznov/keep2notion/internal/notionsync"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"google.golang.org/api/option"
)

// app holds what every command needs once flags and environment are resolved.
type app struct {
	newClient notionsync.ClientFactory
	storage   notesource.StorageService

	cfg *config.Config
	log zerolog.Logger

	// Persistent flags
	logLevel  string
	logFormat string
	year      int
	gcsURI    string
	jsonOut   bool
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	decimal.MarshalJSONWithoutQuotes = true

	a := &app{newClient: notionsync.NewService}
	err := newRootCmd(a).ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+err.Error())
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "keep2notion",
		Short: "Move expense notes from Google Keep into Notion",
		Long: `keep2notion parses expense notes copied from Google Keep, checks them and
uploads them to a Notion database.

Notes look like:

  Monday, 23rd June
  • Coffee - 4.50 (Cash)
  • Salary - +2000 (Bank A/C)

Notes are read from a file argument, from stdin or from Cloud Storage (--gcs-uri).`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); default from LOG_LEVEL")
	flags.StringVar(&a.logFormat, "log-format", "", "log format (console, json); default from LOG_FORMAT")
	flags.IntVar(&a.year, "year", 0, "year for date headers; default from KEEP2NOTION_YEAR or the current year")
	flags.StringVar(&a.gcsURI, "gcs-uri", "", "read notes from a Cloud Storage object (gs://bucket/object)")
	flags.BoolVar(&a.jsonOut, "json", false, "print JSON instead of a table")

	rootCmd.AddCommand(parseCmd(a))
	rootCmd.AddCommand(validateCmd(a))
	rootCmd.AddCommand(uploadCmd(a))
	rootCmd.AddCommand(testNotionCmd(a))

	return rootCmd
}

// setup loads configuration, applies flag overrides and puts the logger in
// the command context.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if a.logFormat != "" {
		cfg.LogFormat = a.logFormat
	}
	if a.year != 0 {
		cfg.Year = a.year
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	a.log = logger.NewFromConfig(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())
	cmd.SetContext(logger.WithContext(cmd.Context(), a.log))

	return nil
}

func (a *app) parser() *expense.Parser {
	return expense.NewParser(expense.WithYear(a.cfg.Year))
}

// loadNotes reads the notes text from --gcs-uri, the file argument or stdin.
func (a *app) loadNotes(cmd *cobra.Command, args []string) (string, error) {
	src := notesource.Source{
		GCSURI:  a.gcsURI,
		Stdin:   cmd.InOrStdin(),
		Storage: a.storage,
	}
	if len(args) > 0 {
		src.Path = args[0]
	}
	if src.GCSURI != "" && src.Storage == nil && a.cfg.GCSCredentialsFile != "" {
		src.Storage = notesource.NewGCSStorageService(option.WithCredentialsFile(a.cfg.GCSCredentialsFile))
	}

	a.log.Debug().
		Str("gcs_uri", src.GCSURI).
		Str("path", src.Path).
		Msg("Loading notes")

	return notesource.Load(cmd.Context(), src)
}

// parseNotes loads and parses the notes. Unparseable lines are reported on
// stderr and never fail the command.
func (a *app) parseNotes(cmd *cobra.Command, args []string) (*expense.ParseResult, error) {
	text, err := a.loadNotes(cmd, args)
	if err != nil {
		return nil, err
	}

	result, err := a.parser().Parse(cmd.Context(), text)
	if err != nil {
		return nil, err
	}

	if !a.jsonOut {
		printWarnings(cmd.ErrOrStderr(), result.Warnings)
	}
	return result, nil
}
