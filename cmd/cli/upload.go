package main

import (
	"errors"
	"fmt"

	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/dvloznov/keep2notion/internal/notionsync"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

// notionFlags are the credentials flags shared by upload and test-notion.
type notionFlags struct {
	token       string
	databaseURL string
}

func (f *notionFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.token, "notion-token", "", "Notion integration token (default from NOTION_TOKEN)")
	cmd.Flags().StringVar(&f.databaseURL, "database-url", "", "Notion database URL (default from NOTION_DATABASE_URL)")
}

// resolve applies the configured defaults and extracts the database ID.
// Offline callers (dry runs) need neither a token nor a database.
func (f *notionFlags) resolve(a *app, online bool) (token, databaseID string, err error) {
	token = f.token
	if token == "" {
		token = a.cfg.NotionToken
	}
	databaseURL := f.databaseURL
	if databaseURL == "" {
		databaseURL = a.cfg.NotionDatabaseURL
	}

	if online && token == "" {
		return "", "", errors.New("notion token is required (--notion-token or NOTION_TOKEN)")
	}
	if databaseURL == "" {
		if !online {
			return token, "", nil
		}
		return "", "", errors.New("database URL is required (--database-url or NOTION_DATABASE_URL)")
	}

	databaseID, err = notionsync.ExtractDatabaseID(databaseURL)
	if err != nil {
		return "", "", err
	}
	return token, databaseID, nil
}

func uploadCmd(a *app) *cobra.Command {
	var (
		creds  notionFlags
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "upload [notes-file]",
		Short: "Parse notes and create one Notion page per expense",
		Long: `Parse notes and create one Notion page per expense.

Expenses are validated first; the upload is refused when any expense is
incomplete unless --force is given. A failed page never stops the rest of
the upload. Use --dry-run to see what would be created.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, databaseID, err := creds.resolve(a, !dryRun)
			if err != nil {
				return err
			}

			result, err := a.parseNotes(cmd, args)
			if err != nil {
				return err
			}

			report := expense.Validate(result.Records)
			if !report.Valid {
				printErrors(cmd.ErrOrStderr(), report.Errors)
				if !force {
					return fmt.Errorf("%w: %d problems (use --force to upload anyway)", errInvalidExpenses, len(report.Errors))
				}
			}

			bar := progressbar.NewOptions(len(result.Records),
				progressbar.OptionSetWriter(cmd.ErrOrStderr()),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Uploading expenses"),
				progressbar.OptionClearOnFinish(),
			)

			summary := notionsync.UploadRecords(cmd.Context(), a.newClient(token), databaseID, result.Records, notionsync.UploadOptions{
				DryRun: dryRun,
				OnResult: func(notionsync.UploadResult) {
					if err := bar.Add(1); err != nil {
						a.log.Debug().Err(err).Msg("Failed to update progress bar")
					}
				},
			})
			_ = bar.Finish()

			return printSummary(cmd, a, summary)
		},
	}

	creds.register(cmd)
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show what would be uploaded without calling Notion")
	cmd.Flags().BoolVar(&force, "force", false, "upload even when some expenses fail validation")

	return cmd
}

func printSummary(cmd *cobra.Command, a *app, summary *notionsync.UploadSummary) error {
	out := cmd.OutOrStdout()

	if a.jsonOut {
		if err := writeJSON(out, map[string]interface{}{
			"message": summary.Message(),
			"results": summary.Results,
			"summary": summary,
		}); err != nil {
			return err
		}
	} else {
		for _, r := range summary.Results {
			if !r.Success {
				fmt.Fprintln(out, errorStyle.Render("✗ ")+r.Expense+mutedStyle.Render(": "+r.Error))
			}
		}
		style := successStyle
		if summary.Errors > 0 {
			style = warningStyle
		}
		fmt.Fprintln(out, style.Render(summary.Message()))
	}

	if summary.Errors > 0 {
		return fmt.Errorf("%d of %d expenses failed to upload", summary.Errors, summary.Total)
	}
	return nil
}
