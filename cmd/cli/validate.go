package main

import (
	"errors"
	"fmt"

	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/spf13/cobra"
)

var errInvalidExpenses = errors.New("expenses failed validation")

func validateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [notes-file]",
		Short: "Parse notes and check every expense is ready for Notion",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.parseNotes(cmd, args)
			if err != nil {
				return err
			}

			report := expense.Validate(result.Records)

			if a.jsonOut {
				if err := writeJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else if report.Valid {
				fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render(fmt.Sprintf("✓ All %d expenses are valid", len(result.Records))))
			} else {
				printErrors(cmd.OutOrStdout(), report.Errors)
			}

			if !report.Valid {
				return fmt.Errorf("%w: %d problems", errInvalidExpenses, len(report.Errors))
			}
			return nil
		},
	}
}
