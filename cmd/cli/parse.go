package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dvloznov/keep2notion/internal/expense"
	"github.com/spf13/cobra"
)

func parseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "parse [notes-file]",
		Short: "Parse notes and print the expenses found",
		Long: `Parse notes and print the expenses found.

Lines that look like expenses but cannot be parsed are reported on stderr and
left out. Use --json for machine-readable output.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := a.parseNotes(cmd, args)
			if err != nil {
				return err
			}

			if a.jsonOut {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"expenses": result.Records,
					"count":    len(result.Records),
					"warnings": result.Warnings,
				})
			}

			return printRecords(cmd.OutOrStdout(), result.Records)
		},
	}
}

func printRecords(out io.Writer, records []expense.Record) error {
	if len(records) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No expenses found."))
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%d expenses", len(records))))
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		headerStyle.Render("#"),
		headerStyle.Render("Date"),
		headerStyle.Render("Title"),
		headerStyle.Render("Amount"),
		headerStyle.Render("Mode"))

	for i := range records {
		rec := &records[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			formatDate(rec),
			rec.Title,
			formatAmount(rec),
			strings.Join(rec.Modes, ", "))
	}

	return w.Flush()
}

func writeJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
