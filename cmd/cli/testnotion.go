package main

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/dvloznov/keep2notion/internal/notionsync"
	"github.com/spf13/cobra"
)

func testNotionCmd(a *app) *cobra.Command {
	var creds notionFlags

	cmd := &cobra.Command{
		Use:   "test-notion",
		Short: "Check the Notion token and database and show the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			token, databaseID, err := creds.resolve(a, true)
			if err != nil {
				return err
			}

			info, err := notionsync.DescribeDatabase(cmd.Context(), a.newClient(token), databaseID)
			if err != nil {
				return fmt.Errorf("failed to connect to Notion database: %w", err)
			}
			problems := notionsync.SchemaProblems(info)

			out := cmd.OutOrStdout()
			if a.jsonOut {
				return writeJSON(out, map[string]interface{}{
					"databaseName":   info.Title,
					"schema":         info.Schema,
					"schemaProblems": problems,
				})
			}

			fmt.Fprintln(out, successStyle.Render("✓ Connected to "+info.Title))
			fmt.Fprintln(out)

			names := make([]string, 0, len(info.Schema))
			for name := range info.Schema {
				names = append(names, name)
			}
			sort.Strings(names)

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				headerStyle.Render("Property"),
				headerStyle.Render("Type"),
				headerStyle.Render("Options"))
			for _, name := range names {
				prop := info.Schema[name]
				fmt.Fprintf(w, "%s\t%s\t%s\n", name, prop.Type, strings.Join(prop.Options, ", "))
			}
			if err := w.Flush(); err != nil {
				return err
			}

			if len(problems) > 0 {
				fmt.Fprintln(out)
				for _, p := range problems {
					fmt.Fprintln(out, warningStyle.Render("! "+p))
				}
			}
			return nil
		},
	}

	creds.register(cmd)
	return cmd
}
