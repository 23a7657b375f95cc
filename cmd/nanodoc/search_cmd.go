package main

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/nanodoc/nanodoc/search"
	"github.com/spf13/cobra"
)

func (cli *CLI) addSearchCommand() {
	searchCmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find documents by title or text",
		Long: `Find documents whose title or text contains the query. Markup is ignored;
title matches rank above text matches.

Examples:
  nanodoc search budget
  nanodoc search "weekly sync" --field title --limit 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			caseSensitive, _ := flags.GetBool("case-sensitive")
			exact, _ := flags.GetBool("exact")
			limit, _ := flags.GetInt("limit")
			fields, _ := flags.GetStringSlice("field")

			s, err := cli.openStore()
			if err != nil {
				return err
			}

			results, err := search.NewEngine(s).Search(search.Options{
				Query:         strings.Join(args, " "),
				Fields:        fields,
				CaseSensitive: caseSensitive,
				ExactMatch:    exact,
				Highlight:     true,
				MaxResults:    limit,
			})
			if err != nil {
				return NewValidationError("search documents", err, "Use --field title or --field content")
			}
			return cli.outputResult(cmd.OutOrStdout(), results)
		},
	}

	flags := searchCmd.Flags()
	flags.Bool("case-sensitive", false, "Match case exactly")
	flags.Bool("exact", false, "Require the whole field to equal the query")
	flags.Int("limit", 0, "Maximum number of results (0 for all)")
	flags.StringSlice("field", nil, fmt.Sprintf("Fields to search (%s, %s)", search.FieldTitle, search.FieldContent))

	cli.rootCmd.AddCommand(searchCmd)
}
