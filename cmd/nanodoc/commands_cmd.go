package main

import (
	"github.com/arthur-debert/nanodoc/nanodoc/command"
	"github.com/spf13/cobra"
)

func (cli *CLI) addCommandsCommand() {
	cli.rootCmd.AddCommand(&cobra.Command{
		Use:   "commands",
		Short: "List the editing commands and their toolbar groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cli.outputResult(cmd.OutOrStdout(), command.Toolbar())
		},
	})
}
