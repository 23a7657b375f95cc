package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/nanodoc/nanodoc/settings"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func (cli *CLI) addSettingsCommand() {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change editor preferences",
		Long: fmt.Sprintf(`Show or change editor preferences.

Settings: %s.
Keys may also be written in kebab-case, e.g. font-size.`, strings.Join(settings.Keys, ", ")),
	}

	settingsCmd.AddCommand(
		cli.settingsGetCommand(),
		cli.settingsSetCommand(),
		cli.settingsResetCommand(),
		cli.settingsImportCommand(),
	)
	cli.rootCmd.AddCommand(settingsCmd)
}

func (cli *CLI) settingsGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show all settings, or one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := cli.openSettings().Get()

			if len(args) == 0 {
				return cli.outputResult(cmd.OutOrStdout(), settingsView{Config: cfg, Style: cfg.Style()})
			}

			value, err := cfg.Value(args[0])
			if err != nil {
				return NewValidationError("get setting", err, CommonSuggestions.CheckKey)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
			return err
		},
	}
}

func (cli *CLI) settingsSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Change one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch, err := settings.ParsePatch(args[0], args[1])
			if err != nil {
				return NewValidationError("update settings", err, CommonSuggestions.CheckKey)
			}
			return cli.applySettings(cmd, patch)
		},
	}
}

func (cli *CLI) settingsResetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore the default settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s := cli.openSettings()
			if err := s.Reset(); err != nil {
				return WrapError("reset settings", err, CommonSuggestions.CheckPerms)
			}
			cfg := s.Get()
			return cli.outputResult(cmd.OutOrStdout(), settingsView{Config: cfg, Style: cfg.Style()})
		},
	}
}

func (cli *CLI) settingsImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Apply settings from a YAML or JSON file",
		Long: `Apply the settings present in a YAML or JSON file; absent keys keep
their current values. The whole file is rejected if any value is invalid.

Example file:
  fontSize: 14
  autoSave: false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return NewStoreError("read settings file", err, CommonSuggestions.CheckPerms)
			}

			// JSON is valid YAML, so one decoder covers both
			var patch settings.Patch
			if err := yaml.Unmarshal(raw, &patch); err != nil {
				return NewValidationError("import settings", err, CommonSuggestions.CheckKey)
			}
			return cli.applySettings(cmd, patch)
		},
	}
}

func (cli *CLI) applySettings(cmd *cobra.Command, patch settings.Patch) error {
	s := cli.openSettings()
	if err := s.Update(patch); err != nil {
		return WrapError("update settings", err, CommonSuggestions.CheckKey)
	}
	cfg := s.Get()
	return cli.outputResult(cmd.OutOrStdout(), settingsView{Config: cfg, Style: cfg.Style()})
}
