package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanodoc/nanodoc/command"
	"github.com/arthur-debert/nanodoc/nanodoc/editor"
	"github.com/arthur-debert/nanodoc/nanodoc/settings"
	"github.com/arthur-debert/nanodoc/nanodoc/storage"
	"github.com/arthur-debert/nanodoc/nanodoc/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	documentsFile = "documents.json"
	settingsFile  = "editor-config.json"
)

var outputFormats = []string{"table", "json", "yaml"}

// CLI is the viper-configured cobra command tree for nanodoc
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper
	logger    *slog.Logger
}

// NewCLI creates the command tree and loads configuration
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.Default(),
	}

	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()

	return cli
}

// Execute runs the command named by os.Args
func (cli *CLI) Execute() error {
	return cli.rootCmd.Execute()
}

// setupViperConfig configures Viper with environment variables and config files
func (cli *CLI) setupViperConfig() {
	if configFile := os.Getenv("NANODOC_CONFIG"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
	} else {
		cli.viperInst.SetConfigName(appName)
		cli.viperInst.AddConfigPath(".")
		cli.viperInst.AddConfigPath("$HOME/.nanodoc")
		cli.viperInst.AddConfigPath("/etc/nanodoc")
	}

	cli.viperInst.SetEnvPrefix("NANODOC")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cli.viperInst.AutomaticEnv()

	cli.viperInst.SetDefault("format", "table")
	cli.viperInst.SetDefault("log-level", "warn")

	// A missing config file is fine
	_ = cli.viperInst.ReadInConfig()
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   appName,
		Short: "Nanodoc - rich-text documents and editor settings",
		Long: `Nanodoc keeps a collection of titled rich-text documents and the editor
preferences used to display them.

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (NANODOC_*)
3. Configuration file (NANODOC_CONFIG, ./nanodoc.{json,yaml},
   ~/.nanodoc/nanodoc.{json,yaml}, /etc/nanodoc/nanodoc.{json,yaml})

Examples:
  nanodoc new "Meeting Notes"
  nanodoc list --format json
  echo '<p>Agenda</p>' | nanodoc save <id>
  nanodoc export <id> --as markdown > notes.md
  nanodoc settings set font-size 12`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			format := cli.viperInst.GetString("format")
			if !isOutputFormat(format) {
				return NewConfigError(cmd.Name(), fmt.Sprintf("unknown output format %q", format),
					"Use one of: "+strings.Join(outputFormats, ", "),
					CommonSuggestions.CheckConfig)
			}

			logger, err := initLogging(
				cli.viperInst.GetString("log-level"),
				cli.viperInst.GetBool("verbose"),
				cmd.ErrOrStderr())
			if err != nil {
				return NewConfigError(cmd.Name(), err.Error(), CommonSuggestions.CheckPerms)
			}
			cli.logger = logger
			return nil
		},
	}

	cli.addGlobalFlags()
}

// addGlobalFlags adds persistent flags that apply to all commands
func (cli *CLI) addGlobalFlags() {
	flags := cli.rootCmd.PersistentFlags()

	flags.StringP("data-dir", "d", "", "Directory holding documents and settings (default: XDG data dir)")
	flags.StringP("format", "f", "table", "Output format ("+strings.Join(outputFormats, "|")+")")
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also log to stderr")
	flags.BoolP("quiet", "q", false, "Suppress headers and status messages")

	for _, flag := range []string{"data-dir", "format", "log-level", "verbose", "quiet"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

func (cli *CLI) addCommands() {
	cli.addDocumentCommands()
	cli.addSearchCommand()
	cli.addSettingsCommand()
	cli.addCommandsCommand()
}

func isOutputFormat(format string) bool {
	for _, f := range outputFormats {
		if f == format {
			return true
		}
	}
	return false
}

// dataDir resolves the configured data directory
func (cli *CLI) dataDir() string {
	if dir := cli.viperInst.GetString("data-dir"); dir != "" {
		return dir
	}
	return getXDGDataDir()
}

// openStore loads the document collection
func (cli *CLI) openStore() (*store.JSONStore, error) {
	blob := storage.NewFileBlob(filepath.Join(cli.dataDir(), documentsFile))
	s, err := store.New(blob, store.WithLogger(cli.logger))
	if err != nil {
		return nil, NewStoreError("open document store", err,
			CommonSuggestions.CheckDataDir,
			CommonSuggestions.CheckPerms)
	}
	return s, nil
}

// openSettings returns the settings store
func (cli *CLI) openSettings() *settings.Store {
	blob := storage.NewFileBlob(filepath.Join(cli.dataDir(), settingsFile))
	return settings.New(blob, settings.WithLogger(cli.logger))
}

// newController wires a controller whose events are reported on w
func (cli *CLI) newController(s store.Store, w io.Writer) *editor.Controller {
	ctrl := editor.NewController(s, command.NewDispatcher(command.WithLogger(cli.logger)),
		editor.WithLogger(cli.logger))

	quiet := cli.viperInst.GetBool("quiet")
	ctrl.Subscribe(func(ev editor.Event) {
		if quiet || ev.Message == "" || ev.Kind == editor.OperationFailed || ev.Kind == editor.DocumentOpened {
			return
		}
		fmt.Fprintln(w, ev.Message)
	})
	return ctrl
}
