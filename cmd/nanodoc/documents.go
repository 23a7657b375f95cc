package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/nanodoc/formats"
	"github.com/arthur-debert/nanodoc/nanodoc/store"
	"github.com/arthur-debert/nanodoc/types"
	"github.com/spf13/cobra"
)

func (cli *CLI) addDocumentCommands() {
	cli.addNewCommand()
	cli.addListCommand()
	cli.addShowCommand()
	cli.addRenameCommand()
	cli.addDeleteCommand()
	cli.addSaveCommand()
	cli.addExportCommand()
	cli.addImportCommand()
}

func (cli *CLI) addNewCommand() {
	cli.rootCmd.AddCommand(&cobra.Command{
		Use:   "new [title]",
		Short: "Create a document",
		Long: `Create an empty document. Without a title it is named "Untitled Document".

Examples:
  nanodoc new
  nanodoc new Meeting Notes`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openStore()
			if err != nil {
				return err
			}

			doc, err := s.CreateDocument(strings.TrimSpace(strings.Join(args, " ")))
			if err != nil {
				return WrapError("create document", err, CommonSuggestions.CheckDataDir)
			}
			return cli.outputResult(cmd.OutOrStdout(), doc)
		},
	})
}

func (cli *CLI) addListCommand() {
	cli.rootCmd.AddCommand(&cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List documents, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openStore()
			if err != nil {
				return err
			}
			return cli.outputResult(cmd.OutOrStdout(), s.AllDocuments())
		},
	})
}

func (cli *CLI) addShowCommand() {
	cli.rootCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openStore()
			if err != nil {
				return err
			}

			doc, err := s.Document(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return NewNotFoundError("show document", args[0], CommonSuggestions.CheckID)
			}
			if err != nil {
				return WrapError("show document", err)
			}
			return cli.outputResult(cmd.OutOrStdout(), doc)
		},
	})
}

func (cli *CLI) addRenameCommand() {
	cli.rootCmd.AddCommand(&cobra.Command{
		Use:   "rename <id> <title>",
		Short: "Change a document's title",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openStore()
			if err != nil {
				return err
			}
			ctrl := cli.newController(s, cmd.ErrOrStderr())

			if _, err := ctrl.OpenDocument(args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return NewNotFoundError("rename document", args[0], CommonSuggestions.CheckID)
				}
				return WrapError("rename document", err)
			}

			doc, err := ctrl.RenameCurrent(strings.Join(args[1:], " "))
			if err != nil {
				return WrapError("rename document", err, "Provide a non-blank title")
			}
			return cli.outputResult(cmd.OutOrStdout(), doc)
		},
	})
}

func (cli *CLI) addDeleteCommand() {
	cli.rootCmd.AddCommand(&cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a document",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := cli.openStore()
			if err != nil {
				return err
			}

			if _, err := s.Document(args[0]); errors.Is(err, store.ErrNotFound) {
				return NewNotFoundError("delete document", args[0], CommonSuggestions.CheckID)
			}

			ctrl := cli.newController(s, cmd.ErrOrStderr())
			if err := ctrl.DeleteDocument(args[0]); err != nil {
				return WrapError("delete document", err, CommonSuggestions.CheckPerms)
			}
			return nil
		},
	})
}

func (cli *CLI) addSaveCommand() {
	saveCmd := &cobra.Command{
		Use:   "save <id>",
		Short: "Replace a document's content",
		Long: `Replace the content of a document with the contents of --file, or of
standard input when no file is given.

Examples:
  nanodoc save 3f2a... --file body.html
  echo '<p>Hello</p>' | nanodoc save 3f2a...`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := readInput(cmd, cli.flagString(cmd, "file"))
			if err != nil {
				return NewStoreError("read content", err, CommonSuggestions.CheckPerms)
			}

			s, err := cli.openStore()
			if err != nil {
				return err
			}
			ctrl := cli.newController(s, cmd.ErrOrStderr())

			if _, err := ctrl.OpenDocument(args[0]); err != nil {
				if errors.Is(err, store.ErrNotFound) {
					return NewNotFoundError("save document", args[0], CommonSuggestions.CheckID)
				}
				return WrapError("save document", err)
			}
			if err := ctrl.ContentChanged(content); err != nil {
				return WrapError("save document", err, CommonSuggestions.CheckPerms)
			}

			doc, err := s.Document(args[0])
			if err != nil {
				return WrapError("save document", err)
			}
			return cli.outputResult(cmd.OutOrStdout(), doc)
		},
	}
	saveCmd.Flags().String("file", "", "Read content from this file instead of stdin")
	cli.rootCmd.AddCommand(saveCmd)
}

func (cli *CLI) addExportCommand() {
	exportCmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Write a document as plain text or markdown",
		Long: fmt.Sprintf(`Write a document with an id/created/lastModified header.

Available formats: %s. With --output and no --as, the format
follows the file extension.

Examples:
  nanodoc export 3f2a... --as markdown
  nanodoc export 3f2a... --output notes.txt`, strings.Join(formats.List(), ", ")),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := cli.flagString(cmd, "output")
			format, err := resolveFormat(cli.flagString(cmd, "as"), output, cmd.Flags().Changed("as"))
			if err != nil {
				return NewValidationError("export document", err, CommonSuggestions.CheckFormat)
			}

			s, err := cli.openStore()
			if err != nil {
				return err
			}
			doc, err := s.Document(args[0])
			if errors.Is(err, store.ErrNotFound) {
				return NewNotFoundError("export document", args[0], CommonSuggestions.CheckID)
			}
			if err != nil {
				return WrapError("export document", err)
			}

			text, err := formats.Export(doc, format)
			if err != nil {
				return NewValidationError("export document", err, CommonSuggestions.CheckFormat)
			}

			if output == "" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), text)
				return err
			}
			if err := os.WriteFile(output, []byte(text), 0644); err != nil {
				return NewStoreError("write export", err, CommonSuggestions.CheckPerms)
			}
			cli.logger.Info("document exported", "id", doc.ID, "format", format, "path", output)
			return nil
		},
	}
	exportCmd.Flags().String("as", "markdown", "Export format ("+strings.Join(formats.List(), "|")+")")
	exportCmd.Flags().StringP("output", "o", "", "Write to this file instead of stdout")
	cli.rootCmd.AddCommand(exportCmd)
}

func (cli *CLI) addImportCommand() {
	importCmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Create a document from an exported file",
		Long: `Create a new document from a plain text or markdown file. The format
follows the file extension unless --as is given; use "-" to read stdin.
The imported document always gets a new id.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			asFlag := cli.flagString(cmd, "as")
			if path == "-" && asFlag == "" {
				return NewValidationError("import document", errors.New("--as is required when reading stdin"),
					CommonSuggestions.CheckFormat)
			}

			format, err := resolveFormat(asFlag, path, asFlag != "")
			if err != nil {
				return NewValidationError("import document", err, CommonSuggestions.CheckFormat)
			}

			source := path
			if path == "-" {
				source = ""
			}
			text, err := readInput(cmd, source)
			if err != nil {
				return NewStoreError("read import", err, CommonSuggestions.CheckPerms)
			}

			parsed, err := formats.Import(text, format)
			if err != nil {
				return NewValidationError("import document", err, CommonSuggestions.CheckFormat)
			}

			s, err := cli.openStore()
			if err != nil {
				return err
			}
			doc, err := importDocument(s, parsed)
			if err != nil {
				return WrapError("import document", err, CommonSuggestions.CheckDataDir)
			}
			cli.logger.Info("document imported", "id", doc.ID, "source_id", parsed.ID, "format", format)
			return cli.outputResult(cmd.OutOrStdout(), doc)
		},
	}
	importCmd.Flags().String("as", "", "Input format ("+strings.Join(formats.List(), "|")+")")
	cli.rootCmd.AddCommand(importCmd)
}

// importDocument creates a document holding parsed's title and content.
// When the content cannot be saved the new, empty document is removed.
func importDocument(s store.Store, parsed types.Document) (types.Document, error) {
	created, err := s.CreateDocument(parsed.Title)
	if err != nil {
		return types.Document{}, err
	}
	doc, err := s.SaveCurrentDocument(parsed.Content)
	if err != nil {
		if rmErr := s.DeleteDocument(created.ID); rmErr != nil {
			return types.Document{}, fmt.Errorf("save content: %w (empty document %s left behind: %v)", err, created.ID, rmErr)
		}
		return types.Document{}, fmt.Errorf("save content: %w", err)
	}
	return doc, nil
}

// flagString reads a command-local flag
func (cli *CLI) flagString(cmd *cobra.Command, name string) string {
	value, _ := cmd.Flags().GetString(name)
	return value
}

// resolveFormat picks the explicit format, or the one matching path's
// extension when none was given
func resolveFormat(explicit, path string, explicitSet bool) (string, error) {
	if explicitSet || path == "" || path == "-" {
		if _, err := formats.Get(explicit); err != nil {
			return "", err
		}
		return explicit, nil
	}

	format, err := formats.ForExtension(filepath.Ext(path))
	if err != nil {
		return "", err
	}
	return format.Name, nil
}

// readInput returns the contents of path, or of the command's stdin when
// path is empty
func readInput(cmd *cobra.Command, path string) (string, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		return string(data), err
	}
	data, err := io.ReadAll(cmd.InOrStdin())
	return string(data), err
}
