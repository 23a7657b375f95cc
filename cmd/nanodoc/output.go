package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/arthur-debert/nanodoc/nanodoc/command"
	"github.com/arthur-debert/nanodoc/nanodoc/search"
	"github.com/arthur-debert/nanodoc/nanodoc/settings"
	"github.com/arthur-debert/nanodoc/types"
	"gopkg.in/yaml.v3"
)

const (
	summaryWidth = 40
	timeLayout   = "2006-01-02 15:04"
)

// settingsView is the table/json/yaml shape of `settings get`
type settingsView struct {
	settings.Config `yaml:",inline"`
	Style           string `json:"style" yaml:"style"`
}

// toolbarRow is one line of `commands` table output
type toolbarRow struct {
	Group   string `json:"group" yaml:"group"`
	Command string `json:"command" yaml:"command"`
	Label   string `json:"label" yaml:"label"`
}

// outputResult formats and outputs the result based on the configured format
func (cli *CLI) outputResult(w io.Writer, result any) error {
	switch cli.viperInst.GetString("format") {
	case "json":
		return outputJSON(w, result)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return err
		}
		return enc.Close()
	default:
		return outputTable(w, result, cli.viperInst.GetBool("quiet"))
	}
}

func outputJSON(w io.Writer, result any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputTable renders known result types as aligned columns. Anything else
// falls back to JSON.
func outputTable(w io.Writer, result any, quiet bool) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	switch v := result.(type) {
	case []types.Document:
		if !quiet {
			fmt.Fprintln(tw, "ID\tTITLE\tMODIFIED\tSUMMARY")
		}
		for _, doc := range v {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
				doc.ID, doc.Title, formatTime(doc.LastModified), doc.Summary(summaryWidth))
		}

	case types.Document:
		fmt.Fprintf(tw, "ID:\t%s\n", v.ID)
		fmt.Fprintf(tw, "Title:\t%s\n", v.Title)
		fmt.Fprintf(tw, "Created:\t%s\n", formatTime(v.Created))
		fmt.Fprintf(tw, "Modified:\t%s\n", formatTime(v.LastModified))
		if err := tw.Flush(); err != nil {
			return err
		}
		if v.Content != "" {
			_, err := fmt.Fprintf(w, "\n%s\n", v.Content)
			return err
		}
		return nil

	case settingsView:
		if !quiet {
			fmt.Fprintln(tw, "SETTING\tVALUE")
		}
		for _, key := range settings.Keys {
			value, _ := v.Value(key)
			fmt.Fprintf(tw, "%s\t%v\n", key, value)
		}
		fmt.Fprintf(tw, "style\t%s\n", v.Style)

	case []toolbarRow:
		if !quiet {
			fmt.Fprintln(tw, "GROUP\tCOMMAND\tLABEL")
		}
		for _, row := range v {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Group, row.Command, row.Label)
		}

	case []search.Result:
		if !quiet {
			fmt.Fprintln(tw, "ID\tTITLE\tSCORE\tMATCH")
		}
		for _, r := range v {
			match := r.Highlights[search.FieldTitle]
			if match == "" {
				match = excerpt(r.Highlights[search.FieldContent], summaryWidth)
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\n", r.Document.ID, r.Document.Title, r.Score, match)
		}

	case []command.Group:
		return outputTable(w, toolbarRows(v), quiet)

	default:
		return outputJSON(w, result)
	}

	return tw.Flush()
}

func toolbarRows(groups []command.Group) []toolbarRow {
	var rows []toolbarRow
	for _, g := range groups {
		for _, cmd := range g.Commands {
			rows = append(rows, toolbarRow{Group: g.Title, Command: cmd.String(), Label: cmd.Label()})
		}
	}
	return rows
}

// excerpt trims text to about width runes around its first highlight
func excerpt(text string, width int) string {
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	start := strings.Index(text, "**")
	if start < 0 {
		return string(runes[:width]) + "…"
	}
	offset := max(len([]rune(text[:start]))-width/4, 0)
	end := min(offset+width, len(runes))
	prefix := ""
	if offset > 0 {
		prefix = "…"
	}
	suffix := ""
	if end < len(runes) {
		suffix = "…"
	}
	return prefix + string(runes[offset:end]) + suffix
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format(timeLayout)
}
