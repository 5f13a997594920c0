package client

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/mwantia/mycontracts/internal/app"
	"github.com/mwantia/mycontracts/pkg/api"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	config "github.com/mwantia/mycontracts/internal/config/client"
)

const (
	formatTable = "table"
	formatYAML  = "yaml"
	formatJSON  = "json"
)

func connect() (*app.App, error) {
	cfg, err := config.LoadClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load client configuration: %w", err)
	}
	// Command output owns stdout; logs only go to the configured file
	cfg.Log.NoTerminal = true

	return app.NewApp(cfg)
}

// withApp runs fn with a connected app and shuts it down afterwards
func withApp(fn func(a *app.App) error) error {
	a, err := connect()
	if err != nil {
		return err
	}

	if err := fn(a); err != nil {
		a.Shutdown()
		return err
	}
	return a.Shutdown()
}

func addOutputFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", formatTable, "output format (table, yaml, json)")
}

// render writes v in the format selected by --output; table falls back to rows
func render(cmd *cobra.Command, v any, rows func(w io.Writer)) error {
	format, _ := cmd.Flags().GetString("output")
	out := cmd.OutOrStdout()

	switch strings.ToLower(format) {
	case formatYAML:
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		return enc.Encode(v)
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatTable, "":
		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		rows(w)
		return w.Flush()
	default:
		return fmt.Errorf("unknown output format '%s'", format)
	}
}

func parseID(arg string) (int64, error) {
	id, err := cast.ToInt64E(strings.TrimSpace(arg))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id '%s'", arg)
	}
	return id, nil
}

// parseIDs accepts ids separated by commas, spaces or both
func parseIDs(raw []string) ([]int64, error) {
	var ids []int64
	for _, arg := range raw {
		for _, part := range strings.FieldsFunc(arg, func(r rune) bool { return r == ',' || r == ' ' }) {
			id, err := parseID(part)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no ids given")
	}
	return ids, nil
}

// documentError replaces a 404 of a document request with a readable message
func documentError(err error, id int64) error {
	if api.IsNotFound(err) {
		return fmt.Errorf("no such document %d", id)
	}
	return err
}

// parseFilter normalizes value and checks it against the accepted options
func parseFilter(kind, value string, options []string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if !slices.Contains(options, normalized) {
		return "", fmt.Errorf("unknown %s filter '%s', expected one of %s", kind, value, strings.Join(options, ", "))
	}
	return normalized, nil
}
