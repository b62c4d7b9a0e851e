// Package commands implements the fedi CLI subcommands.
package commands

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/fedikit/fedigo/pkg/fedi"
	"github.com/fedikit/fedigo/pkg/fediclient"
)

// Output formats.
const (
	OutputFormatTable = "table"
	OutputFormatJSON  = "json"
	OutputFormatYAML  = "yaml"

	defaultJSONIndent = 2
)

// Common static errors used throughout the commands package.
var (
	ErrServerRequired     = errors.New("server is required (use --server or run 'fedi login')")
	ErrNotAuthenticated   = errors.New("not authenticated (run 'fedi login' or pass --token)")
	ErrStatusTextRequired = errors.New("status text is required")
	ErrUnsupportedOutput  = errors.New("unsupported output format")
	ErrUnknownConfigKey   = errors.New("unknown configuration key")
	ErrUnknownTimeline    = errors.New("unknown timeline")
	ErrUnknownStream      = errors.New("unknown stream")
	ErrListIDRequired     = errors.New("list timeline requires a list ID")
	ErrTagRequired        = errors.New("hashtag timeline requires a tag")
)

// newClient builds a client from flags and the config file. Authentication
// is optional; commands that need it fail when the server rejects them.
func newClient(ctx context.Context) (fedi.Client, error) {
	server := viper.GetString("server")
	if server == "" {
		return nil, ErrServerRequired
	}

	config := &fedi.Config{
		Server:      server,
		AccessToken: viper.GetString("token"),
		Debug:       viper.GetBool("verbose"),
	}

	client, err := fediclient.New(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating client: %w", err)
	}

	return client, nil
}

// renderJSON writes v to stdout as indented JSON.
func renderJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", strings.Repeat(" ", defaultJSONIndent))

	err := encoder.Encode(v)
	if err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}

	return nil
}

// renderYAML writes v to stdout as YAML.
func renderYAML(v interface{}) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}

	fmt.Print(string(data))

	return nil
}

// renderStructured dispatches to the JSON or YAML renderer, or reports the
// format as unsupported (the caller handles "table" itself).
func renderStructured(format string, v interface{}) error {
	switch format {
	case OutputFormatJSON:
		return renderJSON(v)
	case OutputFormatYAML:
		return renderYAML(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedOutput, format)
	}
}

// stripHTML reduces rendered status content to plain text for table output.
func stripHTML(content string) string {
	var (
		builder strings.Builder
		inTag   bool
	)

	for _, r := range content {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			builder.WriteRune(r)
		}
	}

	text := builder.String()
	text = strings.ReplaceAll(text, "&amp;", "&")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&quot;", `"`)
	text = strings.ReplaceAll(text, "&#39;", "'")

	return strings.TrimSpace(text)
}

// truncate shortens s for table cells.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}

	return string(runes[:max-1]) + "…"
}
