package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/aretw0/sfsweb/pkg/contract"
)

// NewRenderer returns a function that renders markdown using glamour.
// Without a terminal the markdown is returned unchanged.
func NewRenderer(styled bool) (func(string) (string, error), error) {
	if !styled {
		return func(markdown string) (string, error) { return markdown, nil }, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(), // Automatically detect light/dark background
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}
	return r.Render, nil
}

// RoutesMarkdown formats the backend routes as a markdown table.
func RoutesMarkdown(routes []contract.Route) string {
	var b strings.Builder
	b.WriteString("# SFS backend routes\n\n")
	b.WriteString("| Method | Path | Action | Body | Summary |\n")
	b.WriteString("|---|---|---|---|---|\n")
	for _, r := range routes {
		body := r.ContentType
		if body == "" {
			body = "none"
		}
		fmt.Fprintf(&b, "| %s | `%s` | %s | %s | %s |\n", r.Method, r.Path, r.OperationID, body, r.Summary)
	}
	return b.String()
}
