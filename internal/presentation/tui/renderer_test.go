package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sfsweb/pkg/contract"
)

func TestRoutesMarkdown(t *testing.T) {
	md := RoutesMarkdown([]contract.Route{
		{Method: "POST", Path: "/settings", OperationID: "settings", Summary: "Persist client settings", ContentType: "application/json"},
		{Method: "DELETE", Path: "/empty", OperationID: "empty-bin", Summary: "Empty the bin"},
	})
	assert.Contains(t, md, "| POST | `/settings` | settings | application/json | Persist client settings |")
	assert.Contains(t, md, "| DELETE | `/empty` | empty-bin | none | Empty the bin |")
}

func TestNewRenderer_Plain(t *testing.T) {
	render, err := NewRenderer(false)
	require.NoError(t, err)
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Equal(t, "# Title", out)
}

func TestNewRenderer_Styled(t *testing.T) {
	render, err := NewRenderer(true)
	require.NoError(t, err)
	out, err := render("# Routes\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")
	require.NoError(t, err)
	assert.Contains(t, out, "Routes")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf, "0.1.0")
	assert.True(t, strings.Contains(buf.String(), "monitor 0.1.0"))
}
