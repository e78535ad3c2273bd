package tools

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
)

// NewBuiltinSet returns a Set pre-loaded with the demo tools so a freshly
// served instance answers tools/list with something useful.
func NewBuiltinSet() *Set {
	return NewSet(EchoTool(), ClockTool(), EnvReportTool())
}

// EchoTool repeats its input back to the caller.
func EchoTool() Definition {
	return Definition{
		Name:        "echo",
		Description: "Echo the provided text back to the caller.",
		Schema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"text": map[string]any{
					"type":        "string",
					"description": "The text to echo",
				},
			},
			Required: []string{"text"},
		},
		Executor: func(ctx context.Context, args map[string]any) (string, error) {
			text, _ := args["text"].(string)

			if text == "" {
				return "", fmt.Errorf("'text' is required")
			}

			return text, nil
		},
	}
}

// ClockTool reports the server's current time.
func ClockTool() Definition {
	return Definition{
		Name:        "clock",
		Description: "Report the current server time in RFC3339 format.",
		Schema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]any{},
		},
		Executor: func(ctx context.Context, args map[string]any) (string, error) {
			return time.Now().Format(time.RFC3339), nil
		},
	}
}

// EnvReportTool reports whether the named environment variables are set.
// Values are never echoed back, only presence.
func EnvReportTool() Definition {
	return Definition{
		Name:        "env_report",
		Description: "Report which of the named environment variables are set on the server.",
		Schema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]any{
				"names": map[string]any{
					"type":        "array",
					"description": "Environment variable names to check",
					"items":       map[string]any{"type": "string"},
				},
			},
			Required: []string{"names"},
		},
		Executor: func(ctx context.Context, args map[string]any) (string, error) {
			raw, _ := args["names"].([]any)

			if len(raw) == 0 {
				return "", fmt.Errorf("'names' is required")
			}

			names := make([]string, 0, len(raw))
			for _, v := range raw {
				if s, ok := v.(string); ok && s != "" {
					names = append(names, s)
				}
			}
			sort.Strings(names)

			builder := &strings.Builder{}
			for _, name := range names {
				if _, ok := os.LookupEnv(name); ok {
					fmt.Fprintf(builder, "%s: set\n", name)
					continue
				}
				fmt.Fprintf(builder, "%s: missing\n", name)
			}

			return builder.String(), nil
		},
	}
}
