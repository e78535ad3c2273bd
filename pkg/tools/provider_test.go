package tools

import (
	"context"
	"fmt"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAddAndList(t *testing.T) {
	set := NewSet()
	assert.Empty(t, set.Tools())

	set.Add(Definition{
		Name:        "greet",
		Description: "Greets the caller",
		Executor: func(ctx context.Context, args map[string]any) (string, error) {
			return "hello", nil
		},
	})

	tools := set.Tools()
	require.Len(t, tools, 1)
	assert.Equal(t, "greet", tools[0].Name)
	assert.Equal(t, "Greets the caller", tools[0].Description)
}

func TestSetRemove(t *testing.T) {
	set := NewSet(EchoTool())

	assert.True(t, set.Remove("echo"))
	assert.False(t, set.Remove("echo"))
	assert.Empty(t, set.Tools())
}

func TestSetCallUnknownTool(t *testing.T) {
	set := NewSet()

	_, err := set.Call(context.Background(), "nope", nil)

	require.Error(t, err)
	var unknown *ErrUnknownTool
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "nope", unknown.Name)
	assert.NotEmpty(t, err.Error())
}

func TestSetCallExecutorError(t *testing.T) {
	set := NewSet(Definition{
		Name: "fail",
		Executor: func(ctx context.Context, args map[string]any) (string, error) {
			return "", fmt.Errorf("boom")
		},
	})

	_, err := set.Call(context.Background(), "fail", nil)

	require.Error(t, err)
	assert.NotErrorAs(t, err, new(*ErrUnknownTool))
}

func TestEchoTool(t *testing.T) {
	set := NewBuiltinSet()

	result, err := set.Call(context.Background(), "echo", map[string]any{"text": "hi"})

	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "hi", text.Text)
}

func TestEchoToolRequiresText(t *testing.T) {
	set := NewBuiltinSet()

	_, err := set.Call(context.Background(), "echo", map[string]any{})

	require.Error(t, err)
}

func TestEnvReportTool(t *testing.T) {
	t.Setenv("TOOLDOCK_TEST_PRESENT", "1")

	set := NewBuiltinSet()

	result, err := set.Call(context.Background(), "env_report", map[string]any{
		"names": []any{"TOOLDOCK_TEST_PRESENT", "TOOLDOCK_TEST_ABSENT"},
	})

	require.NoError(t, err)

	text := result.Content[0].(mcp.TextContent).Text
	assert.Contains(t, text, "TOOLDOCK_TEST_PRESENT: set")
	assert.Contains(t, text, "TOOLDOCK_TEST_ABSENT: missing")
}
