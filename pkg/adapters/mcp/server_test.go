package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/knitcalc"
	"github.com/aretw0/knitcalc/pkg/domain"
	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	eng := knitcalc.New()
	return NewServer(eng, eng.Catalog(), domain.Decrease)
}

func TestHandleDistribute(t *testing.T) {
	s := newTestServer()
	ctx := context.Background()

	t.Run("numbers from json", func(t *testing.T) {
		resp, err := s.handleDistribute(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"stitches": float64(166),
			"changes":  float64(52),
		})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeOK, resp.Outcome)
		assert.Equal(t, domain.Decrease, resp.Mode)
		assert.Equal(t, 114, resp.FinalStitches)
		assert.Len(t, resp.Text.Lines, 3)
	})

	t.Run("strings and language", func(t *testing.T) {
		resp, err := s.handleDistribute(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"stitches": "20",
			"changes":  "5",
			"mode":     "inc",
			"lang":     "nb",
			"expand":   true,
		})
		require.NoError(t, err)
		assert.Equal(t, "no", resp.Lang)
		assert.Len(t, resp.Actions, 5)
		assert.Equal(t, []string{"*Strikk 4 masker, øk 1 maske* 5 ganger"}, resp.Text.Lines)
	})

	t.Run("too many decreases", func(t *testing.T) {
		resp, err := s.handleDistribute(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"stitches": 10,
			"changes":  6,
		})
		require.NoError(t, err)
		assert.Equal(t, domain.OutcomeTooManyDecreases, resp.Outcome)
		assert.Equal(t, 5, resp.Max)
		assert.Equal(t, "Too many decreases. Maximum decreases for 10 stitches is 5.", resp.Text.Message)
	})

	t.Run("undecodable arguments", func(t *testing.T) {
		_, err := s.handleDistribute(ctx, mcp.CallToolRequest{}, map[string]interface{}{
			"stitches": []any{1, 2},
		})
		assert.Error(t, err)
	})
}

func TestInProcessClient(t *testing.T) {
	ctx := context.Background()
	c, err := client.NewInProcessClient(newTestServer().MCPServer())
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Start(ctx))
	_, err = c.Initialize(ctx, mcp.InitializeRequest{
		Params: mcp.InitializeParams{
			ProtocolVersion: mcp.LATEST_PROTOCOL_VERSION,
			ClientInfo:      mcp.Implementation{Name: "knitcalc-test", Version: "0.0.0"},
		},
	})
	require.NoError(t, err)

	tools, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"distribute_stitches", "list_locales"}, names)

	res, err := c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{Name: "list_locales"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	var langs []string
	require.NoError(t, json.Unmarshal([]byte(text.Text), &langs))
	assert.Equal(t, []string{"en", "no"}, langs)

	res, err = c.CallTool(ctx, mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      "distribute_stitches",
			Arguments: map[string]any{"stitches": 20, "changes": 5, "mode": "increase"},
		},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	assert.NotNil(t, res.StructuredContent)
}
