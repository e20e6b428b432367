// ABOUTME: MCP prompt definitions for kaomoji
// ABOUTME: Provides static context to AI assistants about the kaomoji tools
package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const gettingStarted = `The kaomoji database maps text emoticons such as (^_^) to descriptive keywords.

When to use it:
- The user asks for an emoticon for a mood, reaction or situation: call query_kaomoji
  with a short keyword such as "happy", "shrug" or "table flip".
- The user shares a kaomoji they like or describes one: call add_keywords so it can be
  found again later.
- The user asks to forget a kaomoji: call remove_kaomoji.

Keywords are short, lowercase where possible, and never contain commas.`

// registerPrompts adds static prompts to the MCP server.
func (s *Server) registerPrompts() {
	prompt := &mcp.Prompt{
		Name:        "kaomoji-getting-started",
		Description: "Introduction to the kaomoji database and how AI assistants should use it",
	}

	handler := func(ctx context.Context, req *mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: "Getting started with kaomoji",
			Messages: []*mcp.PromptMessage{
				{
					Role: "user",
					Content: &mcp.TextContent{
						Text: gettingStarted,
					},
				},
			},
		}, nil
	}

	s.mcpServer.AddPrompt(prompt, handler)
}
