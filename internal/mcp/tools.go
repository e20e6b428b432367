// ABOUTME: MCP tool implementations for kaomoji
// ABOUTME: Query by keyword, add keywords, and remove kaomoji
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/kaomoji/internal/backup"
	"github.com/harper/kaomoji/internal/db"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// KaomojiData is a kaomoji as returned to MCP clients.
type KaomojiData struct {
	Code     string   `json:"code" jsonschema:"The kaomoji text"`
	Keywords []string `json:"keywords" jsonschema:"Keywords describing the kaomoji"`
}

func dataOf(r *db.Record) KaomojiData {
	kws := r.Keywords()
	if kws == nil {
		kws = []string{}
	}
	return KaomojiData{Code: r.Code(), Keywords: kws}
}

// QueryInput defines the input for query_kaomoji tool.
type QueryInput struct {
	Term string `json:"term" jsonschema:"Keyword substring to search for, case-insensitive"`
}

// QueryOutput defines the output for query_kaomoji tool.
type QueryOutput struct {
	Results []KaomojiData `json:"results" jsonschema:"Matching kaomoji sorted by code"`
	Count   int           `json:"count" jsonschema:"Number of matches"`
}

// AddKeywordsInput defines the input for add_keywords tool.
type AddKeywordsInput struct {
	Code     string   `json:"code" jsonschema:"The kaomoji to tag"`
	Keywords []string `json:"keywords" jsonschema:"Keywords to add"`
}

// AddKeywordsOutput defines the output for add_keywords tool.
type AddKeywordsOutput struct {
	Kaomoji KaomojiData `json:"kaomoji" jsonschema:"The kaomoji after the update"`
	Created bool        `json:"created" jsonschema:"Whether the kaomoji was new"`
}

// RemoveInput defines the input for remove_kaomoji tool.
type RemoveInput struct {
	Code string `json:"code" jsonschema:"The kaomoji to remove"`
}

// RemoveOutput defines the output for remove_kaomoji tool.
type RemoveOutput struct {
	Code    string `json:"code" jsonschema:"The kaomoji that was removed"`
	Removed bool   `json:"removed" jsonschema:"Whether the kaomoji existed"`
}

// registerTools adds all MCP tools to the server.
func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "query_kaomoji",
		Description: "Find kaomoji whose keywords contain a search term. Use this when the user wants an emoticon for a mood or situation.",
	}, s.handleQuery)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "add_keywords",
		Description: "Add keywords to a kaomoji, creating the kaomoji if it is not in the database yet.",
	}, s.handleAddKeywords)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "remove_kaomoji",
		Description: "Remove a kaomoji and all its keywords from the database.",
	}, s.handleRemove)
}

func textResult(format string, args ...any) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf(format, args...)},
		},
	}
}

// handleQuery implements the query_kaomoji tool.
func (s *Server) handleQuery(ctx context.Context, req *mcp.CallToolRequest, input QueryInput) (*mcp.CallToolResult, QueryOutput, error) {
	database, err := s.open()
	if err != nil {
		return nil, QueryOutput{}, fmt.Errorf("failed to open database: %w", err)
	}

	output := QueryOutput{Results: []KaomojiData{}}
	var lines []string
	for _, r := range database.Search(input.Term) {
		output.Results = append(output.Results, dataOf(r))
		lines = append(lines, strings.TrimSuffix(r.Serialize(), "\n"))
	}
	output.Count = len(output.Results)

	if output.Count == 0 {
		return textResult("No kaomoji match %q", input.Term), output, nil
	}
	return textResult("%d kaomoji match %q:\n%s", output.Count, input.Term, strings.Join(lines, "\n")), output, nil
}

// handleAddKeywords implements the add_keywords tool.
func (s *Server) handleAddKeywords(ctx context.Context, req *mcp.CallToolRequest, input AddKeywordsInput) (*mcp.CallToolResult, AddKeywordsOutput, error) {
	database, err := s.open()
	if err != nil {
		return nil, AddKeywordsOutput{}, fmt.Errorf("failed to open database: %w", err)
	}

	created := false
	record, err := database.Get(input.Code)
	if errors.Is(err, db.ErrNotFound) {
		record, err = db.NewRecord(input.Code, nil)
		created = true
	}
	if err != nil {
		return nil, AddKeywordsOutput{}, err
	}

	err = backup.Commit(database, s.cfg.Backup, s.now(), func() error {
		for _, kw := range input.Keywords {
			if err := record.AddKeywords(db.ParseKeywords(kw)...); err != nil {
				return err
			}
		}
		database.Update(record)
		return nil
	})
	if err != nil {
		return nil, AddKeywordsOutput{}, err
	}

	output := AddKeywordsOutput{Kaomoji: dataOf(record), Created: created}
	return textResult("Updated %s", strings.TrimSuffix(record.Serialize(), "\n")), output, nil
}

// handleRemove implements the remove_kaomoji tool.
func (s *Server) handleRemove(ctx context.Context, req *mcp.CallToolRequest, input RemoveInput) (*mcp.CallToolResult, RemoveOutput, error) {
	database, err := s.open()
	if err != nil {
		return nil, RemoveOutput{}, fmt.Errorf("failed to open database: %w", err)
	}

	output := RemoveOutput{Code: strings.TrimSpace(input.Code)}
	if !database.Exists(input.Code) {
		return textResult("%s is not in the database", output.Code), output, nil
	}

	err = backup.Commit(database, s.cfg.Backup, s.now(), func() error {
		output.Removed = database.Remove(input.Code)
		return nil
	})
	if err != nil {
		return nil, RemoveOutput{}, err
	}
	return textResult("Removed %s", output.Code), output, nil
}
