// ABOUTME: MCP resource implementations for kaomoji
// ABOUTME: Provides database status and keyword frequency context
package mcp

import (
	"context"
	"encoding/json"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	statusURI   = "kaomoji://status"
	keywordsURI = "kaomoji://keywords"
)

// StatusData is the content of the status resource.
type StatusData struct {
	Path     string `json:"path"`
	Exists   bool   `json:"exists"`
	Entries  int    `json:"entries"`
	Keywords int    `json:"keywords"`
}

// registerResources adds all MCP resources to the server.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         statusURI,
		Name:        "Database Status",
		Description: "Location and size of the kaomoji database",
		MIMEType:    "application/json",
	}, s.handleStatus)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         keywordsURI,
		Name:        "Keywords",
		Description: "Every keyword with the number of kaomoji using it",
		MIMEType:    "application/json",
	}, s.handleKeywords)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: "application/json",
				Text:     string(data),
			},
		},
	}, nil
}

// handleStatus implements the status resource.
func (s *Server) handleStatus(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	database, err := s.open()
	if err != nil {
		return nil, err
	}
	_, statErr := os.Stat(database.Path())
	return jsonResource(statusURI, StatusData{
		Path:     database.Path(),
		Exists:   statErr == nil,
		Entries:  database.Len(),
		Keywords: len(database.KeywordCounts()),
	})
}

// handleKeywords implements the keywords resource.
func (s *Server) handleKeywords(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	database, err := s.open()
	if err != nil {
		return nil, err
	}
	return jsonResource(keywordsURI, database.KeywordCounts())
}
