// ABOUTME: Tests for MCP server
// ABOUTME: Validates server initialization, resources and prompts
package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harper/kaomoji/internal/config"
)

func newTestServer(t *testing.T, content string) (*Server, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "emoticons.tsv")
	if content != "" {
		if err := os.WriteFile(dbPath, []byte(content), 0644); err != nil { //nolint:gosec // Test file permissions
			t.Fatalf("failed to write fixture: %v", err)
		}
	}
	cfg := config.Default()
	cfg.DatabaseFilename = dbPath
	server := NewServer(cfg)
	server.now = func() time.Time { return time.Unix(1700000000, 0) }
	return server, dbPath
}

func TestNewServer(t *testing.T) {
	server, dbPath := newTestServer(t, "")
	if server.mcpServer == nil {
		t.Fatal("expected MCP server to be created")
	}
	if server.cfg.DatabaseFilename != dbPath {
		t.Errorf("expected database %s, got %s", dbPath, server.cfg.DatabaseFilename)
	}
}

func TestStatusResource(t *testing.T) {
	server, dbPath := newTestServer(t, "(^_^)\thappy, smile\n(-_-)\tmeh\n")

	result, err := server.handleStatus(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleStatus failed: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("expected 1 content, got %d", len(result.Contents))
	}
	if result.Contents[0].URI != statusURI {
		t.Errorf("expected URI %s, got %s", statusURI, result.Contents[0].URI)
	}

	var status StatusData
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &status); err != nil {
		t.Fatalf("status is not JSON: %v", err)
	}
	if status.Path != dbPath || !status.Exists {
		t.Errorf("unexpected status location: %+v", status)
	}
	if status.Entries != 2 || status.Keywords != 3 {
		t.Errorf("expected 2 entries and 3 keywords, got %+v", status)
	}
}

func TestStatusResourceMissingDatabase(t *testing.T) {
	server, _ := newTestServer(t, "")

	result, err := server.handleStatus(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleStatus failed: %v", err)
	}
	var status StatusData
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &status); err != nil {
		t.Fatalf("status is not JSON: %v", err)
	}
	if status.Exists || status.Entries != 0 {
		t.Errorf("expected an empty, missing database, got %+v", status)
	}
}

func TestKeywordsResource(t *testing.T) {
	server, _ := newTestServer(t, "(^_^)\thappy\n(^o^)\thappy, excited\n")

	result, err := server.handleKeywords(context.Background(), nil)
	if err != nil {
		t.Fatalf("handleKeywords failed: %v", err)
	}
	var counts map[string]int
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &counts); err != nil {
		t.Fatalf("keywords are not JSON: %v", err)
	}
	if counts["happy"] != 2 || counts["excited"] != 1 {
		t.Errorf("unexpected counts: %v", counts)
	}
}

func TestMalformedDatabase(t *testing.T) {
	server, _ := newTestServer(t, "\tno code\n")
	if _, err := server.handleStatus(context.Background(), nil); err == nil {
		t.Error("expected an error for a malformed database")
	}
}

func TestGettingStartedPromptMentionsTools(t *testing.T) {
	for _, name := range []string{"query_kaomoji", "add_keywords", "remove_kaomoji"} {
		if !strings.Contains(gettingStarted, name) {
			t.Errorf("prompt does not mention %s", name)
		}
	}
}
