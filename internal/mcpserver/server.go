// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes reelsync tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/perhult/reelsync/internal/imdb"
	"github.com/perhult/reelsync/internal/ledger"
	"github.com/perhult/reelsync/internal/omdb"
	"github.com/perhult/reelsync/internal/sync"
)

// Server wraps the MCP server with reelsync tools.
type Server struct {
	mcp    *server.MCPServer
	syncer *sync.Syncer
	client *omdb.Client
	db     *ledger.DB
}

// New creates a new MCP server with all reelsync tools registered.
// db may be nil, in which case sync_history reports no entries.
func New(syncer *sync.Syncer, client *omdb.Client, db *ledger.DB) *Server {
	s := &Server{syncer: syncer, client: client, db: db}

	s.mcp = server.NewMCPServer(
		"Reelsync",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("lookup_title",
		mcp.WithDescription("Fetch OMDb metadata for an IMDb ID or title URL without touching any note."),
		mcp.WithString("input", mcp.Required(), mcp.Description("IMDb ID (tt0113277) or title URL")),
	), s.lookupTitle)

	s.mcp.AddTool(mcp.NewTool("sync_note",
		mcp.WithDescription("Sync one vault note: fetch metadata for its identifier and merge it into the frontmatter."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Relative path to the note (e.g. Movies/Heat (1995).md)")),
	), s.syncNote)

	s.mcp.AddTool(mcp.NewTool("sync_all",
		mcp.WithDescription("Sync every note in the configured folders and return the synced/skipped/error tally."),
	), s.syncAll)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a new movie or series note from an IMDb ID or title URL. "+
			"The note lands in the configured folder, gets the template applied, and is synced "+
			"immediately. Read the reelsync://note-format resource for the resulting structure."),
		mcp.WithString("input", mcp.Required(), mcp.Description("IMDb ID (tt0113277) or title URL")),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("sync_history",
		mcp.WithDescription("Show the most recent per-note sync outcomes, newest first."),
	), s.syncHistory)

	s.mcp.AddTool(mcp.NewTool("get_note_contract",
		mcp.WithDescription("Returns the movie note format produced by sync. "+
			"Call this before editing notes by hand to keep them syncable."),
	), s.getNoteContract)

	// Resource: note format contract.
	s.mcp.AddResource(
		mcp.NewResource("reelsync://note-format", "Movie Note Format",
			mcp.WithResourceDescription("The Markdown note format the sync pipeline reads and writes."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readNoteFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) lookupTitle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	id, err := imdb.Parse(input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not a valid IMDb ID or title URL: %s", input)), nil
	}
	rec, err := s.client.Lookup(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if rec.Failed() {
		return mcp.NewToolResultError(fmt.Sprintf("omdb: %s: %s", id, rec.Error)), nil
	}
	out, _ := json.MarshalIndent(rec.Fields(), "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) syncNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	outcome, err := s.syncer.SyncNote(ctx, path, true)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s: %s", outcome, path)), nil
}

func (s *Server) syncAll(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tally, err := s.syncer.SyncAll(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%d synced, %d skipped, %d errors",
		tally.Synced, tally.Skipped, tally.Errors)), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := req.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path, err := s.syncer.CreateNote(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("created: %s", path)), nil
}

func (s *Server) syncHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.db == nil {
		return mcp.NewToolResultText("no history available"), nil
	}
	entries, err := s.db.Recent(20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultText("no sync history yet"), nil
	}
	out, _ := json.MarshalIndent(entries, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getNoteContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(NoteFormatContract), nil
}

func (s *Server) readNoteFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "reelsync://note-format",
			MIMEType: "text/markdown",
			Text:     NoteFormatContract,
		},
	}, nil
}
