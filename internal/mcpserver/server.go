// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes QuickPost tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/tlockney/quickpost/internal/index"
	"github.com/tlockney/quickpost/internal/store"
)

// Server wraps the MCP server with QuickPost tools.
type Server struct {
	mcp   *server.MCPServer
	store *store.Store
	db    *index.DB
}

// New creates a new MCP server with all QuickPost tools registered.
func New(st *store.Store, db *index.DB) *Server {
	s := &Server{store: st, db: db}

	s.mcp = server.NewMCPServer(
		"QuickPost",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_posts",
		mcp.WithDescription("List all posts, newest first, with their slugs and timestamps."),
	), s.listPosts)

	s.mcp.AddTool(mcp.NewTool("read_post",
		mcp.WithDescription("Read the full Markdown content of a post, frontmatter included."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Slug identifying the post (e.g. my-first-post)")),
	), s.readPost)

	s.mcp.AddTool(mcp.NewTool("create_post",
		mcp.WithDescription("Create a new post from a title and Markdown content. "+
			"QuickPost derives the slug from the title and synthesizes frontmatter "+
			"when the content carries none. Read the contract first via the "+
			"get_post_contract tool or the quickpost://post-format resource."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Post title")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Markdown body, with or without frontmatter")),
	), s.createPost)

	s.mcp.AddTool(mcp.NewTool("update_post",
		mcp.WithDescription("Update a post's title and/or content. Omitted fields keep their current value. "+
			"The slug never changes."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Slug identifying the post")),
		mcp.WithString("title", mcp.Description("New title (optional)")),
		mcp.WithString("content", mcp.Description("New Markdown content (optional)")),
	), s.updatePost)

	s.mcp.AddTool(mcp.NewTool("search_posts",
		mcp.WithDescription("Full-text search through post bodies and titles."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchPosts)

	s.mcp.AddTool(mcp.NewTool("get_post_contract",
		mcp.WithDescription("Returns the canonical QuickPost post format contract. "+
			"Call this before creating or updating posts to ensure correct structure."),
	), s.getPostContract)

	s.mcp.AddTool(mcp.NewTool("attach_image",
		mcp.WithDescription("Attach an image to a post from a base64 data URI. "+
			"Returns a markdownImage field ready to paste into the post body."),
		mcp.WithString("slug", mcp.Required(), mcp.Description("Slug of the post the image belongs to")),
		mcp.WithString("data", mcp.Required(), mcp.Description("data:<mime>;base64,<payload> URI (png, jpeg, gif, or webp)")),
	), s.attachImage)

	// Resource: post format contract.
	s.mcp.AddResource(
		mcp.NewResource("quickpost://post-format", "Post Format Contract",
			mcp.WithResourceDescription("Canonical Markdown post format that all posts follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readPostFormatResource,
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

func (s *Server) listPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	posts, err := s.store.List()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(posts, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	post, err := s.store.Get(slug)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", slug)), nil
	}
	return mcp.NewToolResultText(post.Content), nil
}

func (s *Server) createPost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	post, err := s.store.Create(title, content)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	_ = index.IndexPost(s.db, post.Slug, post.Title, post.Content)

	return mcp.NewToolResultText(fmt.Sprintf("created: %s", post.Slug)), nil
}

func (s *Server) updatePost(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug, err := req.RequireString("slug")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var upd store.UpdateRequest
	if title, tErr := req.RequireString("title"); tErr == nil && title != "" {
		upd.Title = &title
	}
	if content, cErr := req.RequireString("content"); cErr == nil && content != "" {
		upd.Content = &content
	}
	if upd.Title == nil && upd.Content == nil {
		return mcp.NewToolResultError("nothing to update: provide title and/or content"), nil
	}

	post, err := s.store.Update(slug, upd)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("update failed: %v", err)), nil
	}

	_ = index.IndexPost(s.db, post.Slug, post.Title, post.Content)

	return mcp.NewToolResultText(fmt.Sprintf("updated: %s", post.Slug)), nil
}

func (s *Server) searchPosts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if len(results) == 0 {
		return mcp.NewToolResultText("no matches"), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getPostContract(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(PostFormatContract), nil
}

func (s *Server) readPostFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "quickpost://post-format",
			MIMEType: "text/markdown",
			Text:     PostFormatContract,
		},
	}, nil
}
