package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/aretw0/sfsweb"
	"github.com/aretw0/sfsweb/pkg/actions"
	"github.com/aretw0/sfsweb/pkg/domain"
	"github.com/aretw0/sfsweb/pkg/ports"
)

// BoardURI is the resource holding the current status board.
const BoardURI = "sfsweb://board"

// Result is the structured summary returned by every tool.
type Result struct {
	Action   string        `json:"action"`
	Outcome  string        `json:"outcome"`
	Status   int           `json:"status,omitempty"`
	Effect   domain.Effect `json:"effect"`
	Location string        `json:"location"`
	Body     any           `json:"body,omitempty"`
	Error    string        `json:"error,omitempty"`
}

type confirmKey struct{}

// Confirmer approves destructive actions only when the tool call carried confirm=true.
func Confirmer() ports.Confirmer {
	return ports.ConfirmFunc(func(ctx context.Context, _ string) (bool, error) {
		ok, _ := ctx.Value(confirmKey{}).(bool)
		return ok, nil
	})
}

// Server exposes the catalog actions as MCP tools.
type Server struct {
	client    *sfsweb.Client
	mcpServer *server.MCPServer
	handlers  map[string]server.ToolHandlerFunc
}

// NewServer creates a new MCP Server instance.
// The client should be built with Confirmer so empty_recycle_bin honors its confirm argument.
func NewServer(client *sfsweb.Client) *Server {
	s := &Server{
		client:    client,
		mcpServer: server.NewMCPServer("sfsweb-mcp", strings.TrimSpace(sfsweb.Version)),
		handlers:  make(map[string]server.ToolHandlerFunc),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.handlers[tool.Name] = handler
	s.mcpServer.AddTool(tool, handler)
}

func (s *Server) registerTools() {
	s.addTool(mcp.NewTool("upload",
		mcp.WithDescription("Upload a local file into a folder of the SFS service."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the local file to upload")),
		mcp.WithString("dest_folder", mcp.Required(), mcp.Description("Destination folder")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		in := actions.UploadInput{DestFolder: request.GetString("dest_folder", "")}
		f, err := openFile(request.GetString("file_path", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if f != nil {
			defer f.Close()
			in.File = f
			in.Filename = filepath.Base(f.Name())
		}
		return s.result(s.client.Upload(ctx, in))
	})

	s.addTool(mcp.NewTool("add_new",
		mcp.WithDescription("Register an existing file or folder with the SFS service."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Filesystem path to add")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.AddNew(ctx, request.GetString("path", "")))
	})

	s.addTool(mcp.NewTool("discover",
		mcp.WithDescription("Scan a folder and add its contents."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Folder to scan")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.Discover(ctx, request.GetString("path", "")))
	})

	s.addTool(mcp.NewTool("upload_profile_picture",
		mcp.WithDescription("Replace the profile picture with a local image."),
		mcp.WithString("file_path", mcp.Required(), mcp.Description("Path of the local image")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var in actions.PictureInput
		f, err := openFile(request.GetString("file_path", ""))
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if f != nil {
			defer f.Close()
			in.Image = f
			in.Filename = filepath.Base(f.Name())
		}
		return s.result(s.client.UploadProfilePicture(ctx, in))
	})

	s.addTool(mcp.NewTool("clear_profile_picture",
		mcp.WithDescription("Reset the profile picture."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.ClearProfilePicture(ctx), nil)
	})

	s.addTool(mcp.NewTool("edit_profile",
		mcp.WithDescription("Update the profile fields. Omitted fields are sent blank."),
		mcp.WithString("name", mcp.Description("Display name")),
		mcp.WithString("username", mcp.Description("Username")),
		mcp.WithString("email", mcp.Description("Email address")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.EditProfile(ctx, actions.ProfileInput{
			Name:     request.GetString("name", ""),
			Username: request.GetString("username", ""),
			Email:    request.GetString("email", ""),
		}), nil)
	})

	s.addTool(mcp.NewTool("search",
		mcp.WithDescription("Run a search query."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.Search(ctx, request.GetString("query", "")))
	})

	s.addTool(mcp.NewTool("update_settings",
		mcp.WithDescription("Persist the SFS client settings."),
		mcp.WithBoolean("local_backup", mcp.Description("Keep a local backup")),
		mcp.WithString("backup_dir", mcp.Description("Local backup directory")),
		mcp.WithString("port", mcp.Description("Client port")),
		mcp.WithString("buffer_size", mcp.Description("Event buffer size")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.UpdateSettings(ctx, actions.SettingsInput{
			LocalBackup: request.GetBool("local_backup", false),
			BackupDir:   request.GetString("backup_dir", ""),
			Port:        request.GetString("port", ""),
			BufferSize:  request.GetString("buffer_size", ""),
		}))
	})

	s.addTool(mcp.NewTool("delete_file",
		mcp.WithDescription("Delete a file."),
		mcp.WithString("file_id", mcp.Required(), mcp.Description("File ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.DeleteFile(ctx, request.GetString("file_id", "")))
	})

	s.addTool(mcp.NewTool("open_location",
		mcp.WithDescription("Reveal a file's location on the machine running the SFS client."),
		mcp.WithString("file_id", mcp.Required(), mcp.Description("File ID")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return s.result(s.client.OpenLocation(ctx, request.GetString("file_id", "")))
	})

	s.addTool(mcp.NewTool("empty_recycle_bin",
		mcp.WithDescription("Permanently delete all items in the recycle bin. Requires confirm=true."),
		mcp.WithBoolean("confirm", mcp.Required(), mcp.Description(actions.EmptyBinPrompt)),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ctx = context.WithValue(ctx, confirmKey{}, request.GetBool("confirm", false))
		return s.result(s.client.EmptyRecycleBin(ctx))
	})

	s.addTool(mcp.NewTool("check_status",
		mcp.WithDescription("Check the SFS service once and report online or offline."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(string(s.client.CheckStatus(ctx))), nil
	})
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(BoardURI, "Status Board",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.Marshal(s.client.Board().Snapshot())
		if err != nil {
			return nil, fmt.Errorf("failed to encode board: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      BoardURI,
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	})
}

// result turns an outcome into a tool result. Anything but success is a tool error.
func (s *Server) result(out domain.Outcome, err error) (*mcp.CallToolResult, error) {
	res := Result{
		Action:   out.Action,
		Outcome:  string(out.Kind),
		Status:   out.Status,
		Effect:   out.Effect,
		Location: s.client.Board().Snapshot().Location,
		Body:     out.Body,
	}
	switch {
	case errors.Is(err, domain.ErrDeclined):
		res.Outcome = "declined"
	case err != nil:
		res.Outcome = "invalid"
		res.Error = err.Error()
	case out.Err != nil:
		res.Error = out.Err.Error()
	}

	data, mErr := json.Marshal(res)
	if mErr != nil {
		return nil, fmt.Errorf("failed to encode result: %w", mErr)
	}
	if err == nil && out.OK() {
		return mcp.NewToolResultText(string(data)), nil
	}
	return mcp.NewToolResultError(string(data)), nil
}

// openFile opens a local file. An empty path yields nil so validation reports it.
func openFile(path string) (*os.File, error) {
	if strings.TrimSpace(path) == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return f, nil
}
