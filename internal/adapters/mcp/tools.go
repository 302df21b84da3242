package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"layerfill/internal/application/commands"
	"layerfill/internal/domain"
)

// RegisterTools adds all layerfill tools to the MCP server.
func RegisterTools(s *server.MCPServer, w *Workspace) {
	s.AddTool(importTool(), importHandler(w))
	s.AddTool(lastResultTool(), lastResultHandler(w))
	s.AddTool(listLayersTool(), listLayersHandler(w))
	s.AddTool(focusLayerTool(), focusLayerHandler(w))
	s.AddTool(selectNodeTool(), selectNodeHandler(w))
	s.AddTool(listImagesTool(), listImagesHandler(w))
}

// --- import_images ---

func importTool() mcp.Tool {
	return mcp.NewTool("import_images",
		mcp.WithDescription("Fill layers of the selected frame or group with images whose filenames match the layer names (case-insensitive, extension ignored). Directories contribute their png, jpg, jpeg and gif files."),
		mcp.WithArray("paths",
			mcp.Description("Image files or directories to import"),
			mcp.Required(),
			mcp.WithStringItems(),
		),
	)
}

func importHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		paths := req.GetStringSlice("paths", nil)
		if len(paths) == 0 {
			return toolError(fmt.Errorf("paths is required"))
		}

		images, err := w.images.Load(paths...)
		if err != nil {
			return toolError(err)
		}

		w.mu.Lock()
		defer w.mu.Unlock()

		cmd := commands.NewImportImagesCommand(w.canvas, w.store, w.session, w.logger, images)
		cmd.OnProgress = progressNotifier(ctx, req, w)

		result, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if result.Result.Mapped > 0 {
			if err := w.save(); err != nil {
				return toolError(fmt.Errorf("import applied but document was not saved: %w", err))
			}
		}

		return mcp.NewToolResultText(result.Message + "\n" + formatResult(result.Result)), nil
	}
}

// progressNotifier forwards import progress to the client when it asked
// for progress with a token
func progressNotifier(ctx context.Context, req mcp.CallToolRequest, w *Workspace) commands.ProgressFunc {
	if req.Params.Meta == nil || req.Params.Meta.ProgressToken == nil {
		return nil
	}
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return nil
	}

	token := req.Params.Meta.ProgressToken
	return func(percent int) {
		err := srv.SendNotificationToClient(ctx, "notifications/progress", progressParams(token, percent))
		if err != nil {
			w.logger.Debug("progress notification dropped", "error", err)
		}
	}
}

func progressParams(token any, percent int) map[string]any {
	return map[string]any{
		"progressToken": token,
		"progress":      percent,
		"total":         100,
	}
}

// --- last_result ---

func lastResultTool() mcp.Tool {
	return mcp.NewTool("last_result",
		mcp.WithDescription("Report the outcome of the most recent import in this session."),
	)
}

func lastResultHandler(w *Workspace) server.ToolHandlerFunc {
	return func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, at, ok := w.session.LastResult()
		if !ok {
			return mcp.NewToolResultText("No import data available"), nil
		}

		header := fmt.Sprintf("Import at %s: mapped %d of %d images",
			at.Format("15:04:05"), result.Mapped, result.TotalImages)
		return mcp.NewToolResultText(header + "\n" + formatResult(result)), nil
	}
}

// --- list_layers ---

func listLayersTool() mcp.Tool {
	return mcp.NewTool("list_layers",
		mcp.WithDescription("List the layers of the selected frame or group that can receive an image, keyed by the name an image file must carry."),
	)
}

func listLayersHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		result, err := commands.NewListLayersCommand(w.canvas).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(result.Buckets) == 0 {
			return mcp.NewToolResultText("No fillable layers."), nil
		}

		var sb strings.Builder
		for _, bucket := range result.Buckets {
			for i, layer := range bucket.Layers {
				fmt.Fprintf(&sb, "%s  %s  %s", bucket.Name, layer.Kind, layer.Path)
				if i > 0 {
					sb.WriteString("  (shadowed)")
				}
				sb.WriteString("\n")
			}
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- focus_layer ---

func focusLayerTool() mcp.Tool {
	return mcp.NewTool("focus_layer",
		mcp.WithDescription("Select a layer of the selected container by name and scroll it into view. Requires a prior import in this session."),
		mcp.WithString("name",
			mcp.Description("Layer name, matched case-insensitively"),
			mcp.Required(),
		),
	)
}

func focusLayerHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		name := req.GetString("name", "")

		w.mu.Lock()
		defer w.mu.Unlock()

		result, err := commands.NewFocusLayerCommand(w.canvas, w.session, w.logger, name, w.FocusOptions...).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if err := w.save(); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- select_node ---

func selectNodeTool() mcp.Tool {
	return mcp.NewTool("select_node",
		mcp.WithDescription("Select a node by ID, or by exact name if no ID matches. Imports fill the selected node."),
		mcp.WithString("id",
			mcp.Description("Node ID (e.g. 1:23) or name"),
			mcp.Required(),
		),
	)
}

func selectNodeHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id := req.GetString("id", "")

		w.mu.Lock()
		defer w.mu.Unlock()

		result, err := commands.NewSelectNodeCommand(w.canvas, w.canvas, id).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if err := w.save(); err != nil {
			return toolError(err)
		}
		return mcp.NewToolResultText(result.Message), nil
	}
}

// --- list_images ---

func listImagesTool() mcp.Tool {
	return mcp.NewTool("list_images",
		mcp.WithDescription("List images stored by previous imports, most recently used first."),
	)
}

func listImagesHandler(w *Workspace) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		images, err := w.catalog.ListImages(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(images) == 0 {
			return mcp.NewToolResultText("No images stored."), nil
		}

		var sb strings.Builder
		for _, img := range images {
			fmt.Fprintf(&sb, "%s  %s  %dx%d  %d bytes\n", img.Hash, img.Format, img.Width, img.Height, img.Size)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

func formatResult(r *domain.ImportResult) string {
	var sb strings.Builder
	for _, a := range r.Applied {
		fmt.Fprintf(&sb, "mapped  %s → %s\n", a.Filename, a.LayerPath)
	}
	for _, s := range r.SkippedDetails {
		fmt.Fprintf(&sb, "skipped %s: %s\n", s.Filename, s.Reason)
	}
	return sb.String()
}
