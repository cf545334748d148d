// Package mcpserver exposes read-only DX7 dump inspection as Model Context
// Protocol tools.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/james-see/dx7syx/pkg/converter"
	"github.com/james-see/dx7syx/pkg/dx7"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tools reads dump files through a converter.
type Tools struct {
	conv *converter.Converter
}

// NewTools creates the tool handlers.
func NewTools(conv *converter.Converter) *Tools {
	return &Tools{conv: conv}
}

// NewServer registers every tool on a new MCP server.
func NewServer(conv *converter.Converter, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"DX7 SysEx",
		version,
		server.WithToolCapabilities(false),
	)
	t := NewTools(conv)

	listTool := mcp.NewTool("dx7_list-voices",
		mcp.WithDescription("Lists the voice names in a DX7 .syx, .mid, .json or .yaml dump."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the dump file.")),
	)
	s.AddTool(listTool, t.ListVoices)

	getTool := mcp.NewTool("dx7_get-voice",
		mcp.WithDescription("Returns one voice of a DX7 dump as JSON."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the dump file.")),
		mcp.WithNumber("slot", mcp.Description("Cartridge slot (1-32). Ignored for single voice dumps.")),
	)
	s.AddTool(getTool, t.GetVoice)

	checksumTool := mcp.NewTool("dx7_checksum",
		mcp.WithDescription("Computes the SysEx checksum of the payload of a DX7 dump."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the dump file.")),
	)
	s.AddTool(checksumTool, t.Checksum)

	return s
}

// Serve runs the MCP server over stdin/stdout until the client disconnects.
func Serve(conv *converter.Converter, version string) error {
	slog.Info("starting MCP server")
	return server.ServeStdio(NewServer(conv, version))
}

func (t *Tools) load(path string) (*converter.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	format := converter.DetectFormat(path)
	if format == converter.FormatUnknown {
		format = converter.DetectFormatFromContent(data)
	}
	return t.conv.Decode(data, format)
}

// ListVoices handles dx7_list-voices.
func (t *Tools) ListVoices(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	slog.Debug("[mcp] list voices", "path", path)

	doc, err := t.load(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s, channel %d\n", doc.Kind, doc.Channel)
	for i, v := range doc.Voices {
		fmt.Fprintf(&b, "%2d %s\n", i+1, v.Name)
	}
	return mcp.NewToolResultText(b.String()), nil
}

// GetVoice handles dx7_get-voice.
func (t *Tools) GetVoice(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	slot := request.GetInt("slot", 1)
	slog.Debug("[mcp] get voice", "path", path, "slot", slot)

	doc, err := t.load(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var v dx7.Voice
	if doc.Kind == converter.KindVoice {
		v = doc.Voices[0]
	} else {
		c, err := doc.Cartridge()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if v, err = c.Voice(slot); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	asJSON, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal voice to JSON: %w", err)
	}
	return mcp.NewToolResultText(string(asJSON)), nil
}

// Checksum handles dx7_checksum.
func (t *Tools) Checksum(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := t.load(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var payload []byte
	if doc.Kind == converter.KindVoice {
		payload = doc.Voices[0].Bytes()
	} else {
		c, err := doc.Cartridge()
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		payload = c.Bytes()
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s payload of %d bytes, checksum 0x%02X", doc.Kind, len(payload), dx7.Checksum(payload))), nil
}
