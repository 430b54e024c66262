// Package tools provides tool execution and MCP (Model Context Protocol) integration.
//
// It is organized into sub-packages:
//   - [github.com/httpprobe/httpprobe/pkg/tools/toolbox] — Tool type and ToolBox registry for registering, listing, and calling tools
//   - [github.com/httpprobe/httpprobe/pkg/tools/mcpserver] — MCP server using the official MCP Go SDK for exposing tools over the MCP protocol
//
// The toolbox sub-package is the foundation layer; mcpserver is a thin
// wrapper around the official MCP Go SDK (github.com/modelcontextprotocol/go-sdk)
// that serves toolbox tools to an MCP host.
package tools
