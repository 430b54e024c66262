package httptool

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/httpprobe/httpprobe/pkg/tools/toolbox"
)

// Toolset exposes HTTP request tools backed by a Client.
type Toolset struct {
	client *Client
}

// NewToolset creates a Toolset that issues requests through client.
func NewToolset(client *Client) *Toolset {
	return &Toolset{client: client}
}

// Tools returns a ToolBox containing the HTTP request tools.
func (t *Toolset) Tools() *toolbox.ToolBox {
	tb := toolbox.New()
	tb.Register(t.requestTool(), t.requestWithMethodTool(), t.detailedRequestTool())

	return tb
}

// requestInput is the argument shape shared by all three tools. The simple
// tool only documents url; extra fields sent anyway are ignored by its schema
// but forwarded all the same.
type requestInput struct {
	URL     string            `json:"url"`
	Method  string            `json:"method"`
	Headers map[string]string `json:"headers"`
	Body    any               `json:"body"`
	Params  map[string]any    `json:"params"`
	Timeout int               `json:"timeout"`
}

func (t *Toolset) requestTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "http_request",
		Description: "Send a GET request to a URL and return the response in its original format: JSON responses as an object, text responses as a string, binary responses as base64.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"url":{"type":"string","description":"The URL to send the request to"}},"required":["url"]}`),
		Handler:     t.handleRequest,
	}
}

func (t *Toolset) requestWithMethodTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "http_request_with_method",
		Description: "Send an HTTP request with a chosen method and return the response in its original format: JSON responses as an object, text responses as a string, binary responses as base64. Optional headers, body, query params, and timeout are forwarded.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"url":{"type":"string","description":"The URL to send the request to"},"method":{"type":"string","description":"HTTP method (GET, POST, PUT, DELETE, ...). Default is GET"},"headers":{"type":"object","additionalProperties":{"type":"string"},"description":"HTTP headers to include in the request"},"body":{"description":"Request body: a string is sent verbatim, an object is JSON-encoded"},"params":{"type":"object","description":"Query parameters appended to the URL"},"timeout":{"type":"integer","description":"Request timeout in seconds. Default is 30"}},"required":["url","method"]}`),
		Handler:     t.handleRequest,
	}
}

func (t *Toolset) detailedRequestTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "detailed_http_request",
		Description: "Send a fully parameterized HTTP request and return the response in its original format: JSON responses as an object, text responses as a string, binary responses as base64.",
		InputSchema: json.RawMessage(`{"type":"object","properties":{"url":{"type":"string","description":"The URL to send the request to"},"method":{"type":"string","description":"HTTP method (GET, POST, PUT, DELETE, ...). Default is GET"},"headers":{"type":"object","additionalProperties":{"type":"string"},"description":"HTTP headers to include in the request"},"body":{"description":"Request body: a string is sent verbatim, an object is JSON-encoded"},"params":{"type":"object","description":"Query parameters appended to the URL"},"timeout":{"type":"integer","description":"Request timeout in seconds. Default is 30"}},"required":["url"]}`),
		Handler:     t.handleRequest,
	}
}

// handleRequest backs all three tools: they differ only in which parameters
// their schemas document, so every received field is forwarded.
func (t *Toolset) handleRequest(ctx context.Context, input json.RawMessage) (string, error) {
	var in requestInput
	if err := json.Unmarshal(input, &in); err != nil {
		return "", fmt.Errorf("httptool: invalid input: %w", err)
	}

	if in.URL == "" {
		return "", fmt.Errorf("httptool: url is required")
	}

	result, err := t.client.Do(ctx, Request{
		URL:         in.URL,
		Method:      in.Method,
		Headers:     in.Headers,
		Body:        in.Body,
		Params:      in.Params,
		TimeoutSecs: in.Timeout,
	})
	if err != nil {
		return "", err
	}

	return renderResult(result)
}

// renderResult converts a Result to the tool's text output: JSON values are
// re-marshaled, text passes through, binary is base64-encoded.
func renderResult(result Result) (string, error) {
	switch result.Kind {
	case PayloadJSON:
		data, err := json.Marshal(result.JSON)
		if err != nil {
			return "", fmt.Errorf("httptool: marshal result: %w", err)
		}
		return string(data), nil
	case PayloadText:
		return result.Text, nil
	default:
		return base64.StdEncoding.EncodeToString(result.Bytes), nil
	}
}
