// Package httptool issues single-shot HTTP requests and normalizes their
// responses by content type: JSON bodies parse into structured values, text
// bodies decode to UTF-8 strings, and everything else comes back as raw
// bytes. Failures are classified into a tagged error type so callers can
// distinguish timeouts from connection failures from error statuses.
package httptool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

const (
	// DefaultTimeoutSecs is the request timeout when none is given.
	DefaultTimeoutSecs = 30
	// DefaultMaxBodyBytes caps how much of a response body is read (4MB).
	DefaultMaxBodyBytes = 4 << 20
)

// Request describes a single HTTP transaction. URL is required; everything
// else is optional. Method defaults to GET and is uppercased before
// transmission. Body may be a string, sent verbatim, or any other value,
// which is JSON-encoded. Params are appended to the URL's query string.
type Request struct {
	URL         string
	Method      string
	Headers     map[string]string
	Body        any
	Params      map[string]any
	TimeoutSecs int
}

// Options configures a Client. Zero values select defaults.
type Options struct {
	DefaultTimeoutSecs int
	MaxBodyBytes       int64
	UserAgent          string
	BlockPrivateHosts  bool
}

// Client issues requests and normalizes responses. Each call uses a fresh,
// non-pooling transport: one invocation, one connection, no reuse.
type Client struct {
	opts Options
}

// New creates a Client with the given options.
func New(opts Options) *Client {
	if opts.DefaultTimeoutSecs <= 0 {
		opts.DefaultTimeoutSecs = DefaultTimeoutSecs
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}

	return &Client{opts: opts}
}

// Do issues the HTTP transaction described by req and normalizes the
// response. Failures are returned as *Error with a classified kind. An
// error-status response (4xx/5xx) fails before any content inspection, so a
// 500 with a JSON body is reported as an error, never decoded.
func (c *Client) Do(ctx context.Context, req Request) (Result, error) {
	if req.URL == "" {
		return Result{}, otherError(req.URL, errors.New("url is required"))
	}

	timeout := req.TimeoutSecs
	if timeout <= 0 {
		timeout = c.opts.DefaultTimeoutSecs
	}

	httpReq, err := c.buildRequest(ctx, req)
	if err != nil {
		return Result{}, otherError(req.URL, err)
	}

	ctx, cancel := context.WithTimeout(httpReq.Context(), time.Duration(timeout)*time.Second)
	defer cancel()
	httpReq = httpReq.WithContext(ctx)

	client := &http.Client{Transport: c.transport()}

	resp, err := client.Do(httpReq)
	if err != nil {
		return Result{}, classify(req.URL, timeout, err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBodyBytes))
	if err != nil {
		return Result{}, classify(req.URL, timeout, err)
	}

	if resp.StatusCode >= 400 {
		return Result{}, statusError(req.URL, resp.StatusCode)
	}

	return normalize(resp, body), nil
}

// buildRequest assembles the outbound *http.Request: query params merged into
// the URL, method uppercased, body encoded, and headers applied.
func (c *Client) buildRequest(ctx context.Context, req Request) (*http.Request, error) {
	target, err := mergeParams(req.URL, req.Params)
	if err != nil {
		return nil, err
	}

	method := strings.ToUpper(req.Method)
	if method == "" {
		method = http.MethodGet
	}

	bodyReader, structured, err := encodeBody(req.Body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, bodyReader)
	if err != nil {
		return nil, err
	}

	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}

	if structured && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	if c.opts.UserAgent != "" && httpReq.Header.Get("User-Agent") == "" {
		httpReq.Header.Set("User-Agent", c.opts.UserAgent)
	}

	return httpReq, nil
}

// transport returns a fresh transport for a single transaction. Keep-alives
// are disabled: the connection lives exactly as long as the invocation.
func (c *Client) transport() *http.Transport {
	if c.opts.BlockPrivateHosts {
		return guardedTransport()
	}

	return &http.Transport{DisableKeepAlives: true}
}

// mergeParams appends params to the URL's existing query string.
func mergeParams(rawURL string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	q := u.Query()
	for k, v := range params {
		q.Set(k, fmt.Sprint(v))
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// encodeBody converts a request body into a reader. Strings pass through
// verbatim; any other non-nil value is JSON-encoded, reported via structured
// so the caller can default the Content-Type header.
func encodeBody(body any) (r io.Reader, structured bool, err error) {
	switch b := body.(type) {
	case nil:
		return nil, false, nil
	case string:
		if b == "" {
			return nil, false, nil
		}
		return strings.NewReader(b), false, nil
	case []byte:
		return bytes.NewReader(b), false, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, false, fmt.Errorf("encode body: %w", err)
		}
		return bytes.NewReader(data), true, nil
	}
}

// classify maps a transport error to a classified *Error. Order matters:
// timeouts also surface as net errors, so they are checked first.
func classify(url string, timeoutSecs int, err error) *Error {
	var clsErr *Error
	if errors.As(err, &clsErr) {
		return clsErr
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return timeoutError(url, timeoutSecs)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return connectionError(url)
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return connectionError(url)
	}

	return otherError(url, err)
}

// normalize dispatches on the response's Content-Type header: JSON parses
// into a structured value (falling back to text on a malformed body), known
// text types decode per their declared or detected charset, and anything
// else passes through as raw bytes.
func normalize(resp *http.Response, body []byte) Result {
	headers := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		headers[k] = resp.Header.Get(k)
	}

	result := Result{
		Status:  resp.StatusCode,
		Headers: headers,
	}

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	switch {
	case strings.Contains(contentType, "application/json"):
		var v any
		if err := json.Unmarshal(body, &v); err != nil {
			// Malformed JSON falls back to text rather than failing.
			result.Kind = PayloadText
			result.Text = decodeText(body, contentType)
			return result
		}
		result.Kind = PayloadJSON
		result.JSON = v
	case isTextType(contentType):
		result.Kind = PayloadText
		result.Text = decodeText(body, contentType)
	default:
		result.Kind = PayloadBinary
		result.Bytes = body
	}

	return result
}

// textTypes are the content-type fragments treated as text.
var textTypes = []string{"text/", "application/xml", "application/html"}

func isTextType(contentType string) bool {
	for _, t := range textTypes {
		if strings.Contains(contentType, t) {
			return true
		}
	}

	return false
}

// decodeText converts body to UTF-8 using the charset declared in the
// Content-Type header, or a detected one when absent. On any decoding
// problem the raw bytes are returned as a string.
func decodeText(body []byte, contentType string) string {
	r, err := charset.NewReader(bytes.NewReader(body), contentType)
	if err != nil {
		return string(body)
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(body)
	}

	return string(decoded)
}
