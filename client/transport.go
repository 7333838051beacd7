package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"tango/codec"
	"tango/kebab"
	"tango/server"
)

// transport builds requests, dispatches them, and decodes responses. It
// holds nothing but an *http.Client — everything else is per-call state
// passed explicitly. Tango's HTTP transport has no long-lived connection
// of its own to manage; net/http's client already pools them.
type transport struct {
	httpClient *http.Client
}

func newTransport(httpClient *http.Client) *transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &transport{httpClient: httpClient}
}

// dispatch handles URL/body construction, honoring ctx cancellation,
// optional progress instrumentation, and response decoding. It populates
// callCtx.Response and callCtx.Result on success.
func (t *transport) dispatch(ctx context.Context, baseURL string, callCtx *Context) error {
	if err := ctx.Err(); err != nil {
		return ErrAborted
	}

	req, uploadTotal, err := t.buildRequest(ctx, baseURL, callCtx)
	if err != nil {
		return err
	}

	if callCtx.OnProgress != nil && uploadTotal > 0 {
		req.Body = &countingReader{r: req.Body, total: uploadTotal, onProgress: callCtx.OnProgress, phase: PhaseUpload}
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ErrAborted
		}
		return fmt.Errorf("tango: request failed: %w", err)
	}
	defer resp.Body.Close()
	callCtx.Response = resp

	var bodyReader io.Reader = resp.Body
	if callCtx.OnProgress != nil {
		total := resp.ContentLength
		bodyReader = &countingReader{r: resp.Body, total: total, onProgress: callCtx.OnProgress, phase: PhaseDownload}
	}
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		if ctx.Err() != nil {
			return ErrAborted
		}
		return fmt.Errorf("tango: failed to read response body: %w", err)
	}

	result, err := decodeResponse(resp, body)
	if err != nil {
		return err
	}
	callCtx.Result = result
	return nil
}

// buildRequest constructs the HTTP request for callCtx's rpcType. It
// returns the declared upload byte total (0 when none) so dispatch can
// decide whether to install a progress-counting body reader.
func (t *transport) buildRequest(ctx context.Context, baseURL string, callCtx *Context) (*http.Request, int64, error) {
	route := kebab.Join(callCtx.Path)
	target := baseURL + "/" + route

	switch callCtx.RPCType {
	case server.Get:
		return buildGetRequest(ctx, target, callCtx)
	case server.Query:
		return buildQueryRequest(ctx, target, callCtx)
	case server.Command:
		return buildCommandRequest(ctx, target, callCtx)
	default:
		return nil, 0, fmt.Errorf("tango: unsupported rpcType: %s", callCtx.RPCType)
	}
}

func buildGetRequest(ctx context.Context, target string, callCtx *Context) (*http.Request, int64, error) {
	q := url.Values{}
	for k, v := range callCtx.Args {
		if v == nil {
			continue
		}
		q.Set(k, fmt.Sprintf("%v", v))
	}
	if encoded := q.Encode(); encoded != "" {
		target += "?" + encoded
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	applyHeaders(req, callCtx.Headers)
	return req, 0, nil
}

func buildQueryRequest(ctx context.Context, target string, callCtx *Context) (*http.Request, int64, error) {
	if len(callCtx.Args) > 0 {
		packed, err := codec.Pack(callCtx.Args)
		if err != nil {
			return nil, 0, fmt.Errorf("tango: failed to pack args: %w", err)
		}
		q := url.Values{}
		q.Set("args", codec.Base64URL(packed))
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, 0, err
	}
	applyHeaders(req, callCtx.Headers)
	return req, 0, nil
}

func buildCommandRequest(ctx context.Context, target string, callCtx *Context) (*http.Request, int64, error) {
	rest, uploads := extractUploads(callCtx.Args)
	if len(uploads) > 0 {
		return buildMultipartRequest(ctx, target, callCtx, rest, uploads)
	}

	packed, err := codec.Pack(callCtx.Args)
	if err != nil {
		return nil, 0, fmt.Errorf("tango: failed to pack args: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(packed))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", string(codec.Msgpack))
	applyHeaders(req, callCtx.Headers)
	return req, int64(len(packed)), nil
}

// buildMultipartRequest builds the multipart case of a command call,
// writing the list-upload "[]" suffix convention on the write side.
func buildMultipartRequest(ctx context.Context, target string, callCtx *Context, rest map[string]any, uploads map[string][]*FileUpload) (*http.Request, int64, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	packed, err := codec.Pack(rest)
	if err != nil {
		return nil, 0, fmt.Errorf("tango: failed to pack args: %w", err)
	}
	argsHeader := make(map[string][]string)
	argsHeader["Content-Disposition"] = []string{`form-data; name="args"`}
	argsHeader["Content-Type"] = []string{string(codec.Msgpack)}
	argsPart, err := mw.CreatePart(argsHeader)
	if err != nil {
		return nil, 0, err
	}
	if _, err := argsPart.Write(packed); err != nil {
		return nil, 0, err
	}

	for name, files := range uploads {
		fieldName := name
		if _, single := callCtx.Args[name].(*FileUpload); !single {
			fieldName = name + "[]"
		}
		for _, f := range files {
			fw, err := mw.CreateFormFile(fieldName, f.Filename)
			if err != nil {
				return nil, 0, err
			}
			if _, err := fw.Write(f.Data); err != nil {
				return nil, 0, err
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(buf.Bytes()))
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	applyHeaders(req, callCtx.Headers)
	return req, int64(buf.Len()), nil
}

func applyHeaders(req *http.Request, headers http.Header) {
	for k, values := range headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
}

// decodeResponse MessagePack-decodes a non-empty response body; the
// response's Content-Type header is not consulted.
func decodeResponse(resp *http.Response, body []byte) (any, error) {
	if len(body) == 0 {
		if resp.StatusCode == http.StatusNoContent {
			return nil, nil
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			return nil, newServerError(resp, nil)
		}
		return nil, &TransportError{Status: resp.StatusCode, Response: resp, Message: "tango: unexpected empty response"}
	}

	var decoded any
	if err := codec.Unpack(body, &decoded); err != nil {
		return nil, fmt.Errorf("tango: failed to decode response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newServerError(resp, decoded)
	}
	return decoded, nil
}

// countingReader wraps a body reader, reporting Progress as bytes flow
// through it.
type countingReader struct {
	r          io.Reader
	loaded     int64
	total      int64
	onProgress func(Progress)
	phase      Phase
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.loaded += int64(n)
		c.report()
	}
	if err == io.EOF {
		c.report()
	}
	return n, err
}

func (c *countingReader) Close() error {
	if closer, ok := c.r.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *countingReader) report() {
	percent := -1.0
	total := c.total
	if total <= 0 {
		total = -1
	} else {
		percent = float64(c.loaded) / float64(total) * 100
		percent = float64(int(percent + 0.5))
	}
	c.onProgress(Progress{Loaded: c.loaded, Total: total, Percent: percent, Phase: c.phase})
}
