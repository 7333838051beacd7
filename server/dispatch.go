package server

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"tango/codec"
)

// ContextFactory builds the per-request Context, letting callers override
// construction (inject a request-scoped logger, auth principal, …).
// NewContext is used when none is supplied.
type ContextFactory func(args map[string]any, adapter Adapter) *Context

// Dispatcher implements the per-request pipeline: method gate, route
// lookup, method/rpcType compatibility, rpcType-specific arg parsing,
// context construction, pipeline execution, response serialization. It is
// transport-agnostic beyond the Adapter seam — see adapter_chi.go for the
// go-chi/chi/v5 wiring.
type Dispatcher struct {
	routes  RouteTable
	factory ContextFactory
	log     *zap.Logger
}

// NewDispatcher wraps an already-flattened table in a ready-to-serve
// Dispatcher. A nil
// factory falls back to NewContext; a nil logger falls back to zap's no-op
// logger so callers aren't forced to wire one just to dispatch requests.
func NewDispatcher(table RouteTable, factory ContextFactory, log *zap.Logger) *Dispatcher {
	if factory == nil {
		factory = NewContext
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{routes: table, factory: factory, log: log}
}

// Dispatch runs the full per-request contract against routePath (the
// already-extracted, pre-normalization route tail — e.g. chi's wildcard
// match) and writes the serialized response to w.
func (d *Dispatcher) Dispatch(w http.ResponseWriter, r *http.Request, routePath string) {
	// 1. Method gate.
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		writeRouteError(w, errMethodNotAllowed(r.Method))
		return
	}

	// 2. Route lookup.
	key := routeKeyFromPath(routePath)
	route, ok := d.routes[key]
	if !ok {
		writeRouteError(w, errRouteNotFound())
		return
	}

	// 3. Method/rpc compatibility.
	if err := checkMethodCompat(r.Method, route.RPCType); err != nil {
		writeRouteError(w, err)
		return
	}

	// 4. Argument parsing.
	args, err := d.parseArgs(r, route.RPCType)
	if err != nil {
		writeParseError(w, err)
		return
	}

	// 5. Context construction.
	ctx := d.factory(args, Adapter{Request: r, RouteParam: routePath})

	// 6. Execution.
	result, err := route.Handler(ctx)
	if err != nil {
		d.writeHandlerError(w, r, ctx, err)
		return
	}

	// 7. Response serialization.
	writeResult(w, r, ctx, result)
}

func checkMethodCompat(method string, rpcType RPCType) error {
	switch method {
	case http.MethodGet:
		if rpcType != Query && rpcType != Get {
			return errRPCTypeMismatch(method, rpcType)
		}
	case http.MethodPost:
		if rpcType != Command {
			return errRPCTypeMismatch(method, rpcType)
		}
	}
	return nil
}

// parseArgs dispatches on rpcType.
func (d *Dispatcher) parseArgs(r *http.Request, rpcType RPCType) (map[string]any, error) {
	switch rpcType {
	case Get:
		return parseGetArgs(r.URL.Query()), nil
	case Query:
		return parseQueryArgs(r.URL.Query())
	case Command:
		return d.parseCommandArgs(r)
	default:
		return nil, errBadRequest(fmt.Sprintf("Unsupported rpcType: %s", rpcType))
	}
}

// parseGetArgs reads URL search parameters as plain strings, no coercion.
// Repeated keys: last-wins, matching the client's use of Set over Add on
// the write side. url.Values.Get returns the first value, so the last
// element of the slice is read directly instead.
func parseGetArgs(values url.Values) map[string]any {
	args := make(map[string]any, len(values))
	for k, v := range values {
		args[k] = v[len(v)-1]
	}
	return args
}

// parseQueryArgs reads the base64url+MessagePack-encoded "args" search
// parameter, defaulting to {} when absent.
func parseQueryArgs(values url.Values) (map[string]any, error) {
	raw := values.Get("args")
	if raw == "" {
		return map[string]any{}, nil
	}
	packed, err := codec.UnBase64URL(raw)
	if err != nil {
		return nil, errBadRequest("Invalid msgpack body")
	}
	var decoded map[string]any
	if err := codec.Unpack(packed, &decoded); err != nil {
		return nil, errBadRequest("Invalid msgpack body")
	}
	if decoded == nil {
		decoded = map[string]any{}
	}
	return decoded, nil
}

// parseCommandArgs switches on Content-Type.
func (d *Dispatcher) parseCommandArgs(r *http.Request) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "multipart/form-data"):
		return parseMultipart(r)

	case strings.Contains(contentType, "application/json"):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, errBadRequest("Invalid JSON body")
		}
		if len(body) == 0 {
			return map[string]any{}, nil
		}
		var decoded map[string]any
		if err := codec.JSONParse(string(body), &decoded); err != nil {
			return nil, errBadRequest("Invalid JSON body")
		}
		return decoded, nil

	case strings.Contains(contentType, "application/msgpack"):
		body, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, errBadRequest("Invalid msgpack body")
		}
		if len(body) == 0 {
			return map[string]any{}, nil
		}
		var decoded map[string]any
		if err := codec.Unpack(body, &decoded); err != nil {
			return nil, errBadRequest("Invalid msgpack body")
		}
		return decoded, nil

	default:
		return nil, errUnsupportedMediaType()
	}
}

func writeRouteError(w http.ResponseWriter, err *RouteError) {
	http.Error(w, err.Message, err.Status)
}

func writeParseError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *ContentError:
		http.Error(w, e.Message, e.Status)
	default:
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// writeHandlerError handles the two failure branches: validation failures
// become 422 with the issues array as body; anything else is logged once
// and answered with an empty 500.
func (d *Dispatcher) writeHandlerError(w http.ResponseWriter, r *http.Request, ctx *Context, err error) {
	if verr, ok := err.(*ValidationError); ok {
		ctx.ResponseHeader().Set("X-Tango-Validation-Error", "true")
		ctx.Cache().Set(0)
		ctx.Status().Set(http.StatusUnprocessableEntity)
		writeResult(w, r, ctx, verr.Issues)
		return
	}
	d.log.Error("tango: handler error", zap.String("route", r.URL.Path), zap.Error(err))
	w.WriteHeader(http.StatusInternalServerError)
}

// writeResult handles content negotiation, execution-time header,
// cache-control header, status, and serialized body.
func writeResult(w http.ResponseWriter, r *http.Request, ctx *Context, result any) {
	for k, values := range ctx.ResponseHeader() {
		for _, v := range values {
			w.Header().Add(k, v)
		}
	}

	useJSON := strings.Contains(r.Header.Get("Accept"), "application/json")

	var body []byte
	var err error
	if useJSON {
		w.Header().Set("Content-Type", string(codec.JSON))
		body, err = codec.For(codec.JSON).Encode(result)
	} else {
		w.Header().Set("Content-Type", string(codec.Msgpack))
		body, err = codec.For(codec.Msgpack).Encode(result)
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	elapsedMs := float64(ctx.ElapsedTime()) / float64(time.Millisecond)
	w.Header().Set("X-Tango-Execution-Time", strconv.FormatFloat(elapsedMs, 'f', -1, 64))

	if r.Method == http.MethodGet && ctx.Cache().Get() > 0 {
		w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", ctx.Cache().Get()))
	}

	w.WriteHeader(ctx.Status().Get())
	w.Write(body)
}
