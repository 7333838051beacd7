package server

import "fmt"

// RouteError covers routing failures: method not allowed, route not
// found, rpcType/method mismatch. Status is always a valid HTTP status
// code (405 or 404).
type RouteError struct {
	Status  int
	Message string
}

func (e *RouteError) Error() string { return e.Message }

func errMethodNotAllowed(method string) *RouteError {
	return &RouteError{Status: 405, Message: fmt.Sprintf("Method not allowed: %s", method)}
}

func errRouteNotFound() *RouteError {
	return &RouteError{Status: 404, Message: "RPC method not found"}
}

func errRPCTypeMismatch(method string, rpcType RPCType) *RouteError {
	return &RouteError{
		Status:  405,
		Message: fmt.Sprintf("Method %s not allowed for rpcType %s", method, rpcType),
	}
}

// ContentError covers content errors: unsupported media type (415) and
// malformed bodies (400).
type ContentError struct {
	Status  int
	Message string
}

func (e *ContentError) Error() string { return e.Message }

func errUnsupportedMediaType() *ContentError {
	return &ContentError{Status: 415, Message: "Unsupported Media Type"}
}

func errBadRequest(message string) *ContentError {
	return &ContentError{Status: 400, Message: message}
}
