package server

import "net/http"

// Status wraps the response status code (always a valid HTTP code,
// default 200) and exposes a fixed, enumerated set of shortcut methods.
type Status struct {
	code int
}

// Set writes the response code directly.
func (s *Status) Set(code int) { s.code = code }

// Get reads the current response code.
func (s *Status) Get() int { return s.code }

func (s *Status) Continue()           { s.code = http.StatusContinue }
func (s *Status) SwitchingProtocols() { s.code = http.StatusSwitchingProtocols }
func (s *Status) Processing()         { s.code = http.StatusProcessing }
func (s *Status) OK()                 { s.code = http.StatusOK }
func (s *Status) Created()            { s.code = http.StatusCreated }
func (s *Status) Accepted()           { s.code = http.StatusAccepted }
func (s *Status) NoContent()          { s.code = http.StatusNoContent }
func (s *Status) ResetContent()       { s.code = http.StatusResetContent }
func (s *Status) PartialContent()     { s.code = http.StatusPartialContent }

func (s *Status) MultipleChoices()   { s.code = http.StatusMultipleChoices }
func (s *Status) MovedPermanently()  { s.code = http.StatusMovedPermanently }
func (s *Status) Found()             { s.code = http.StatusFound }
func (s *Status) SeeOther()          { s.code = http.StatusSeeOther }
func (s *Status) NotModified()       { s.code = http.StatusNotModified }
func (s *Status) TemporaryRedirect() { s.code = http.StatusTemporaryRedirect }
func (s *Status) PermanentRedirect() { s.code = http.StatusPermanentRedirect }

func (s *Status) BadRequest()           { s.code = http.StatusBadRequest }
func (s *Status) Unauthorized()         { s.code = http.StatusUnauthorized }
func (s *Status) PaymentRequired()      { s.code = http.StatusPaymentRequired }
func (s *Status) Forbidden()            { s.code = http.StatusForbidden }
func (s *Status) NotFound()             { s.code = http.StatusNotFound }
func (s *Status) MethodNotAllowed()     { s.code = http.StatusMethodNotAllowed }
func (s *Status) NotAcceptable()        { s.code = http.StatusNotAcceptable }
func (s *Status) Conflict()             { s.code = http.StatusConflict }
func (s *Status) Gone()                 { s.code = http.StatusGone }
func (s *Status) LengthRequired()       { s.code = http.StatusLengthRequired }
func (s *Status) PreconditionFailed()   { s.code = http.StatusPreconditionFailed }
func (s *Status) PayloadTooLarge()      { s.code = http.StatusRequestEntityTooLarge }
func (s *Status) URITooLong()           { s.code = http.StatusRequestURITooLong }
func (s *Status) BadContent()           { s.code = http.StatusUnsupportedMediaType }
func (s *Status) RangeNotSatisfiable()  { s.code = http.StatusRequestedRangeNotSatisfiable }
func (s *Status) ExpectationFailed()    { s.code = http.StatusExpectationFailed }
func (s *Status) TooManyRequests()      { s.code = http.StatusTooManyRequests }

func (s *Status) ServerError()               { s.code = http.StatusInternalServerError }
func (s *Status) NotImplemented()            { s.code = http.StatusNotImplemented }
func (s *Status) BadGateway()                { s.code = http.StatusBadGateway }
func (s *Status) ServiceUnavailable()        { s.code = http.StatusServiceUnavailable }
func (s *Status) GatewayTimeout()            { s.code = http.StatusGatewayTimeout }
func (s *Status) HTTPVersionNotSupported()   { s.code = http.StatusHTTPVersionNotSupported }

// Cache controls the GET response cache directive: always clamped to
// max(0, floor(n)).
type Cache struct {
	seconds int
}

// Set clamps n to a non-negative integer number of seconds.
func (c *Cache) Set(n int) {
	if n < 0 {
		n = 0
	}
	c.seconds = n
}

// Get returns the configured cache duration in seconds.
func (c *Cache) Get() int { return c.seconds }
