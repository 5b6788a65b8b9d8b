// Package client is a typed HTTP client for the word store API.
//
// Errors fall into four groups that callers tell apart with errors.Is and
// errors.As:
//
//   - ErrNotAuthenticated: no token is available, or the server rejected it.
//   - *TransportError: the request never produced an HTTP response.
//   - *APIError: the server answered with a non-2xx status.
//   - ErrValidation: the input was rejected before any request was sent.
package client
