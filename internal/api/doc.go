// Package api handles incoming HTTP requests for the word store. It decodes
// and validates requests, calls the word service and the user store, and maps
// their errors to status codes without leaking internal details.
package api
