// Package service contains the application's use cases. It coordinates the
// domain types with the repositories defined in internal/store and owns
// transactional boundaries for operations that touch more than one row.
//
// Services return domain and store sentinel errors wrapped with context, so
// the API layer can map them with errors.Is.
package service
