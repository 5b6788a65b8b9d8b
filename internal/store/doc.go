// Package store defines the persistence interfaces for users and words.
// Implementations live in internal/platform/postgres; the interfaces keep
// services and handlers independent of the database.
package store
