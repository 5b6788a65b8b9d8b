// Package task runs small units of background work on a bounded in-memory
// queue drained by a fixed pool of workers. Submitting never blocks: a full
// queue is reported to the caller instead.
package task
