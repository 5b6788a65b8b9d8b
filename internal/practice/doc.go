// Package practice runs the two practice modes of the word store client.
//
// Recall shows a word and asks for its translation. Quiz shows a word with
// four candidate translations. Both modes share one Engine that moves through
// Idle, Loading, Ready, Answered, CountingDown and Error, publishes a Snapshot
// on every change, and reports per-word statistics in the background through
// an AsyncReporter.
package practice
