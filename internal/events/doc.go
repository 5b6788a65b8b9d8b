// Package events fans state changes out to in-process observers.
//
// A Broadcaster keeps only the latest value for each subscriber, so a slow
// observer sees fewer intermediate states but never blocks the publisher.
package events
