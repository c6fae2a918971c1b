// Package pubsub implements the in-process, topic-based event bus that fans
// order and notification changes out to live channels.
//
// A Bus is created once by the composition root and shared by reference.
// Topics are plain strings built through the helpers in topics.go so that
// publishers and subscribers never disagree on a name.
//
// Delivery is synchronous: Publish runs every handler registered for the
// topic at call time, in registration order, on the caller's goroutine.
// A handler that fails or panics is logged and skipped; it never affects the
// publisher or the remaining handlers. There is no replay: a subscriber only
// sees events published after Subscribe returned.
package pubsub
