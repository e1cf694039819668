// Package notify carries entity notifications to decoupled consumers.
//
// Observers registered on an entity are called synchronously. A Broadcaster
// is the asynchronous alternative: the entity publishes every Notification
// without blocking and subscribers read them from a channel. MemoryBroadcaster
// fans out inside one process; RedisBroadcaster relays notifications over a
// Redis pub/sub channel so that other processes can follow a form's state.
//
// Slow subscribers lose messages instead of slowing the publisher down.
package notify
