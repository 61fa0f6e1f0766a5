// Package relay carries touch events over the network into a
// [tactile.TouchQueue].
//
// Every transport speaks the same wire format, the size-prefixed packets
// produced by [tactile.Touch.AppendPacket]. A single message or stream may
// carry several packets back to back.
//
//   - [Server] is an http.Handler that upgrades to a WebSocket and accepts
//     binary messages. [Client] is the sending side.
//   - [Sink.ServeStream] and [Sink.ServeListener] read raw packet streams, e.g.
//     from a TCP connection to a touch-table controller.
//   - [DataChannel] answers a WebRTC offer and reads packets from any data
//     channel the remote peer opens.
//
// All of them hand decoded touches to a [Sink], which pushes them onto the
// queue. Sinks are safe for concurrent use; the queue is drained by the
// goroutine that owns the [tactile.Manager].
package relay
