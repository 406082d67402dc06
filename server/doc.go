// Package server implements the host side of the paddle plugin session
// protocol.
//
// A Server accepts TCP connections and runs one Session per connection.
// Sessions read newline-delimited api.Request documents, dispatch them to a
// Host, and write api.Response documents back.
//
// # Related Packages
//
//   - github.com/paddle-build/paddle-plugin-go/api - Wire types
//   - github.com/paddle-build/paddle-plugin-go/client - Plugin side client
package server
