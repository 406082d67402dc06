// Package api provides the wire types exchanged between a paddle host and
// its plugins.
//
// Configuration specification nodes travel as CompositeSpecNode trees whose
// children are SpecNode holders carrying exactly one node kind. Session
// messages (Request, Response) are newline-delimited JSON documents.
//
// # Related Packages
//
//   - github.com/paddle-build/paddle-plugin-go/convert - conversion to package spec
//   - github.com/paddle-build/paddle-plugin-go/server - host side session server
//   - github.com/paddle-build/paddle-plugin-go/client - plugin side client
package api
