// Package project is the plugin's view of a paddle project: its identity,
// its working directory, the instance configuration read from paddle.yaml,
// and the configuration specification held by the host.
//
// The specification is fetched from the host once and then served from a
// cache until ResetConfigSpec is called. Plugins extend the cached tree in
// place and call UpdateConfigSpec, which only contacts the host when the
// tree has changed since it was last fetched or pushed.
//
// Instance values are read with Config.Get using the same path keys as
// spec.Tree, except that element steps take real indices:
//
//	port, ok, err := p.Config().GetInt("servers[0].port")
//
// Values are not validated against the specification.
package project
