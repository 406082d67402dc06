// Package debug holds environment controlled tracing switches.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Resolve bool
	Convert bool
	Session bool
}

var d *debug

func init() {
	d = &debug{}
	d.Resolve = boolEnv("PADDLE_DEBUG_RESOLVE")
	d.Convert = boolEnv("PADDLE_DEBUG_CONVERT")
	d.Session = boolEnv("PADDLE_DEBUG_SESSION")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Resolve() bool {
	return d.Resolve
}
func Convert() bool {
	return d.Convert
}
func Session() bool {
	return d.Session
}
