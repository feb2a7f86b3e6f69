// Package debug provides env-var gated debug logging.
//
// Set MODELPEEK_DEBUG_PEEK, MODELPEEK_DEBUG_PICKLE,
// MODELPEEK_DEBUG_INPUTS, or MODELPEEK_DEBUG_SERVE to a truthy value to
// enable the corresponding traces on stderr.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Peek   bool
	Pickle bool
	Inputs bool
	Serve  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Peek = boolEnv("MODELPEEK_DEBUG_PEEK")
	d.Pickle = boolEnv("MODELPEEK_DEBUG_PICKLE")
	d.Inputs = boolEnv("MODELPEEK_DEBUG_INPUTS")
	d.Serve = boolEnv("MODELPEEK_DEBUG_SERVE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Peek() bool {
	return d.Peek
}
func Pickle() bool {
	return d.Pickle
}
func Inputs() bool {
	return d.Inputs
}
func Serve() bool {
	return d.Serve
}
