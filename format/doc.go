// Package format names the output formats a checkpoint summary can be
// rendered in.
//
// # Usage
//
//	f, err := format.ParseFormat("yaml")
//	ext := f.Suffix()
//
// # Related Packages
//
//   - github.com/modelpeek/go-modelpeek/encode - Encode summaries to text
package format
