// Package encode renders sanitized checkpoint summaries as text, JSON,
// or YAML.
//
// The text format is an indented, human-first rendering; tuples carry a
// !tuple tag so the structural distinction from sequences survives
// display. JSON and YAML preserve mapping insertion order.
//
//	buf := bytes.NewBuffer(nil)
//	err := encode.Encode(v, buf, encode.EncodeFormat(format.YAMLFormat))
package encode
