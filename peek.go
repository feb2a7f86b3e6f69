// Package modelpeek safely inspects the structure of archived model
// checkpoints.
//
// A checkpoint container is a zip archive whose canonical data entry
// holds a pickle-encoded object graph referencing bulk storage buffers
// stored elsewhere in the archive. Peek materializes only the graph's
// shape: storage references become lightweight placeholder strings and
// the bulk data is never read.
package modelpeek

import (
	"github.com/modelpeek/go-modelpeek/debug"
	"github.com/modelpeek/go-modelpeek/pickle"
	"github.com/modelpeek/go-modelpeek/sanitize"
	"github.com/modelpeek/go-modelpeek/zipfile"
)

// DataEntry is the canonical name of the graph's data stream inside a
// checkpoint container.
const DataEntry = "archive/data.pkl"

// Peek opens the checkpoint at path and returns a display-safe summary
// of its object graph. Each call owns its container, memo table, and
// graph exclusively; concurrent calls on different paths are
// independent.
func Peek(path string) (*sanitize.Value, error) {
	c, err := zipfile.Open(path)
	if err != nil {
		return nil, err
	}
	defer c.Close()

	d, err := c.Entry(DataEntry)
	if err != nil {
		return nil, err
	}
	if debug.Peek() {
		debug.Logf("peek %s: %d byte graph stream\n", path, len(d))
	}
	y, err := pickle.Load(d)
	if err != nil {
		return nil, err
	}
	return sanitize.Sanitize(y), nil
}
