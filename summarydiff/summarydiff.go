// Package summarydiff compares the structure of two checkpoint
// summaries.
//
// A comparison yields a JSON merge patch describing how the second
// summary differs from the first, plus a line-oriented text diff of the
// rendered summaries for human reading.
package summarydiff

import (
	"strings"

	jsonpatch "github.com/evanphx/json-patch"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/modelpeek/go-modelpeek/encode"
	"github.com/modelpeek/go-modelpeek/sanitize"
)

type Result struct {
	// Equal reports whether the two summaries are structurally equal.
	Equal bool

	// MergePatch is a JSON merge patch turning the first summary into
	// the second. It is "{}" when Equal.
	MergePatch []byte

	// Text is a unified-style rendering of the textual diff; empty
	// when Equal.
	Text string
}

// Diff compares two summaries.
func Diff(from, to *sanitize.Value) (*Result, error) {
	if sanitize.Equal(from, to) {
		return &Result{Equal: true, MergePatch: []byte("{}")}, nil
	}
	fromJSON, err := from.MarshalJSON()
	if err != nil {
		return nil, err
	}
	toJSON, err := to.MarshalJSON()
	if err != nil {
		return nil, err
	}
	patch, err := jsonpatch.CreateMergePatch(fromJSON, toJSON)
	if err != nil {
		return nil, err
	}
	text, err := textDiff(from, to)
	if err != nil {
		return nil, err
	}
	return &Result{MergePatch: patch, Text: text}, nil
}

func textDiff(from, to *sanitize.Value) (string, error) {
	fromText := strings.Builder{}
	if err := encode.Encode(from, &fromText); err != nil {
		return "", err
	}
	toText := strings.Builder{}
	if err := encode.Encode(to, &toText); err != nil {
		return "", err
	}
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(fromText.String(), toText.String())
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)

	res := strings.Builder{}
	for i := range diffs {
		diff := &diffs[i]
		prefix := " "
		switch diff.Type {
		case diffpatch.DiffDelete:
			prefix = "-"
		case diffpatch.DiffInsert:
			prefix = "+"
		}
		for _, ln := range strings.Split(strings.TrimSuffix(diff.Text, "\n"), "\n") {
			res.WriteString(prefix + ln + "\n")
		}
	}
	return res.String(), nil
}
