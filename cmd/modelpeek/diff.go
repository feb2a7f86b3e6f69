package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	modelpeek "github.com/modelpeek/go-modelpeek"
	"github.com/modelpeek/go-modelpeek/summarydiff"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires exactly two checkpoint paths", cli.ErrUsage)
	}
	from, err := modelpeek.Peek(args[0])
	if err != nil {
		return fmt.Errorf("error peeking %s: %w", args[0], err)
	}
	to, err := modelpeek.Peek(args[1])
	if err != nil {
		return fmt.Errorf("error peeking %s: %w", args[1], err)
	}
	res, err := summarydiff.Diff(from, to)
	if err != nil {
		return err
	}
	if res.Equal {
		return nil
	}
	if cfg.Patch {
		_, err = fmt.Fprintf(cc.Out, "%s\n", res.MergePatch)
	} else {
		_, err = fmt.Fprint(cc.Out, res.Text)
	}
	if err != nil {
		return err
	}
	return cli.ExitCodeErr(1)
}
