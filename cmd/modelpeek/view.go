package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"

	modelpeek "github.com/modelpeek/go-modelpeek"
	"github.com/modelpeek/go-modelpeek/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: view requires at least one checkpoint path", cli.ErrUsage)
	}
	for i, path := range args {
		if err := viewFile(cfg, cc.Out, path); err != nil {
			return err
		}
		if i < len(args)-1 {
			cc.Out.Write([]byte("---\n"))
		}
	}
	return nil
}

func viewFile(cfg *ViewConfig, w io.Writer, path string) error {
	v, err := modelpeek.Peek(path)
	if err != nil {
		return fmt.Errorf("error peeking %s: %w", path, err)
	}
	if err := encode.Encode(v, w, cfg.encOpts(w)...); err != nil {
		return fmt.Errorf("error encoding %s: %w", path, err)
	}
	return nil
}
