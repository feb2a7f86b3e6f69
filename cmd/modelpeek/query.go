package main

import (
	"encoding/json"
	"fmt"

	"github.com/scott-cotton/cli"

	modelpeek "github.com/modelpeek/go-modelpeek"
	"github.com/modelpeek/go-modelpeek/query"
)

func queryCmd(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: query requires an expression and a checkpoint path", cli.ErrUsage)
	}
	expression := args[0]
	for _, path := range args[1:] {
		v, err := modelpeek.Peek(path)
		if err != nil {
			return fmt.Errorf("error peeking %s: %w", path, err)
		}
		res, err := query.Run(v, expression)
		if err != nil {
			return fmt.Errorf("error querying %s with %q: %w", path, expression, err)
		}
		if err := printResult(cfg, cc, res); err != nil {
			return err
		}
	}
	return nil
}

func printResult(cfg *QueryConfig, cc *cli.Context, res any) error {
	switch res.(type) {
	case map[string]any, []any:
		d, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cc.Out, "%s\n", d)
		return err
	default:
		_, err := fmt.Fprintln(cc.Out, res)
		return err
	}
}
