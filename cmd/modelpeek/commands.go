package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "o",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "O",
			Aliases:     []string{"ofmt"},
			Description: "output format: text/t, json/j, yaml/y",
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		}}...)

	return cli.NewCommandAt(&cfg.Main, "modelpeek").
		WithSynopsis("modelpeek [opts] command [opts]").
		WithDescription("modelpeek is a tool for inspecting model checkpoints without loading them.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return peekMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			QueryCommand(cfg),
			DiffCommand(cfg),
			ServeCommand(cfg),
			InputsCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("view").
		WithAliases("v").
		WithSynopsis("view [checkpoints]").
		WithDescription("view checkpoint structure summaries").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
	cfg.View = cmd
	return cmd
}

func QueryCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &QueryConfig{MainConfig: mainCfg}
	cmd := cli.NewCommand("query").
		WithAliases("q").
		WithSynopsis("query <expression> [checkpoints]").
		WithDescription("evaluate an expression against checkpoint summaries").
		WithRun(func(cc *cli.Context, args []string) error {
			return queryCmd(cfg, cc, args)
		})
	cfg.Query = cmd
	return cmd
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	cmd := cli.NewCommand("diff").
		WithAliases("d").
		WithOpts(opts...).
		WithSynopsis("diff a.ckpt b.ckpt").
		WithDescription("diff checkpoint structure summaries").
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
	cfg.Diff = cmd
	return cmd
}

func ServeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ServeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Serve, "serve").
		WithOpts(opts...).
		WithSynopsis("serve [-addr host:port]").
		WithDescription("answer peek/query/diff requests over json-rpc").
		WithRun(func(cc *cli.Context, args []string) error {
			return serveCmd(cfg, cc, args)
		})
}

func InputsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &InputsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Inputs, "inputs").
		WithOpts(opts...).
		WithSynopsis("inputs [-f index.yaml] [levtype]").
		WithDescription("list input sources, or the fields of a file index").
		WithRun(func(cc *cli.Context, args []string) error {
			return inputsCmd(cfg, cc, args)
		})
}
