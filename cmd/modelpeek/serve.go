package main

import (
	"context"
	"fmt"
	"net"

	"github.com/scott-cotton/cli"

	"github.com/modelpeek/go-modelpeek/serve"
)

func serveCmd(cfg *ServeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Serve.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: serve takes no arguments", cli.ErrUsage)
	}
	ctx := context.Background()
	if cfg.Addr == "" {
		return serve.RunStdio(ctx)
	}
	ln, err := net.Listen("tcp", cfg.Addr)
	if err != nil {
		return err
	}
	defer ln.Close()
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go func(conn net.Conn) {
			defer conn.Close()
			serve.Run(ctx, conn)
		}(conn)
	}
}
