// Package serve runs a JSON-RPC daemon answering checkpoint
// inspection requests.
//
// Methods:
//
//	peek  {"path": ...}                    -> sanitized summary
//	query {"path": ..., "expression": ...} -> expression result
//	diff  {"from": ..., "to": ...}         -> merge patch + text diff
package serve

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"go.lsp.dev/jsonrpc2"

	modelpeek "github.com/modelpeek/go-modelpeek"
	"github.com/modelpeek/go-modelpeek/debug"
	"github.com/modelpeek/go-modelpeek/query"
	"github.com/modelpeek/go-modelpeek/summarydiff"
)

type PeekParams struct {
	Path string `json:"path"`
}

type QueryParams struct {
	Path       string `json:"path"`
	Expression string `json:"expression"`
}

type DiffParams struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type DiffResult struct {
	Equal      bool            `json:"equal"`
	MergePatch json.RawMessage `json:"mergePatch"`
	Text       string          `json:"text"`
}

type Server struct {
	conn jsonrpc2.Conn
}

// Run serves requests on rwc until the peer disconnects or ctx is
// cancelled.
func Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	conn := jsonrpc2.NewConn(jsonrpc2.NewStream(rwc))
	srv := &Server{conn: conn}
	conn.Go(ctx, srv.Handle)
	select {
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	case <-conn.Done():
		return conn.Err()
	}
}

// RunStdio serves requests on stdin/stdout.
func RunStdio(ctx context.Context) error {
	return Run(ctx, &stdioReadWriteCloser{read: os.Stdin, write: os.Stdout})
}

func (s *Server) Handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	if debug.Serve() {
		debug.Logf("serve: %s %s\n", req.Method(), req.Params())
	}
	switch req.Method() {
	case "peek":
		return s.peek(ctx, reply, req)
	case "query":
		return s.query(ctx, reply, req)
	case "diff":
		return s.diff(ctx, reply, req)
	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func (s *Server) peek(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params PeekParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "peek: %v", err))
	}
	v, err := modelpeek.Peek(params.Path)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "peek %s: %v", params.Path, err))
	}
	return reply(ctx, v, nil)
}

func (s *Server) query(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params QueryParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "query: %v", err))
	}
	v, err := modelpeek.Peek(params.Path)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "query %s: %v", params.Path, err))
	}
	res, err := query.Run(v, params.Expression)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "query %s: %v", params.Path, err))
	}
	return reply(ctx, res, nil)
}

func (s *Server) diff(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	var params DiffParams
	if err := json.Unmarshal(req.Params(), &params); err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InvalidParams, "diff: %v", err))
	}
	from, err := modelpeek.Peek(params.From)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "diff %s: %v", params.From, err))
	}
	to, err := modelpeek.Peek(params.To)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "diff %s: %v", params.To, err))
	}
	res, err := summarydiff.Diff(from, to)
	if err != nil {
		return reply(ctx, nil, jsonrpc2.Errorf(jsonrpc2.InternalError, "diff: %v", err))
	}
	return reply(ctx, &DiffResult{
		Equal:      res.Equal,
		MergePatch: json.RawMessage(res.MergePatch),
		Text:       res.Text,
	}, nil)
}

type stdioReadWriteCloser struct {
	read  io.Reader
	write io.Writer
}

func (s *stdioReadWriteCloser) Read(p []byte) (n int, err error) {
	return s.read.Read(p)
}

func (s *stdioReadWriteCloser) Write(p []byte) (n int, err error) {
	return s.write.Write(p)
}

func (s *stdioReadWriteCloser) Close() error {
	return nil
}
