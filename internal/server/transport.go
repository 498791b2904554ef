package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	wsjsonrpc2 "github.com/sourcegraph/jsonrpc2/websocket"
	"github.com/tliron/commonlog"
)

// RunStdio serves a single client over stdin/stdout. The server is closed
// when that client goes away.
func (s *Server) RunStdio() error {
	defer s.Close()
	s.log.Notice("reading from stdin, writing to stdout")
	return s.ServeStream(stdio{})
}

// RunTCP accepts clients on address until the server is closed.
func (s *Server) RunTCP(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	s.log.Noticef("listening for TCP connections on %s", address)
	return s.ServeListener(listener)
}

// ServeListener accepts clients on listener until the server is closed.
// All clients share one document store. An exit from one client only ends
// that client's connection.
func (s *Server) ServeListener(listener net.Listener) error {
	defer listener.Close()

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.done:
			listener.Close()
		case <-stop:
		}
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			select {
			case <-s.done:
				return nil
			default:
				return err
			}
		}
		s.log.Infof("accepted connection from %s", conn.RemoteAddr())
		go func() {
			if err := s.ServeStream(conn); err != nil {
				s.log.Errorf("connection %s: %v", conn.RemoteAddr(), err)
			}
		}()
	}
}

// RunWebSocket serves clients connecting over WebSocket on address until
// the server is closed.
func (s *Server) RunWebSocket(address string) error {
	httpServer := &http.Server{Addr: address, Handler: s.WebSocketHandler()}

	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-s.done:
			httpServer.Close()
		case <-stop:
		}
	}()

	s.log.Noticef("listening for websocket connections on %s", address)
	if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// WebSocketHandler upgrades every request to a WebSocket and serves one
// client on it.
func (s *Server) WebSocketHandler() http.Handler {
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warningf("websocket upgrade failed: %v", err)
			return
		}
		defer conn.Close()
		s.log.Infof("accepted websocket from %s", conn.RemoteAddr())
		s.serve(wsjsonrpc2.NewObjectStream(conn))
	})
}

// ServeStream serves one client speaking LSP base protocol framing on rwc.
// It returns when the client disconnects, sends exit, or the server is
// closed.
func (s *Server) ServeStream(rwc io.ReadWriteCloser) error {
	return s.serve(jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}))
}

func (s *Server) serve(stream jsonrpc2.ObjectStream) error {
	var opts []jsonrpc2.ConnOpt
	if s.trace {
		opts = append(opts, jsonrpc2.LogMessages(&jsonrpcLogger{s.log}))
	}

	sess := s.newSession()
	conn := jsonrpc2.NewConn(context.Background(), stream, sess, opts...)
	select {
	case <-conn.DisconnectNotify():
	case <-sess.exit:
		conn.Close()
	case <-s.done:
		conn.Close()
	}
	return nil
}

// jsonrpcLogger routes jsonrpc2 message traces to commonlog.
type jsonrpcLogger struct {
	log commonlog.Logger
}

func (l *jsonrpcLogger) Printf(format string, v ...any) {
	l.log.Debugf(format, v...)
}

type stdio struct{}

func (stdio) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdio) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdio) Close() error {
	return errors.Join(os.Stdin.Close(), os.Stdout.Close())
}
