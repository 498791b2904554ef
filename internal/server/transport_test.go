package server_test

import (
	"context"
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sourcegraph/jsonrpc2"
	wsjsonrpc2 "github.com/sourcegraph/jsonrpc2/websocket"
)

func TestServeListener(t *testing.T) {
	s := newServer(t)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen() error = %v", err)
	}
	served := make(chan error, 1)
	go func() {
		served <- s.ServeListener(listener)
	}()

	dial := func() *jsonrpc2.Conn {
		conn, err := net.Dial("tcp", listener.Addr().String())
		if err != nil {
			t.Fatalf("Dial() error = %v", err)
		}
		return clientConn(t, conn)
	}
	first, second := dial(), dial()
	ctx := withTimeout(t, 5*time.Second)

	uri := "file:///tcp.html"
	openDocument(t, first, uri, "<a hx-g>")
	if items := complete(t, second, uri, 0, 7); len(items) != 1 || items[0].Label != "hx-get" {
		t.Errorf("items = %v, want [hx-get]", items)
	}

	if err := first.Notify(ctx, "exit", nil); err != nil {
		t.Fatalf("exit error = %v", err)
	}
	select {
	case <-first.DisconnectNotify():
	case <-ctx.Done():
		t.Fatal("exit did not close the connection")
	}
	if items := complete(t, second, uri, 0, 7); len(items) != 1 {
		t.Errorf("items after other client exited = %v, want [hx-get]", items)
	}

	s.Close()
	select {
	case err := <-served:
		if err != nil {
			t.Errorf("ServeListener() error = %v", err)
		}
	case <-ctx.Done():
		t.Fatal("ServeListener did not return after Close")
	}
	select {
	case <-second.DisconnectNotify():
	case <-ctx.Done():
		t.Fatal("Close did not disconnect the client")
	}
}

func TestWebSocketHandler(t *testing.T) {
	s := newServer(t)
	httpServer := httptest.NewServer(s.WebSocketHandler())
	t.Cleanup(httpServer.Close)

	url := "ws" + strings.TrimPrefix(httpServer.URL, "http")
	ws, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() error = %v", err)
	}
	client := jsonrpc2.NewConn(context.Background(), wsjsonrpc2.NewObjectStream(ws), jsonrpc2.HandlerWithError(
		func(context.Context, *jsonrpc2.Conn, *jsonrpc2.Request) (any, error) {
			return nil, nil
		},
	))
	t.Cleanup(func() { client.Close() })

	uri := "file:///ws.html"
	openDocument(t, client, uri, "<form hx-po></form>")
	if items := complete(t, client, uri, 0, 11); len(items) != 1 || items[0].Label != "hx-post" {
		t.Errorf("items = %v, want [hx-post]", items)
	}
}
