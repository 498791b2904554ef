package server

import (
	"sync"
	"sync/atomic"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxls/internal/config"
	"hxls/internal/dispatch"
)

// session is the state of one client connection. Its lifecycle requests
// never affect other clients.
type session struct {
	server     *Server
	config     atomic.Pointer[config.Config]
	dispatcher atomic.Pointer[dispatch.Dispatcher]
	handler    *protocol.Handler
	log        commonlog.Logger
	exit       chan struct{}
	exitOnce   sync.Once
}

func (s *Server) newSession() *session {
	ss := &session{
		server: s,
		log:    s.log,
		exit:   make(chan struct{}),
	}
	ss.configure(s.config)

	ss.handler = &protocol.Handler{
		Initialize:  ss.initialize,
		Initialized: ss.initialized,
		Shutdown:    ss.shutdown,
		SetTrace:    ss.setTrace,
	}
	return ss
}

// configure swaps in a dispatcher built for cfg. Every session shares the
// server's document store and engine.
func (ss *session) configure(cfg config.Config) {
	ss.config.Store(&cfg)
	ss.dispatcher.Store(dispatch.New(
		ss.server.docs,
		ss.server.engine,
		dispatch.WithStrictSync(cfg.RejectMultipleChanges),
	))
}

func (ss *session) signalExit() {
	ss.exitOnce.Do(func() {
		close(ss.exit)
	})
}
