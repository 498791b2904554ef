package server

import (
	"fmt"
	"sync"

	"github.com/tliron/commonlog"

	"hxls/internal/config"
	"hxls/internal/document"
	"hxls/internal/htmx"
)

const Name = "hxls"

// Version will be set during the build process using ldflags
var Version = "(dev) v0.0.0"

// Server owns the state shared by every client: the document store and the
// completion engine. Per-client state lives in a session.
type Server struct {
	config    config.Config
	docs      *document.Store
	engine    *htmx.Engine
	log       commonlog.Logger
	trace     bool
	done      chan struct{}
	closeOnce sync.Once
}

// Option configures a Server.
type Option func(*Server)

// WithTrace logs every JSON-RPC message at debug level.
func WithTrace(trace bool) Option {
	return func(s *Server) {
		s.trace = trace
	}
}

// NewServer validates cfg and builds the shared state. cfg is the base every
// client's initializationOptions are overlaid on.
func NewServer(cfg config.Config, opts ...Option) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	catalog, err := htmx.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	s := &Server{
		config: cfg,
		docs:   document.NewStore(),
		engine: htmx.NewEngine(catalog, cfg.ParserPoolSize),
		log:    commonlog.GetLogger("hxls.server"),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Close disconnects every client, stops the listeners and releases the
// parsers. It is safe to call more than once.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	return s.engine.Close()
}
