package server

import (
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"hxls/internal/config"
)

func (ss *session) initialize(
	context *glsp.Context,
	params *protocol.InitializeParams,
) (any, error) {
	cfg, ignored, err := config.LoadClientOptions(ss.server.config, params.InitializationOptions)
	if err != nil {
		return nil, err
	}
	for _, name := range ignored {
		ss.log.Warningf("ignoring %s from initializationOptions, it only applies at startup", name)
	}
	ss.configure(cfg)
	ss.log.Infof("Config: %+v", cfg)

	if params.ClientInfo != nil {
		ss.log.Infof("Client: %s", params.ClientInfo.Name)
	}

	syncKind := protocol.TextDocumentSyncKindFull

	capabilities := ss.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: &protocol.True,
		Change:    &syncKind,
	}
	capabilities.CompletionProvider = &protocol.CompletionOptions{
		TriggerCharacters: cfg.TriggerCharacters,
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    Name,
			Version: &Version,
		},
	}, nil
}

func (ss *session) initialized(
	context *glsp.Context,
	params *protocol.InitializedParams,
) error {
	ss.log.Info("Client initialized.")
	return nil
}

func (ss *session) shutdown(context *glsp.Context) error {
	ss.log.Infof("Shutdown with %d open documents", ss.server.docs.Len())
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ss *session) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	ss.log.Infof("Trace set to: %s", params.Value)
	return nil
}
