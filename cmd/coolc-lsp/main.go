// Command coolc-lsp is a Language Server Protocol server for COOL,
// wiring internal/checker.Analyze into textDocument/publishDiagnostics.
// Structured after cmd/lsp-server/main.go: a Server holding the open
// documents and a protocol.Handler built from it, run over stdio.
package main

import (
	"fmt"
	"os"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	glsp_server "github.com/tliron/glsp/server"
)

const lsName = "coolc"

var version string = "0.1.0"

func main() {
	commonlog.Configure(1, nil)

	server := glsp_server.NewServer(NewServer(), lsName, false)

	if err := server.RunStdio(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(1)
	}
}

// Server holds every open document and the glsp.Handler built from it.
type Server struct {
	handler   protocol.Handler
	documents map[protocol.DocumentUri]protocol.TextDocumentItem
}

func NewServer() *Server {
	s := Server{documents: map[protocol.DocumentUri]protocol.TextDocumentItem{}}
	s.handler = protocol.Handler{
		Initialize:  s.initialize,
		Initialized: s.initialized,
		Shutdown:    s.shutdown,
		SetTrace:    s.setTrace,

		TextDocumentDidOpen:   s.textDocumentDidOpen,
		TextDocumentDidChange: s.textDocumentDidChange,
		TextDocumentHover:     s.textDocumentHover,
	}
	return &s
}

func (s *Server) Handle(context *glsp.Context) (r any, validMethod bool, validParams bool, err error) {
	return s.handler.Handle(context)
}

func (s *Server) initialize(context *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := s.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = protocol.TextDocumentSyncKindFull
	capabilities.HoverProvider = true

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &version,
		},
	}, nil
}

func (*Server) initialized(context *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (*Server) shutdown(context *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (*Server) setTrace(context *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (s *Server) textDocumentDidOpen(context *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.documents[params.TextDocument.URI] = params.TextDocument
	if params.TextDocument.LanguageID == "cool" {
		s.validate(context, params.TextDocument.URI, params.TextDocument.Text)
	}
	return nil
}

func (s *Server) textDocumentDidChange(context *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	doc := s.documents[params.TextDocument.URI]

	for _, change := range params.ContentChanges {
		whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
		if !ok {
			return fmt.Errorf("incremental changes not supported")
		}
		doc = protocol.TextDocumentItem{
			URI:        params.TextDocument.URI,
			LanguageID: doc.LanguageID,
			Version:    params.TextDocument.Version,
			Text:       whole.Text,
		}
		s.documents[params.TextDocument.URI] = doc
	}

	if doc.LanguageID == "cool" {
		s.validate(context, params.TextDocument.URI, doc.Text)
	}
	return nil
}

func (s *Server) textDocumentHover(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, ok := s.documents[params.TextDocument.URI]
	if !ok {
		return nil, nil
	}
	return hoverAt(doc.Text, int(params.Position.Line)+1, int(params.Position.Character)+1), nil
}
