// Command chrc-lsp runs the CHR language server over stdio, grounded on
// the teacher's cmd/kanso-lsp driver.
package main

import (
	"log"
	"os"

	"github.com/tliron/commonlog"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"chrc/internal/lsp"
)

const lsName = "chrc"

var (
	version = "0.0.1"
	handler protocol.Handler
)

func main() {
	commonlog.Configure(1, nil)

	chrHandler := lsp.NewHandler()

	handler = protocol.Handler{
		Initialize:            chrHandler.Initialize,
		Initialized:           chrHandler.Initialized,
		Shutdown:              chrHandler.Shutdown,
		SetTrace:              chrHandler.SetTrace,
		TextDocumentDidOpen:   chrHandler.TextDocumentDidOpen,
		TextDocumentDidClose:  chrHandler.TextDocumentDidClose,
		TextDocumentDidChange: chrHandler.TextDocumentDidChange,
		TextDocumentHover:     chrHandler.TextDocumentHover,
	}

	s := server.NewServer(&handler, lsName, false)

	log.Println("Starting chrc LSP server...")

	if err := s.RunStdio(); err != nil {
		log.Println("Error starting chrc LSP server:", err)
		os.Exit(1)
	}
}
