package languageServer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/util"
)

const DefaultTCPAddress = ":2035"

type stdrwc struct{}

func (stdrwc) Read(p []byte) (int, error) {
	return os.Stdin.Read(p)
}

func (stdrwc) Write(p []byte) (int, error) {
	return os.Stdout.Write(p)
}

func (stdrwc) Close() error {
	if err := os.Stdin.Close(); err != nil {
		return err
	}
	return os.Stdout.Close()
}

// ListenAndServe serves one client over stdin and stdout until it
// disconnects or ctx is done.
func ListenAndServe(ctx context.Context, config assembler.AssemblerConfig) {
	<-Serve(ctx, stdrwc{}, config).DisconnectNotify()
}

// Serve starts a language server session on rwc.
func Serve(ctx context.Context, rwc io.ReadWriteCloser, config assembler.AssemblerConfig) *jsonrpc2.Conn {
	h := &handler{docs: newDocumentStore(config)}
	return jsonrpc2.NewConn(ctx, jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}), h)
}

// ListenAndServeTCP accepts clients on addr, each with its own documents, so
// the server can be debugged remotely.
func ListenAndServeTCP(ctx context.Context, addr string, config assembler.AssemblerConfig) error {
	lis, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("could not bind to address %s: %w", addr, err)
	}
	defer lis.Close()

	go func() {
		<-ctx.Done()
		lis.Close()
	}()

	log.Println("RV32I Language Server: listening for TCP connections on", lis.Addr())

	connectionCount := 0
	for {
		conn, err := lis.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("failed to accept incoming connection: %w", err)
		}
		connectionCount = connectionCount + 1
		connectionID := connectionCount
		log.Printf("RV32I Language Server: received incoming connection #%d\n", connectionID)

		jsonrpc2Connection := Serve(ctx, conn, config)
		go func() {
			<-jsonrpc2Connection.DisconnectNotify()
			log.Printf("RV32I Language Server: connection #%d closed\n", connectionID)
		}()
	}
}

type handler struct {
	docs *documentStore
}

func (h *handler) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	util.LogF("RV32I Language Server: received request: %s", req.Method)
	switch req.Method {
	case "initialize":
		h.handleInitialize(conn, req)
	case "initialized":
		registerRemainingCapabilities(conn)
	case "textDocument/didOpen":
		h.documentOpenNotification(conn, req)
	case "textDocument/didClose":
		h.documentCloseNotification(conn, req)
	case "textDocument/didChange":
		h.documentChangeNotification(conn, req)
	case "textDocument/diagnostic":
		h.documentDiagnostics(conn, req)
	case "textDocument/willSaveWaitUntil":
		h.documentWillSaveWaitUntil(conn, req)
	case "textDocument/formatting":
		h.documentFormatting(conn, req)
	case "textDocument/hover":
		h.hoverRequest(conn, req)

	// quitting
	case "shutdown":
		conn.Reply(context.Background(), req.ID, nil)
	case "exit":
		conn.Close()

	default:
		if !req.Notif {
			conn.ReplyWithError(context.Background(), req.ID, &jsonrpc2.Error{
				Code:    jsonrpc2.CodeMethodNotFound,
				Message: "method not supported: " + req.Method,
			})
		}
	}
}

func (h *handler) handleInitialize(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := InitializeParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	h.docs.configure(decodedParams.InitializationOptions)

	result := InitializeResult{}
	result.Capabilities.TextDocumentSync = 1
	result.Capabilities.HoverProvider = true
	result.Capabilities.DocumentFormattingProvider = true
	result.Capabilities.DiagnosticProvider = &DiagnosticOptions{}
	result.ServerInfo.Name = "RV32I Language Server"
	conn.Reply(context.Background(), req.ID, result)
}

func registerRemainingCapabilities(conn *jsonrpc2.Conn) {
	// textDocumentSync.willSaveWaitUntil has to be registered dynamically
	util.LogF("RV32I Language Server: registering remaining capabilities")
	params := RegistrationParams{
		Registrations: []Registration{
			{
				ID:     "textDocumentSync.willSaveWaitUntil",
				Method: "textDocument/willSaveWaitUntil",
				RegisterOptions: TextDocumentRegistrationOptions{
					DocumentSelector: []DocumentFilter{
						{
							Scheme:   "file",
							Language: "riscv",
						},
					},
				},
			},
		},
	}

	// the reply arrives on this connection's read loop, so don't block it
	go conn.Call(context.Background(), "client/registerCapability", params, nil)
}
