// Package playground serves a browser page that assembles whatever is typed
// into it. The page talks to the server over a websocket: every "assemble"
// message carries the full source and is answered with the listing, labels,
// data segment and diagnostics of that source.
package playground

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/renderer"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/util"
)

const DefaultAddress = ":2035"

type clientMessage struct {
	Type   string `json:"type"`
	Source string `json:"source"`
}

type serverMessage struct {
	Type   string      `json:"type"`
	Text   string      `json:"text,omitempty"`
	Result interface{} `json:"result,omitempty"`
}

type Server struct {
	config   assembler.AssemblerConfig
	upgrader websocket.Upgrader
}

func NewServer(config assembler.AssemblerConfig) *Server {
	return &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Handler routes the page and the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebsocket)
	mux.HandleFunc("/", handleGetPage)
	return mux
}

// ListenAndServe runs the playground on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		server.Shutdown(shutdownCtx)
	}()

	log.Printf("Connect to the assembler playground at http://localhost%s\n", addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("playground server failed: %w", err)
	}
	return nil
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println(err)
		return
	}
	defer conn.Close()

	// writes can come from more than one goroutine once results are streamed
	var wsMutex sync.Mutex
	send := func(message serverMessage) error {
		wsMutex.Lock()
		defer wsMutex.Unlock()
		return conn.WriteJSON(message)
	}

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Println("read:", err)
			}
			return
		}

		message := clientMessage{}
		if err := json.Unmarshal(messageBytes, &message); err != nil {
			util.LogF("playground: bad message: %v", err)
			if send(serverMessage{Type: "error", Text: "malformed message"}) != nil {
				return
			}
			continue
		}

		var reply serverMessage
		switch message.Type {
		case "assemble":
			reply = s.assemble(message.Source)
		default:
			log.Printf("Unknown message type: %s", message.Type)
			reply = serverMessage{Type: "error", Text: fmt.Sprintf("unknown message type %q", message.Type)}
		}

		if err := send(reply); err != nil {
			log.Println("write:", err)
			return
		}
	}
}

func (s *Server) assemble(source string) serverMessage {
	res := assembler.AssembleWithConfig(source, s.config)
	util.LogF("playground: assembled %d words, %d errors", len(res.ProgramText), len(res.LineErrors))
	return serverMessage{Type: "result", Result: renderer.Encode(res)}
}

func handleGetPage(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html")
	w.Write([]byte(htmlPage))
}
