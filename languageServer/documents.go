package languageServer

import (
	"context"
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.gatech.edu/ECEInnovation/RV32I-Assembler/assembler"
	"github.gatech.edu/ECEInnovation/RV32I-Assembler/util"
)

type document struct {
	TextDocumentItem
	lastAssembledResult *assembler.AssembledResult
}

// documentStore holds the open documents of one client connection.
type documentStore struct {
	mu     sync.Mutex
	docs   map[DocumentUri]*document
	config assembler.AssemblerConfig
}

func newDocumentStore(config assembler.AssemblerConfig) *documentStore {
	return &documentStore{docs: make(map[DocumentUri]*document), config: config}
}

// configure overrides the assembler settings named in opts.
func (s *documentStore) configure(opts *InitializationOptions) {
	if opts == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if opts.TextBase != nil {
		s.config.TextBase = *opts.TextBase
	}
	if opts.DataBase != nil {
		s.config.DataBase = *opts.DataBase
	}
	if opts.ResolveExpandedAddresses != nil {
		s.config.ResolveExpandedAddresses = *opts.ResolveExpandedAddresses
	}
}

// update stores text for uri, reassembles it and returns the diagnostics.
func (s *documentStore) update(item TextDocumentItem) []assembler.Diagnostic {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[item.URI]
	if !ok {
		doc = &document{}
		s.docs[item.URI] = doc
	}
	if item.LanguageID == "" {
		item.LanguageID = doc.LanguageID
	}
	doc.TextDocumentItem = item
	return s.assemble(doc)
}

// must hold s.mu
func (s *documentStore) assemble(doc *document) []assembler.Diagnostic {
	res := assembler.AssembleWithConfig(doc.Text, s.config)
	res.FileName = fileNameFromURI(doc.URI)
	if res.Diagnostics == nil {
		res.Diagnostics = make([]assembler.Diagnostic, 0)
	}
	doc.lastAssembledResult = res
	return res.Diagnostics
}

func (s *documentStore) diagnostics(uri DocumentUri) ([]assembler.Diagnostic, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok {
		return nil, false
	}
	return s.assemble(doc), true
}

func (s *documentStore) result(uri DocumentUri) (*assembler.AssembledResult, string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[uri]
	if !ok || doc.lastAssembledResult == nil {
		return nil, "", false
	}
	return doc.lastAssembledResult, doc.Text, true
}

func (s *documentStore) remove(uri DocumentUri) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func fileNameFromURI(uri DocumentUri) string {
	parsed, err := url.Parse(string(uri))
	if err != nil || parsed.Path == "" {
		return string(uri)
	}
	return path.Base(parsed.Path)
}

func replyInvalidParams(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Notif {
		util.LogF("RV32I Language Server: invalid parameters for %s", req.Method)
		return
	}
	rpcErr := jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: "invalid parameters"}
	rpcErr.SetError("invalid parameters")
	conn.ReplyWithError(context.Background(), req.ID, &rpcErr)
}

func (h *handler) documentOpenNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidOpenTextDocumentParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	diagnostics := h.docs.update(decodedParams.TextDocument)
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentCloseNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidCloseTextDocumentParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	h.docs.remove(decodedParams.TextDocument.URI)
}

func (h *handler) documentChangeNotification(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DidChangeTextDocumentParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil || len(decodedParams.ContentChanges) == 0 {
		replyInvalidParams(conn, req)
		return
	}

	// full sync, the last change holds the whole text
	changes := decodedParams.ContentChanges
	diagnostics := h.docs.update(TextDocumentItem{
		URI:     decodedParams.TextDocument.URI,
		Version: decodedParams.TextDocument.Version,
		Text:    changes[len(changes)-1].Text,
	})
	conn.Notify(context.Background(), "textDocument/publishDiagnostics", PublishDiagnosticsParams{
		URI:         decodedParams.TextDocument.URI,
		Version:     decodedParams.TextDocument.Version,
		Diagnostics: diagnostics,
	})
}

func (h *handler) documentDiagnostics(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentDiagnosticsParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	diagnostics, ok := h.docs.diagnostics(decodedParams.TextDocument.URI)
	if !ok {
		diagnostics = make([]assembler.Diagnostic, 0)
	}
	conn.Reply(context.Background(), req.ID, DocumentDiagnosticsReport{
		Kind:  "full",
		Items: diagnostics,
	})
}

// reformatDocument lines up every instruction in the column after the
// longest label and puts one space between tokens.
func reformatDocument(text string, res *assembler.AssembledResult) string {
	maxLabelLength := 0
	for label := range res.Labels {
		if len(label) > maxLabelLength {
			maxLabelLength = len(label)
		}
	}
	indent := strings.Repeat(" ", maxLabelLength+2)

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		code, comment := line, ""
		if idx := strings.Index(line, "#"); idx != -1 {
			code, comment = line[:idx], line[idx:]
		}
		code = strings.TrimRight(code, "\r")

		label := ""
		if idx := strings.Index(code, ":"); idx != -1 {
			label, code = strings.TrimSpace(code[:idx+1]), code[idx+1:]
		}
		code = normalizeSpacing(code)

		switch {
		case label != "" && code == "":
			lines[i] = label
		case label != "":
			lines[i] = label + strings.Repeat(" ", len(indent)-len(label)) + code
		case strings.HasPrefix(code, "."):
			lines[i] = code
		case code == "":
			lines[i] = ""
		default:
			lines[i] = indent + code
		}

		if comment != "" {
			if lines[i] != "" {
				lines[i] += " "
			}
			lines[i] += comment
		}
	}
	return strings.Join(lines, "\n")
}

// normalizeSpacing rewrites "add  x1 ,x2,x3" as "add x1, x2, x3".
func normalizeSpacing(code string) string {
	fields := strings.Fields(strings.ReplaceAll(code, ",", " , "))
	var sb strings.Builder
	for i, f := range fields {
		if f == "," {
			sb.WriteString(",")
			continue
		}
		if i > 0 {
			sb.WriteString(" ")
		}
		sb.WriteString(f)
	}
	return sb.String()
}

func (h *handler) formattingEdits(uri DocumentUri) []TextEdit {
	res, text, ok := h.docs.result(uri)
	if !ok {
		return []TextEdit{}
	}

	lines := strings.Split(text, "\n")
	return []TextEdit{
		{
			Range: assembler.TextRange{
				Start: assembler.TextPosition{Line: 0, Char: 0},
				End:   assembler.TextPosition{Line: len(lines) - 1, Char: len(lines[len(lines)-1])},
			},
			NewText: reformatDocument(text, res),
		},
	}
}

func (h *handler) documentWillSaveWaitUntil(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentWillSaveWaitUntilParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	conn.Reply(context.Background(), req.ID, h.formattingEdits(decodedParams.TextDocument.URI))
	util.LogF("RV32I Language Server: reformatted document")
}

func (h *handler) documentFormatting(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := DocumentFormattingParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	conn.Reply(context.Background(), req.ID, h.formattingEdits(decodedParams.TextDocument.URI))
}
