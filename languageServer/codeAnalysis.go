package languageServer

import (
	"context"
	"encoding/json"

	"github.com/sourcegraph/jsonrpc2"
)

func (h *handler) hoverRequest(conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	decodedParams := TextDocumentPositionParams{}
	if req.Params == nil || json.Unmarshal(*req.Params, &decodedParams) != nil {
		replyInvalidParams(conn, req)
		return
	}

	res, _, ok := h.docs.result(decodedParams.TextDocument.URI)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	text, ok := res.EvaluateHover(decodedParams.Position)
	if !ok {
		conn.Reply(context.Background(), req.ID, nil)
		return
	}

	conn.Reply(context.Background(), req.ID, Hover{
		Contents: MarkupContent{
			Kind:  "markdown",
			Value: text,
		},
	})
}
