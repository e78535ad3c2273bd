package jsonrpc

// A very small, self‑contained JSON‑RPC 2.0 dispatcher.  It is not a
// full‑fledged framework – the goal is to keep the amount of required code
// minimal yet be sufficient for typical tool server ↔ agent interactions.

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/tooldock/tooldock/pkg/errors"
)

// HandlerFunc processes the raw params field and returns a result or a
// *errors.RpcError.  Returning (nil, nil) is treated as null‑result
// (i.e. {"result":null}).
type HandlerFunc func(ctx context.Context, params json.RawMessage) (any, *errors.RpcError)

// RPCServer multiplexes JSON‑RPC method names to handler functions.  A handler
// either succeeds with a result or fails with an RpcError – the server itself
// always produces a well‑formed response and never propagates a handler
// failure to its caller.
type RPCServer struct {
	mu       sync.RWMutex
	handlers map[string]HandlerFunc
}

func NewRPCServer() *RPCServer {
	return &RPCServer{
		handlers: make(map[string]HandlerFunc),
	}
}

func (s *RPCServer) Register(method string, h HandlerFunc) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[method] = h
}

func (s *RPCServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "only POST supported", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, nil, errors.ErrParseError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if resp, ok := s.HandleRaw(r.Context(), body); ok {
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	// Notification(s) only – no response body.
	w.WriteHeader(http.StatusNoContent)
}

// HandleRaw processes a raw JSON‑RPC payload (single request or batch) and
// returns the value to encode back to the caller.  The boolean is false when
// the payload consisted solely of notifications and no response is owed.
func (s *RPCServer) HandleRaw(ctx context.Context, body []byte) (any, bool) {
	// Support batch requests if the first byte is '['
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return newErrorResponse(nil, errors.ErrInvalidRequest), true
	}

	if body[0] == '[' {
		var batch []RPCRequest
		if err := json.Unmarshal(body, &batch); err != nil {
			return newErrorResponse(nil, errors.ErrParseError), true
		}

		// Responses are collected positionally: response i corresponds to
		// request i.  Notifications have no ID and contribute no entry.
		var responses []RPCResponse
		for _, req := range batch {
			resp := s.Handle(ctx, &req)
			if len(req.ID) != 0 {
				responses = append(responses, resp)
			}
		}

		if len(responses) == 0 {
			return nil, false
		}
		return responses, true
	}

	var req RPCRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return newErrorResponse(nil, errors.ErrParseError), true
	}

	resp := s.Handle(ctx, &req)

	// Notification – no ID → no response.
	if len(req.ID) == 0 {
		return nil, false
	}
	return resp, true
}

// Handle dispatches a single decoded request to its handler.
func (s *RPCServer) Handle(ctx context.Context, req *RPCRequest) RPCResponse {
	if req.JSONRPC != "2.0" {
		return newErrorResponse(req.ID, errors.ErrInvalidRequest)
	}

	s.mu.RLock()
	h, ok := s.handlers[req.Method]
	s.mu.RUnlock()

	if !ok {
		return newErrorResponse(req.ID, errors.ErrMethodNotFound)
	}

	result, rpcErr := h(ctx, req.Params)
	if rpcErr != nil {
		return newErrorResponse(req.ID, rpcErr)
	}

	return RPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result:  result,
	}
}

func newErrorResponse(id json.RawMessage, e *errors.RpcError) RPCResponse {
	// Ensure mandatory Code/Message.
	if e == nil {
		e = errors.ErrInternal
	}
	return RPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error:   e,
	}
}

func respondError(w http.ResponseWriter, id json.RawMessage, e *errors.RpcError) {
	if err := json.NewEncoder(w).Encode(newErrorResponse(id, e)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
