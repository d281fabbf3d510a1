package agentserver

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/dropDatabas3/falconbridge/internal/observability/logger"
	"github.com/dropDatabas3/falconbridge/internal/session"
	"github.com/google/uuid"
)

// JSON-RPC 2.0 framing for the agent protocol.

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

const (
	codeParseError     = -32700
	codeInvalidRequest = -32600
	codeMethodNotFound = -32601
	codeInvalidParams  = -32602
)

func rpcResult(id, result any) *rpcResponse {
	return &rpcResponse{JSONRPC: "2.0", ID: id, Result: result}
}

func rpcFail(id any, code int, message string) *rpcResponse {
	return &rpcResponse{JSONRPC: "2.0", ID: id, Error: &rpcError{Code: code, Message: message}}
}

// rpcHandler procesa un request JSON-RPC ya parseado.
type rpcHandler func(ctx context.Context, id any, params json.RawMessage) *rpcResponse

// SessionHeader transporta la sesión del agente entre requests.
const SessionHeader = "X-Session-Id"

// handleRPC es el endpoint único del protocolo. Despacha por método.
func (s *Server) handleRPC(w http.ResponseWriter, r *http.Request) {
	var req rpcRequest
	if !ReadJSON(w, r, &req) {
		return
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		WriteJSON(w, http.StatusOK, rpcFail(req.ID, codeInvalidRequest, "invalid JSON-RPC request"))
		return
	}

	ctx := r.Context()
	s.touchSession(ctx, r.Header.Get(SessionHeader))

	h, ok := s.handlers[req.Method]
	if !ok {
		observeRPC(req.Method, "method_not_found", 0)
		WriteJSON(w, http.StatusOK, rpcFail(req.ID, codeMethodNotFound, "method not found: "+req.Method))
		return
	}

	start := time.Now()
	resp := h(ctx, req.ID, req.Params)
	status := "ok"
	if resp.Error != nil {
		status = "error"
	}
	observeRPC(req.Method, status, time.Since(start).Seconds())

	if req.Method == "initialize" {
		if sid, ok := resp.Result.(initializeResult); ok {
			w.Header().Set(SessionHeader, sid.SessionID)
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

// touchSession refresca el TTL de una sesión activa. Sesiones
// desconocidas o header ausente no son un error: el protocolo admite
// llamadas sin sesión.
func (s *Server) touchSession(ctx context.Context, id string) {
	if id == "" || s.sessions == nil {
		return
	}
	sess, err := s.sessions.Get(ctx, id)
	if err != nil {
		return
	}
	sess.LastSeen = time.Now().UTC()
	if err := s.sessions.Set(ctx, sess, s.sessionTTL); err != nil {
		logger.From(ctx).Warn("session refresh failed", logger.SessionID(id), logger.Err(err))
	}
}

// ---- Métodos del protocolo ----

type initializeParams struct {
	ClientName    string `json:"client_name"`
	ClientVersion string `json:"client_version"`
}

type initializeResult struct {
	ServerName    string `json:"server_name"`
	ServerVersion string `json:"server_version"`
	SessionID     string `json:"session_id"`
	Capabilities  struct {
		Tools bool `json:"tools"`
	} `json:"capabilities"`
}

func (s *Server) rpcInitialize(ctx context.Context, id any, params json.RawMessage) *rpcResponse {
	var p initializeParams
	if len(params) > 0 {
		if err := json.Unmarshal(params, &p); err != nil {
			return rpcFail(id, codeInvalidParams, "invalid initialize params")
		}
	}

	now := time.Now().UTC()
	sess := &session.Session{
		ID:        uuid.NewString(),
		Agent:     p.ClientName,
		CreatedAt: now,
		LastSeen:  now,
	}
	if s.sessions != nil {
		if err := s.sessions.Set(ctx, sess, s.sessionTTL); err != nil {
			logger.From(ctx).Error("session create failed", logger.Err(err))
		}
	}
	logger.From(ctx).Info("agent session initialized",
		logger.SessionID(sess.ID), logger.Tool(p.ClientName))

	res := initializeResult{
		ServerName:    s.name,
		ServerVersion: s.version,
		SessionID:     sess.ID,
	}
	res.Capabilities.Tools = true
	return rpcResult(id, res)
}

func (s *Server) rpcPing(_ context.Context, id any, _ json.RawMessage) *rpcResponse {
	return rpcResult(id, map[string]string{"status": "ok"})
}

func (s *Server) rpcToolsList(_ context.Context, id any, _ json.RawMessage) *rpcResponse {
	return rpcResult(id, map[string]any{"tools": s.registry.List()})
}

type toolsCallParams struct {
	Name      string         `json:"name"`
	Arguments map[string]any `json:"arguments"`
}

func (s *Server) rpcToolsCall(ctx context.Context, id any, params json.RawMessage) *rpcResponse {
	var p toolsCallParams
	if err := json.Unmarshal(params, &p); err != nil || p.Name == "" {
		return rpcFail(id, codeInvalidParams, "tools/call requires a tool name")
	}

	start := time.Now()
	env := s.registry.Call(ctx, p.Name, p.Arguments)

	outcome := "ok"
	if env.Error != nil {
		outcome = env.Error.Code
	}
	observeToolCall(p.Name, outcome, time.Since(start).Seconds())

	if env.Error != nil && env.Error.Code == "unknown_tool" {
		return rpcFail(id, codeInvalidParams, env.Error.Message)
	}
	return rpcResult(id, env)
}
