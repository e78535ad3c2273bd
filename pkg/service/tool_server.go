package service

// ToolServer bundles the JSON-RPC dispatcher, a tool provider and an agent
// card to expose a fully functional tool server with minimal glue code.
// Requests are handled statelessly: initialize is answered but never gates
// subsequent calls.

import (
	"context"
	"encoding/json"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/tooldock/tooldock/pkg/a2a"
	"github.com/tooldock/tooldock/pkg/errors"
	"github.com/tooldock/tooldock/pkg/jsonrpc"
	"github.com/tooldock/tooldock/pkg/tools"
)

const protocolVersion = "2024-11-05"

type ToolServer struct {
	Card a2a.AgentCard

	app      *fiber.App
	rpc      *jsonrpc.RPCServer
	provider *tools.Set
}

// NewToolServer wires the dispatcher for the supplied tool set.  When the
// card carries no skills they are derived from the provider's tools.
func NewToolServer(card a2a.AgentCard, provider *tools.Set) *ToolServer {
	if provider == nil {
		provider = tools.NewBuiltinSet()
	}

	if len(card.Skills) == 0 {
		for _, tool := range provider.Tools() {
			desc := tool.Description
			card.Skills = append(card.Skills, a2a.AgentSkill{
				ID:          tool.Name,
				Name:        tool.Name,
				Description: &desc,
			})
		}
	}

	srv := &ToolServer{
		Card: card,
		app: fiber.New(fiber.Config{
			AppName:      "tooldock",
			ServerHeader: "Tooldock-Server",
		}),
		rpc:      jsonrpc.NewRPCServer(),
		provider: provider,
	}

	srv.registerRPCHandlers()
	srv.registerRoutes()

	return srv
}

// RPC exposes the dispatcher so callers can mount it on their own mux or
// drive it directly in tests.
func (srv *ToolServer) RPC() *jsonrpc.RPCServer {
	return srv.rpc
}

func (srv *ToolServer) Run(addr string) error {
	return srv.app.Listen(addr)
}

func (srv *ToolServer) Shutdown() error {
	return srv.app.Shutdown()
}

func (srv *ToolServer) registerRoutes() {
	srv.app.Get("/.well-known/agent.json", func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(srv.Card)
	})

	srv.app.Post("/rpc", func(ctx fiber.Ctx) error {
		resp, ok := srv.rpc.HandleRaw(ctx.RequestCtx(), ctx.Body())

		if !ok {
			// Notifications only, nothing to send back.
			return ctx.SendStatus(fiber.StatusNoContent)
		}

		return ctx.Status(fiber.StatusOK).JSON(resp)
	})
}

func (srv *ToolServer) registerRPCHandlers() {
	srv.rpc.Register("initialize", func(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
		return map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]any{
				"name":    srv.Card.Name,
				"version": srv.Card.Version,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}, nil
	})

	srv.rpc.Register("ping", func(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
		return map[string]any{}, nil
	})

	srv.rpc.Register("tools/list", func(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
		return map[string]any{
			"tools": srv.provider.Tools(),
		}, nil
	})

	srv.rpc.Register("tools/call", srv.handleToolCall)

	// Demo methods used by the agent glue: mutations answer with the loose
	// {"success": ...} business payload rather than protocol errors.
	srv.rpc.Register("tools/add", srv.handleToolAdd)
	srv.rpc.Register("tools/remove", srv.handleToolRemove)
	srv.rpc.Register("message/send", srv.handleMessageSend)
}

func (srv *ToolServer) handleToolCall(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params struct {
		Name      string         `json:"name"`
		Arguments map[string]any `json:"arguments"`
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.ErrInvalidParams
	}

	if params.Name == "" {
		return nil, errors.ErrInvalidParams.WithMessagef("missing tool name")
	}

	result, err := srv.provider.Call(ctx, params.Name, params.Arguments)

	if err != nil {
		if unknown, ok := err.(*tools.ErrUnknownTool); ok {
			return nil, errors.ErrInvalidParams.WithMessagef("unknown tool: %s", unknown.Name)
		}
		// Executor failures are wrapped, never propagated.
		return nil, errors.ErrInternal.WithMessagef("tool %s failed: %v", params.Name, err)
	}

	return result, nil
}

func (srv *ToolServer) handleToolAdd(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params struct {
		Name        string          `json:"name"`
		Description string          `json:"description"`
		InputSchema json.RawMessage `json:"inputSchema"`
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.ErrInvalidParams
	}

	if params.Name == "" {
		return map[string]any{"success": false, "error": "missing tool name"}, nil
	}

	def := tools.Definition{
		Name:        params.Name,
		Description: params.Description,
		Executor: func(ctx context.Context, args map[string]any) (string, error) {
			payload, _ := json.Marshal(args)
			return "stub tool " + params.Name + " called with " + string(payload), nil
		},
	}

	if len(params.InputSchema) > 0 {
		if err := json.Unmarshal(params.InputSchema, &def.Schema); err != nil {
			return map[string]any{"success": false, "error": "invalid inputSchema"}, nil
		}
	}

	srv.provider.Add(def)

	return map[string]any{"success": true, "name": params.Name}, nil
}

func (srv *ToolServer) handleToolRemove(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params struct {
		Name string `json:"name"`
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.ErrInvalidParams
	}

	if !srv.provider.Remove(params.Name) {
		return map[string]any{"success": false, "error": "tool not found: " + params.Name}, nil
	}

	return map[string]any{"success": true, "name": params.Name}, nil
}

func (srv *ToolServer) handleMessageSend(ctx context.Context, raw json.RawMessage) (any, *errors.RpcError) {
	var params struct {
		Message string `json:"message"`
		Role    string `json:"role"`
	}

	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, errors.ErrInvalidParams
	}

	if params.Role == "" {
		params.Role = "user"
	}

	return map[string]any{
		"id":     uuid.NewString(),
		"status": "received",
		"role":   params.Role,
		"echo":   params.Message,
	}, nil
}
