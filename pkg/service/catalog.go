package service

import (
	"github.com/gofiber/fiber/v3"
	"github.com/tooldock/tooldock/pkg/a2a"
	"github.com/tooldock/tooldock/pkg/catalog"
)

type CatalogServer struct {
	app           *fiber.App
	agentRegistry *catalog.Registry
}

func NewCatalogServer() *CatalogServer {
	srv := &CatalogServer{
		app: fiber.New(fiber.Config{
			AppName:      "Tooldock Catalog",
			ServerHeader: "Tooldock-Catalog-Server",
		}),
		agentRegistry: catalog.NewRegistry(),
	}

	srv.routes()
	return srv
}

// Registry exposes the in-memory catalog, mostly for tests.
func (srv *CatalogServer) Registry() *catalog.Registry {
	return srv.agentRegistry
}

func (srv *CatalogServer) routes() {
	srv.app.Get("/.well-known/catalog.json", func(ctx fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(srv.agentRegistry.GetAgents())
	})

	// Get a specific agent from the catalog
	srv.app.Get("/agent/:id", func(ctx fiber.Ctx) error {
		agent := srv.agentRegistry.GetAgent(ctx.Params("id"))

		if agent.ID == "" {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.Status(fiber.StatusOK).JSON(agent)
	})

	srv.app.Post("/agent", func(ctx fiber.Ctx) error {
		var agentCard a2a.AgentCard

		if err := ctx.Bind().Body(&agentCard); err != nil {
			return ctx.Status(fiber.StatusBadRequest).SendString("Invalid agent card: " + err.Error())
		}

		srv.agentRegistry.AddAgent(agentCard)
		return ctx.Status(fiber.StatusCreated).JSON(agentCard)
	})

	srv.app.Delete("/agent/:id", func(ctx fiber.Ctx) error {
		if !srv.agentRegistry.RemoveAgent(ctx.Params("id")) {
			return ctx.SendStatus(fiber.StatusNotFound)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	})
}

func (srv *CatalogServer) Run(addr string) error {
	return srv.app.Listen(addr)
}

func (srv *CatalogServer) Shutdown() error {
	return srv.app.Shutdown()
}
