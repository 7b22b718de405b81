package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/combustible-api/internal/application/auth"
	appclient "github.com/jhoicas/combustible-api/internal/application/client"
	"github.com/jhoicas/combustible-api/internal/application/dispatch"
	"github.com/jhoicas/combustible-api/internal/application/inventory"
	"github.com/jhoicas/combustible-api/internal/application/quota"
	"github.com/jhoicas/combustible-api/internal/application/stats"
	"github.com/jhoicas/combustible-api/internal/application/system"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.UseCase
	ClientUC   *appclient.UseCase
	DispatchUC *dispatch.UseCase
	InvUC      *inventory.UseCase
	SystemUC   *system.UseCase
	StatsUC    *stats.UseCase
	ResetUC    *quota.ResetUseCase
	TicketGen  dispatch.TicketPDFGenerator
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/login-cliente", authHandler.ClientLogin)

	// Estado público: bloqueo del servicio y stock por combustible, para que
	// el panel del cliente decida sin autenticarse.
	systemHandler := NewSystemHandler(deps.SystemUC, deps.ResetUC)
	inventoryHandler := NewInventoryHandler(deps.InvUC)
	api.Get("/sistema/estado", systemHandler.State)
	api.Get("/inventario", inventoryHandler.State)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Agendamientos: creación y consulta accesibles a clientes autenticados;
	// entrega y retiros directos son de operadores.
	dispatchHandler := NewDispatchHandler(deps.DispatchUC, deps.TicketGen)
	agendamientos := protected.Group("/agendamientos")
	agendamientos.Post("/", dispatchHandler.Reserve)
	agendamientos.Get("/", dispatchHandler.ListByDate)
	agendamientos.Get("/cliente/:id", dispatchHandler.ListByClient)
	agendamientos.Get("/:id/ticket", dispatchHandler.TicketPDF)
	agendamientos.Put("/:id/entregar", AdminOnly(), dispatchHandler.Deliver)

	// Retiros directos (operadores)
	retiros := protected.Group("/retiros", AdminOnly())
	retiros.Post("/", dispatchHandler.Withdraw)
	retiros.Get("/", dispatchHandler.ListWithdrawals)

	// Clientes y subclientes (operadores)
	clientes := protected.Group("/clientes", AdminOnly())
	clientHandler := NewClientHandler(deps.ClientUC)
	clientes.Get("/", clientHandler.List)
	clientes.Post("/", clientHandler.Create)
	clientes.Get("/telefono/:telefono", clientHandler.GetByTelefono)
	clientes.Get("/:id", clientHandler.Get)
	clientes.Put("/:id", clientHandler.Update)
	clientes.Delete("/:id", clientHandler.Deactivate)
	clientes.Get("/:id/subclientes", clientHandler.ListSubclients)
	clientes.Post("/:id/subclientes", clientHandler.CreateSubclient)

	// Inventario (mutaciones e historial, operadores)
	inventario := protected.Group("/inventario", AdminOnly())
	inventario.Get("/historial", inventoryHandler.History)
	inventario.Post("/", inventoryHandler.Replenish)
	inventario.Post("/reset", inventoryHandler.Reset)

	// Sistema (operadores)
	sistema := protected.Group("/sistema", AdminOnly())
	sistema.Post("/bloqueo", systemHandler.SetBlocked)
	sistema.Get("/limites", systemHandler.Limits)
	sistema.Post("/reset-litros", systemHandler.ForceReset)

	// Estadísticas (operadores)
	estadisticas := protected.Group("/estadisticas", AdminOnly())
	statsHandler := NewStatsHandler(deps.StatsUC)
	estadisticas.Get("/", statsHandler.General)
	estadisticas.Get("/despachos", statsHandler.Dispatch)
}
