package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/oasis-api/internal/application/cart"
	appcheckout "github.com/jhoicas/oasis-api/internal/application/checkout"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
	"github.com/jhoicas/oasis-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC  *usecase.CatalogUseCase
	CartUC     *cart.UseCase
	CheckoutUC *appcheckout.UseCase
	ContactUC  *usecase.ContactUseCase
	ChatUC     *usecase.ChatUseCase
	PortalUC   *usecase.PortalUseCase
	JWTSecret  string
	JWTIssuer  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Catálogo y precios (público)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	catalog := api.Group("/catalog")
	catalog.Get("/automations", catalogHandler.ListAutomations)
	catalog.Get("/bundles", catalogHandler.ListBundles)
	catalog.Get("/:type/:id", catalogHandler.GetProduct)
	api.Get("/pricing/quote", catalogHandler.Quote)
	api.Post("/promo/validate", catalogHandler.ValidatePromo)

	// Carritos (público, por id)
	cartHandler := NewCartHandler(deps.CartUC)
	carts := api.Group("/carts")
	carts.Post("/", cartHandler.Create)
	carts.Get("/:id", cartHandler.Get)
	carts.Delete("/:id", cartHandler.Delete)
	carts.Post("/:id/items", cartHandler.AddItem)
	carts.Delete("/:id/items/:productId", cartHandler.RemoveItem)
	carts.Post("/:id/promo", cartHandler.ApplyPromo)

	// Checkout
	checkoutHandler := NewCheckoutHandler(deps.CheckoutUC)
	sessions := api.Group("/checkout/sessions")
	sessions.Post("/", checkoutHandler.Create)
	sessions.Get("/:id", checkoutHandler.Get)
	sessions.Put("/:id/selection", checkoutHandler.UpdateSelection)
	sessions.Post("/:id/promo", checkoutHandler.ApplyPromo)
	sessions.Post("/:id/details", checkoutHandler.SubmitDetails)
	sessions.Post("/:id/legal", checkoutHandler.SubmitLegal)
	sessions.Post("/:id/nda", checkoutHandler.SubmitNDA)
	sessions.Post("/:id/back", checkoutHandler.Back)
	sessions.Get("/:id/quote.pdf", checkoutHandler.QuotePDF)
	api.Post("/create-checkout-session", checkoutHandler.CreatePaymentSession)

	// Contacto y chat
	contactHandler := NewContactHandler(deps.ContactUC)
	api.Post("/contact", contactHandler.Submit)
	api.Post("/chat", NewChatHandler(deps.ChatUC).Reply)

	// Portal del cliente (requiere Bearer Token del proveedor de auth)
	auth := AuthMiddleware(deps.JWTSecret, deps.JWTIssuer)
	portalHandler := NewPortalHandler(deps.PortalUC)
	portal := api.Group("/portal", auth)
	portal.Get("/me", portalHandler.Me)
	portal.Get("/orders", portalHandler.MyOrders)
	portal.Get("/agreements", portalHandler.MyAgreements)

	// Administración
	admin := api.Group("/admin", auth, RequireRole(jwt.RoleAdmin))
	admin.Get("/orders", portalHandler.ListOrders)
	admin.Get("/contact-messages", contactHandler.List)
}
