package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/oasis-api/internal/application/cart"
	appcheckout "github.com/jhoicas/oasis-api/internal/application/checkout"
	"github.com/jhoicas/oasis-api/internal/application/ports"
	"github.com/jhoicas/oasis-api/internal/application/usecase"
	"github.com/jhoicas/oasis-api/internal/domain/catalog"
	"github.com/jhoicas/oasis-api/internal/domain/pricing"
	infraai "github.com/jhoicas/oasis-api/internal/infrastructure/ai"
	"github.com/jhoicas/oasis-api/internal/infrastructure/payment"
	infrapdf "github.com/jhoicas/oasis-api/internal/infrastructure/pdf"
	"github.com/jhoicas/oasis-api/internal/infrastructure/postgres"
	"github.com/jhoicas/oasis-api/internal/infrastructure/ratelimit"
	httpRouter "github.com/jhoicas/oasis-api/internal/interfaces/http"
	"github.com/jhoicas/oasis-api/pkg/config"
	"github.com/jhoicas/oasis-api/pkg/logger"
)

// Cada cuánto se borran las sesiones de checkout vencidas.
const purgeInterval = 10 * time.Minute

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("payment_provider", cfg.Payment.Provider).
		Msg("iniciando aplicación")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	cartRepo := postgres.NewCartRepository(pool)
	sessionRepo := postgres.NewCheckoutSessionRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	contactRepo := postgres.NewContactRepository(pool)
	acceptanceRepo := postgres.NewLegalAcceptanceRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	cat := catalog.Default()
	calc := pricing.NewCalculator(cat)
	engine := pricing.NewDiscountEngine(pricing.DefaultPromoCodes())

	checkoutUC := appcheckout.NewUseCase(appcheckout.Config{
		SessionTTL:      cfg.Checkout.SessionTTL,
		DocumentVersion: cfg.Checkout.DocumentVersion,
	}, appcheckout.Deps{
		Sessions: sessionRepo,
		Carts:    cartRepo,
		Orders:   orderRepo,
		Tx:       txRunner,
		Gateway:  newPaymentGateway(cfg),
		PDF:      infrapdf.NewQuotePDFGenerator(),
		Calc:     calc,
		Engine:   engine,
		Log:      log,
	})

	chatModel := newChatModel(cfg.AI)
	if chatModel == nil {
		log.Warn().Str("provider", cfg.AI.Provider).Msg("chat sin API key: /api/chat responderá 503")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 40,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Oasis AI API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:  usecase.NewCatalogUseCase(calc, engine),
		CartUC:     cart.NewUseCase(cartRepo, calc, engine),
		CheckoutUC: checkoutUC,
		ContactUC:  usecase.NewContactUseCase(contactRepo, ratelimit.NewSubmitLimiter(cfg.Contact.MinInterval)),
		ChatUC:     usecase.NewChatUseCase(chatModel, cat),
		PortalUC:   usecase.NewPortalUseCase(orderRepo, acceptanceRepo),
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
	})

	go purgeExpired(ctx, checkoutUC, log.Component("janitor"))

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func newPaymentGateway(cfg *config.Config) ports.PaymentGateway {
	if cfg.Payment.Provider == config.PaymentProviderHTTP {
		return payment.NewHTTPGateway(cfg.Payment.SessionURL, cfg.Payment.Timeout)
	}
	return payment.NewStripeGateway(payment.StripeConfig{
		SecretKey:  cfg.Payment.StripeSecretKey,
		SuccessURL: cfg.Checkout.SuccessURL,
		CancelURL:  cfg.Checkout.CancelURL,
	})
}

// newChatModel devuelve nil (interfaz nula) si falta la API key del proveedor elegido.
func newChatModel(cfg config.AIConfig) ports.ChatModel {
	switch cfg.Provider {
	case config.AIProviderGemini:
		if cfg.GeminiAPIKey == "" {
			return nil
		}
		return infraai.NewGeminiService(cfg.GeminiAPIKey, cfg.GeminiModel)
	default:
		if cfg.AnthropicAPIKey == "" {
			return nil
		}
		return infraai.NewAnthropicService(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	}
}

// purgeExpired borra periódicamente las sesiones de checkout vencidas hasta que ctx se cancele.
func purgeExpired(ctx context.Context, uc *appcheckout.UseCase, log *logger.Logger) {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := uc.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("purga de sesiones vencidas")
				continue
			}
			if n > 0 {
				log.Info().Int64("deleted", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}
