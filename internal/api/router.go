// Package api wires the HTTP surface: routes, the gate chain, rendering,
// and the central error handler.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/csemotors/dealership/internal/api/handler"
	"github.com/csemotors/dealership/internal/api/middleware"
	"github.com/csemotors/dealership/internal/api/render"
	"github.com/csemotors/dealership/internal/core/service"
	"github.com/csemotors/dealership/internal/infrastructure/config"
	mongorepo "github.com/csemotors/dealership/internal/infrastructure/db/mongo"
	redisstore "github.com/csemotors/dealership/internal/infrastructure/db/redis"
	"github.com/csemotors/dealership/internal/validation"
	"github.com/csemotors/dealership/web"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer

	secure := cfg.IsProduction()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("dealership"))
	e.Use(middleware.LoadIdentity(cfg.JWTSecret, secure, log))

	// --- Dependencies ---
	accountRepo := mongorepo.NewAccountRepository(db)
	inventoryRepo := mongorepo.NewInventoryRepository(db)
	reviewRepo := mongorepo.NewReviewRepository(db)
	flashStore := redisstore.NewFlashStore(rdb)

	accountService := service.NewAccountService(accountRepo, cfg.JWTSecret, cfg.TokenTTL)
	inventoryService := service.NewInventoryService(inventoryRepo, log)
	reviewService := service.NewReviewService(reviewRepo, accountRepo)

	formValidator := validation.NewFormValidator()
	views := handler.NewViewBuilder(inventoryService, flashStore, secure)

	baseHandler := handler.NewBaseHandler(views)
	accountHandler := handler.NewAccountHandler(accountService, views, formValidator, flashStore, secure, log)
	inventoryHandler := handler.NewInventoryHandler(inventoryService, reviewService, views, formValidator, flashStore, secure, log)
	reviewHandler := handler.NewReviewHandler(reviewService, formValidator, flashStore, secure, log)

	requireAccount := middleware.RequireAccount(flashStore, secure)
	requireEmployee := middleware.RequireEmployee(flashStore, secure)

	e.HTTPErrorHandler = NewHTTPErrorHandler(views, log)

	// --- Public pages ---
	e.StaticFS("/css", echo.MustSubFS(web.Static, "static/css"))
	e.GET("/", baseHandler.Home)
	e.GET("/inv/type/:classificationID", inventoryHandler.ByClassification)
	e.GET("/inv/detail/:vehicleID", inventoryHandler.Detail)
	e.GET("/error/trigger", baseHandler.TriggerError)

	// --- Account ---
	account := e.Group("/account")
	account.GET("/login", accountHandler.LoginView)
	account.POST("/login", accountHandler.Login)
	account.GET("/register", accountHandler.RegisterView)
	account.POST("/register", accountHandler.Register)
	account.GET("/logout", accountHandler.Logout)
	account.GET("/", accountHandler.Management, requireAccount)
	account.GET("/update/:accountID", accountHandler.UpdateView, requireAccount)
	account.POST("/update", accountHandler.Update, requireAccount)
	account.POST("/password", accountHandler.UpdatePassword, requireAccount)

	// --- Inventory back office (employee or admin only) ---
	inv := e.Group("/inv", requireEmployee)
	inv.GET("/", inventoryHandler.Management)
	inv.GET("/add-classification", inventoryHandler.AddClassificationView)
	inv.POST("/add-classification", inventoryHandler.AddClassification)
	inv.GET("/add-inventory", inventoryHandler.AddInventoryView)
	inv.POST("/add-inventory", inventoryHandler.AddInventory)
	inv.GET("/edit/:vehicleID", inventoryHandler.EditView)
	inv.POST("/update", inventoryHandler.Update)
	inv.GET("/delete/:vehicleID", inventoryHandler.DeleteView)
	inv.POST("/delete", inventoryHandler.Delete)
	inv.GET("/inventory/:classificationID", inventoryHandler.InventoryJSON)

	// --- Reviews ---
	e.POST("/reviews/add", reviewHandler.Add, requireAccount)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, nil
}
