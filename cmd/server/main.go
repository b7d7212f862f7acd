package main

import (
	"context"

	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/linemk/tuuze-market/internal/app"
	"github.com/linemk/tuuze-market/internal/app/handlers"
	"github.com/linemk/tuuze-market/internal/config"
	"github.com/linemk/tuuze-market/internal/jwt-new/jwtmiddleware"
	"github.com/linemk/tuuze-market/internal/lib/logger"
	"github.com/linemk/tuuze-market/internal/lib/logger/handlers/urllog"
	"github.com/linemk/tuuze-market/internal/service"
	"github.com/linemk/tuuze-market/internal/storage"
	"github.com/pkg/errors"
)

func main() {
	// загрузка конфигурации
	cfg := config.MustLoad()

	// инициализация логгера, зависит от настройки окружения
	log := logger.SetupLogger(cfg.Env)
	log.Info("starting app", slog.String("env", cfg.Env))

	// загружаем объект приложения, конфигом и подключением к БД
	application, err := app.NewApp(log, cfg)
	if err != nil {
		log.Error("failed to initialize app", slog.Any("error", err))
		panic(errors.Wrap(err, "failed to initialize app"))
	}
	defer application.DB.Close()

	router := chi.NewRouter()
	// настройка middleware
	router.Use(middleware.RequestID)
	router.Use(urllog.CustomLoggerMiddleware(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)

	// реализация слоев по работе с БД по каждому направлению
	merchantRepo := storage.NewMerchantRepository(application.DB)
	productRepo := storage.NewProductRepository(application.DB)
	walletRepo := storage.NewWalletRepository(application.DB)

	accountService := service.NewAccountService(application.Logger, merchantRepo, time.Duration(application.Config.JWT.TokenTTL)*time.Minute)
	catalogService := service.NewCatalogService(application.Logger, productRepo)
	walletService := service.NewWalletService(application.Logger, walletRepo)

	// аккаунты продавцов
	router.Post("/signup", handlers.SignupHandler(application.Logger, accountService))
	router.Post("/auth/login", handlers.LoginHandler(application.Logger, accountService))

	// каталог и кошельки: merchant_id в мутирующих запросах приходит от клиента,
	// маршруты открытые — см. DESIGN.md
	router.Post("/AddProduct", handlers.AddProductHandler(application.Logger, catalogService))
	router.Get("/getProducts", handlers.GetProductsHandler(application.Logger, catalogService))
	router.Put("/updateProduct/{id}", handlers.UpdateProductHandler(application.Logger, catalogService))
	router.Delete("/deleteProduct/{id}", handlers.DeleteProductHandler(application.Logger, catalogService))
	router.Post("/saveWallet", handlers.SaveWalletHandler(application.Logger, walletService))
	router.Get("/getWallet/{id}", handlers.GetWalletHandler(application.Logger, walletService))

	router.Group(func(r chi.Router) {
		jwtMW := jwtmiddleware.NewJWTMiddleware()
		r.Use(jwtMW)
		// каталог аутентифицированного продавца для консоли
		r.Get("/merchant/products", handlers.MerchantProductsHandler(application.Logger, catalogService))
	})

	srv := &http.Server{
		Addr:         cfg.HTTPServer.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("starting server", slog.String("address", cfg.HTTPServer.Address))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", slog.Any("error", err))
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	stopSign := <-stop
	log.Info("received shutdown signal", slog.String("signal", stopSign.String()))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server shutdown failed", slog.Any("error", err))
	}
	log.Info("server gracefully stopped")
}
