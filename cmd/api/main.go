package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gamestore/internal/config"
	"gamestore/internal/db"
	"gamestore/internal/httpserver"
	"gamestore/internal/logging"
	"gamestore/internal/payment"
	cartrepo "gamestore/internal/repository/cart"
	orderrepo "gamestore/internal/repository/order"
	productrepo "gamestore/internal/repository/product"
	sessionrepo "gamestore/internal/repository/session"
	cartsvc "gamestore/internal/service/cart"
	identitysvc "gamestore/internal/service/identity"
	ordersvc "gamestore/internal/service/order"
	"github.com/joho/godotenv"
)

func main() {
	logger := logging.New("api", os.Getenv("LOG_LEVEL"))

	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("load config")
	}
	logger = logging.New("api", cfg.LogLevel)

	ctx := context.Background()
	dbpool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to db")
	}
	defer dbpool.Close()

	redisClient, err := sessionrepo.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		logger.Fatal().Err(err).Msg("connect to redis")
	}
	defer redisClient.Close()

	productRepo := productrepo.NewPostgres(dbpool, logger)
	cartRepo := cartrepo.NewPostgres(dbpool, logger)
	orderRepo := orderrepo.NewPostgres(dbpool, logger)
	sessionStore := sessionrepo.NewRedis(redisClient, cfg.SessionTTL)

	gateway := payment.NewStripeGateway(
		cfg.StripeAPIKey,
		cfg.Currency,
		cfg.PublicBaseURL+"/checkout/confirm?session_id={CHECKOUT_SESSION_ID}",
		cfg.PublicBaseURL+"/cart",
		cfg.PaymentTimeout,
		logger,
	)

	identityService := identitysvc.New(sessionStore, logger)
	cartService := cartsvc.New(cartRepo, productRepo)
	orderService := ordersvc.New(orderRepo, cartRepo, gateway, logger)

	srv := httpserver.New(cfg.HTTPAddr, logger, dbpool, httpserver.Deps{
		IdentitySvc: identityService,
		CartSvc:     cartService,
		OrderSvc:    orderService,
		Products:    productRepo,
	}, cfg.CORSOrigins)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}
