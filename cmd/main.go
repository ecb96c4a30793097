package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"skladpro/internal/config"
	httpapi "skladpro/internal/http"
	"skladpro/internal/loader"
	"skladpro/internal/repository"
	"skladpro/internal/service"

	_ "skladpro/docs"
)

// @title SkladPro API
// @version 1.0
// @description In-memory warehouse management: sessions, catalog approval, requests, cart and orders.
// @BasePath /api/v1
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	// цены и суммы уходят клиенту числами, а не строками
	decimal.MarshalJSONWithoutQuotes = true

	store := repository.NewMemoryStore()
	requestsRepo := repository.NewMemoryRequests(store)
	ordersRepo := repository.NewMemoryOrders(store)
	cartRepo := repository.NewMemoryCart(store)
	contractorsRepo := repository.NewMemoryContractors(store)
	zonesRepo := repository.NewMemoryZones(store)
	tx := repository.NewMemoryTx(store)

	if err := service.Seed(context.Background(), store, zonesRepo); err != nil {
		log.Fatalf("seed: %v", err)
	}

	productsSvc := service.NewProductService(store, tx)
	ordersSvc := service.NewOrderService(cartRepo, ordersRepo, tx)
	sessions := service.NewSessionService(cartRepo, cfg.JWTSecret)

	collab := loader.New(cfg.CollabBaseURL, cfg.CollabTimeout, loader.Targets{
		Requests:    requestsRepo,
		Products:    store,
		Contractors: contractorsRepo,
		Orders:      ordersRepo,
		Zones:       zonesRepo,
	})
	sessions.OnStart(collab.LoadInBackground)

	srv := httpapi.NewServer(httpapi.Services{
		Sessions:  sessions,
		Products:  productsSvc,
		Requests:  service.NewRequestService(requestsRepo, tx),
		Cart:      service.NewCartService(cartRepo, store, tx),
		Orders:    ordersSvc,
		Directory: service.NewDirectoryService(contractorsRepo, zonesRepo),
		Dashboard: service.NewDashboardService(productsSvc, requestsRepo, ordersSvc, zonesRepo),
		Reports:   service.NewReportService(requestsRepo, store, zonesRepo),
	}, cfg.CORSOrigins)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Engine(),
	}

	go func() {
		log.Printf("HTTP server listening on %s (collaborator probe enabled: %t)", httpServer.Addr, collab.Enabled())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
