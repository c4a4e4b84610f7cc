package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ariefcatur/go-pos-register.git/internal/config"
	"github.com/ariefcatur/go-pos-register.git/internal/httpx"
	kafkax "github.com/ariefcatur/go-pos-register.git/internal/kafka"
	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/ariefcatur/go-pos-register.git/internal/postgres"
	"github.com/ariefcatur/go-pos-register.git/internal/redisx"
	"github.com/ariefcatur/go-pos-register.git/internal/register"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB (catalog)
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer db.Close()

	// Redis (session token, suspended sales, transaction log)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Kafka producers
	pSale := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicSaleCompleted, 1024)
	pSale.Start(ctx)
	pDrawer := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicDrawerClosed, 1024)
	pDrawer.Start(ctx)

	// Register session service
	svc := &register.Service{
		Catalog:        &pos.CatalogRepo{DB: db},
		Log:            &register.RedisStore{RDB: rdb},
		ProducerSale:   pSale,
		ProducerDrawer: pDrawer,
		ServiceName:    cfg.ServiceName,
		RegisterID:     cfg.RegisterID,
		StoreLabel:     cfg.StoreLabel,
		CashierName:    cfg.CashierName,
		PaymentDelay:   cfg.PaymentDelay,
		ScanDelay:      cfg.ScanDelay,
	}

	// Router: login terbuka, sisanya di belakang bearer token
	router := httpx.NewRouter()
	ah := &httpx.AuthHandler{
		Redis:           rdb,
		JWTSecret:       cfg.JWTSecret,
		CashierEmail:    cfg.CashierEmail,
		CashierPassHash: cfg.CashierPassHash,
		CashierRole:     "cashier",
	}
	ah.Register(router)

	rh := &httpx.RegisterHandler{Svc: svc}
	router.Group(func(r chi.Router) {
		r.Use(ah.RequireAuth)
		rh.Register(r)
	})

	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	go func() {
		log.Printf("HTTP listening at %s (register=%s)", cfg.HTTPAddr, cfg.RegisterID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	// wait signal
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down...")

	ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	pSale.Close() // tutup inbox -> flush & close writer
	pDrawer.Close()
	cancel()
	pSale.WaitClosed() // drain
	pDrawer.WaitClosed()
}
