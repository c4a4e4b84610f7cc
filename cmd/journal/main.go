package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/ariefcatur/go-pos-register.git/internal/config"
	"github.com/ariefcatur/go-pos-register.git/internal/journal"
	kafkax "github.com/ariefcatur/go-pos-register.git/internal/kafka"
	"github.com/ariefcatur/go-pos-register.git/internal/pos"
	"github.com/ariefcatur/go-pos-register.git/internal/postgres"
	"github.com/ariefcatur/go-pos-register.git/internal/redisx"
	"github.com/joho/godotenv"
)

func mustAtoi(s, def string) int {
	if s == "" {
		s = def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return 1
	}
	return i
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// DB (journal + stock)
	db, err := postgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer db.Close()

	// Redis (dedup)
	rdb := redisx.New(cfg.RedisAddr)
	defer rdb.Close()

	// Producer stock.low
	pLow := kafkax.NewProducer(cfg.KafkaBrokers, pos.TopicStockLow, 1024)
	pLow.Start(ctx)

	svc := &journal.Service{
		Repo:        &pos.JournalRepo{DB: db},
		Redis:       rdb,
		ProducerLow: pLow,
		ServiceName: cfg.ServiceName + "-journal",
	}

	group := getenv("JOURNAL_GROUP", "pos-journal")
	workers := mustAtoi(os.Getenv("JOURNAL_WORKERS"), "4")
	cons := kafkax.NewConsumer(cfg.KafkaBrokers, group, pos.TopicSaleCompleted, workers)

	go func() {
		log.Printf("journal consumer started: group=%s topic=%s workers=%d", group, pos.TopicSaleCompleted, workers)
		if err := cons.Start(ctx, svc.HandleSaleCompleted); err != nil {
			log.Printf("consumer exit: %v", err)
			cancel()
		}
	}()

	// graceful shutdown
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig
	log.Println("shutting down consumer...")
	cancel()
	time.Sleep(500 * time.Millisecond)
	pLow.Close()
	pLow.WaitClosed()
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
