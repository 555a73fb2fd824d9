package main

import (
	"context"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/rl1809/vase-shop/internal/adapter/handler"
	"github.com/rl1809/vase-shop/internal/adapter/storage"
	"github.com/rl1809/vase-shop/internal/config"
	"github.com/rl1809/vase-shop/internal/core/service"
	"github.com/rl1809/vase-shop/internal/port"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize record store
	store, closeStore, err := storage.New(ctx, cfg.StoreBackend, cfg.DataDir, cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("failed to create store (backend=%s): %v", cfg.StoreBackend, err)
	}
	log.Printf("record store ready (backend=%s, data=%s)", cfg.StoreBackend, cfg.DataDir)

	// Initialize record locker
	var locker port.RecordLocker = storage.NewMemoryLocker()
	var rdb *redis.Client
	if cfg.LockBackend == "redis" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		locker = storage.NewRedisLocker(rdb, cfg.LockTTL, cfg.LockWait)
		log.Println("connected to redis")
	}
	log.Printf("record locks: %s", cfg.LockBackend)

	shop := service.NewShopService(store, locker, service.UUIDGenerator{})

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.LoggingInterceptor))
	handler.RegisterShopServer(grpcServer, handler.NewGRPCHandler(shop))

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	httpHandler := handler.NewHTTPHandler(shop, cfg.RequestTimeout)
	httpServer := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: httpHandler.Routes(),
	}

	go func() {
		log.Printf("HTTP server listening on %s (REST under /api, GraphQL at /graphql)", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	// Stop HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	// Stop gRPC server
	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	// Close connections
	if rdb != nil {
		rdb.Close()
	}
	if err := closeStore(); err != nil {
		log.Printf("close store: %v", err)
	}
	log.Println("connections closed")
}
