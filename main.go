package main

import (
	"context"
	"database/sql"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/lib/pq"

	"shopapi/config"
	"shopapi/handlers"
	"shopapi/service"
	"shopapi/storage"
)

func main() {
	cfg := config.LoadConfig()
	if len(cfg.JWTSecret) == 0 {
		log.Fatal("JWT_SECRET is not set in environment")
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	db, err := sql.Open("postgres", cfg.DBConnStr)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		log.Fatalf("ping db: %v", err)
	}
	logger.Info("connected to database")

	store := storage.NewPostgres(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.ApplySchema(ctx); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	orders := service.NewOrderService(store)
	mux := newRouter(db, store, orders, cfg)

	logger.Info("server listening", "port", cfg.ServerPort)
	log.Fatal(http.ListenAndServe(":"+cfg.ServerPort, handlers.RequestLogger(mux, logger)))
}

func newRouter(db *sql.DB, store *storage.Postgres, orders *service.OrderService, cfg *config.Config) *http.ServeMux {
	auth := handlers.Auth(cfg.JWTSecret)

	mux := http.NewServeMux()
	mux.HandleFunc("/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			http.Error(w, "db error", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("pong"))
	})

	token := handlers.TokenHandler(store, cfg.JWTSecret, cfg.TokenTTL)
	mux.HandleFunc("GET /api/token", token)
	mux.HandleFunc("POST /api/token", token)
	mux.HandleFunc("GET /api/shop", auth(handlers.ShopHandler(store)))
	mux.HandleFunc("GET /api/order/{cust_id}", auth(handlers.CustomerOrdersHandler(orders)))
	mux.HandleFunc("POST /api/order/create/{cust_id}", auth(handlers.CreateOrderHandler(orders)))
	mux.HandleFunc("PUT /api/order/update/{order_id}", auth(handlers.UpdateOrderHandler(orders)))
	mux.HandleFunc("POST /api/order/update/{order_id}", auth(handlers.UpdateOrderHandler(orders)))
	mux.HandleFunc("DELETE /api/order/delete/{order_id}", auth(handlers.DeleteOrderHandler(orders)))
	return mux
}
