package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"authblogCPT/cmd/app"
	"authblogCPT/internal/config"
	handlers "authblogCPT/internal/handler"
	"authblogCPT/internal/middleware"
)

func main() {
	// setting up config
	cfg := config.LoadConfig()

	if cfg.JWTSecretKey == "" {
		log.Fatal("JWT_SECRET_KEY не установлен в .env файле")
	}

	db, repo, services := app.App(cfg)
	defer db.CloseDB()

	handler := handlers.NewHandlers(db, repo, services, cfg)

	r := mux.NewRouter()

	// setting up routes
	r.HandleFunc("/health", handler.Health).Methods(http.MethodGet)

	r.HandleFunc("/signup", handler.Signup).Methods(http.MethodPost)
	r.HandleFunc("/signin", handler.Signin).Methods(http.MethodPost)
	r.HandleFunc("/me", handler.Me).Methods(http.MethodGet)

	r.HandleFunc("/posts", handler.GetPosts).Methods(http.MethodGet)
	r.HandleFunc("/posts", handler.CreatePost).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}", handler.GetPost).Methods(http.MethodGet)
	r.HandleFunc("/posts/{id:[0-9]+}", handler.UpdatePost).Methods(http.MethodPut)
	r.HandleFunc("/posts/{id:[0-9]+}", handler.DeletePost).Methods(http.MethodDelete)

	r.HandleFunc("/posts/{id:[0-9]+}/images", handler.AttachImage).Methods(http.MethodPost)
	r.HandleFunc("/posts/{id:[0-9]+}/images/{imageId}", handler.RemoveImage).Methods(http.MethodDelete)

	handlerChain := middleware.Chain(
		r,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware(cfg),
		middleware.AuthMiddleware(cfg),
	)

	// Starting the server
	addr := fmt.Sprintf(":%d", cfg.ServerPort)
	fmt.Printf("Сервер запущен на %s\n", addr)
	fmt.Printf("База данных: %s\n", cfg.DB.DbNAME)

	if err := http.ListenAndServe(addr, handlerChain); err != nil {
		log.Fatalf("Ошибка запуска сервера: %v", err)
	}
}
