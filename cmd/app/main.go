package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/theabolton/todo-graphql-api/internal/config"
	"github.com/theabolton/todo-graphql-api/internal/gql"
	"github.com/theabolton/todo-graphql-api/internal/handler"
	"github.com/theabolton/todo-graphql-api/internal/model"
	"github.com/theabolton/todo-graphql-api/internal/repo"
	"github.com/theabolton/todo-graphql-api/internal/service"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД через ORM
	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to Database.") // Fatal потому что дальнейшая работа теряет смысл
	}

	// Схема таблицы ведется самим ORM
	if err := db.AutoMigrate(&model.Todo{}); err != nil {
		log.Fatal("Failed to migrate the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	todoRepo := repo.NewTodoRepo(db)
	todoService := service.NewTodoService(todoRepo)
	schema := gql.NewSchema(todoService)
	gqlHandler := handler.NewGraphQLHandler(schema, logger)

	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	// Один endpoint: POST исполняет запросы, GET отдает GraphiQL
	r.Post("/graphql", gqlHandler.Query)
	r.Get("/graphql", gqlHandler.Explorer)

	srv := http.Server{ // Создаем сервер
		Addr: ":" + cfg.Port,
		Handler: r,
		ReadTimeout: 10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func ()  { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10 * time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	logger.Info("Server stopped succsessfully!")
}
