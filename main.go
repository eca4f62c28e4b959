package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"

	"github.com/akarpov/fintrack/api"
	"github.com/akarpov/fintrack/db"
	_ "github.com/akarpov/fintrack/docs"
)

// @title Fintrack API
// @version 1.0
// @description Personal finance tracker: transactions and categories with filtering, sorting and pagination.
// @BasePath /
// @SecurityDefinitions.apikey ApiKeyAuth
// @In header
// @Name Authorization
func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		logrus.Info("no .env file, using environment")
	}

	// Подключение к PostgreSQL, миграции накатываются при старте
	connStr := os.Getenv("POSTGRES_URL")
	if connStr == "" {
		logrus.Fatal("POSTGRES_URL is required")
	}
	storage, err := db.NewStorage(connStr)
	if err != nil {
		logrus.WithError(err).Fatal("failed to init storage")
	}
	defer storage.Close()

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logrus.Fatal("JWT_SECRET is required")
	}

	handler := api.NewHandler(storage, jwtSecret)

	r := gin.Default()
	r.POST("/register", handler.Register)
	r.POST("/login", handler.Login)

	protected := r.Group("/", handler.AuthMiddleware())
	protected.GET("/transactions", handler.GetTransactions)
	protected.GET("/transactions/:id", handler.GetTransaction)
	protected.POST("/transactions", handler.CreateTransaction)
	protected.PUT("/transactions/:id", handler.UpdateTransaction)
	protected.PATCH("/transactions/:id", handler.UpdateTransaction)
	protected.DELETE("/transactions/:id", handler.DeleteTransaction)
	protected.GET("/categories", handler.GetCategories)
	protected.GET("/categories/:id", handler.GetCategory)
	protected.POST("/categories", handler.CreateCategory)
	protected.PUT("/categories/:id", handler.UpdateCategory)
	protected.PATCH("/categories/:id", handler.UpdateCategory)
	protected.DELETE("/categories/:id", handler.DeleteCategory)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := r.Run(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
