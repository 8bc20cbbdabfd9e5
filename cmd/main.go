package main

import (
	"fmt"
	"log"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"staffhub/internal/apperrors"
	"staffhub/internal/caching"
	"staffhub/internal/config"
	"staffhub/internal/handlers"
	"staffhub/internal/jobs/background"
	"staffhub/internal/middleware"
	"staffhub/internal/repositories"
	"staffhub/internal/services"
	"staffhub/pkg/database"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	pool, err := database.NewPool(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	employeeRepo := repositories.NewEmployeeRepository(pool)
	employeeSvc := services.NewEmployeeService(employeeRepo, cacheSvc, cfg.BcryptCost, cfg.CacheTTL)

	employeeHandlers := handlers.NewEmployeeHandlers(employeeSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc, version)

	scheduler, err := background.NewJobScheduler(employeeSvc, cacheSvc, cfg.HeadcountRefresh)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start job scheduler: %v", err)
	}
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = apperrors.HTTPErrorHandler

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints (no auth required)
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)
	e.GET("/health/metrics", healthHandlers.GetMetrics)

	v1 := e.Group("/v1")
	if cfg.JWTSecret != "" {
		v1.Use(middleware.JWTMiddleware(cfg.JWTSecret))
	} else {
		log.Println("WARNING: JWT_SECRET not set, authentication disabled")
	}

	v1.POST("/employees", employeeHandlers.CreateEmployee)
	v1.GET("/employees", employeeHandlers.ListEmployees)
	v1.GET("/employees/:id", employeeHandlers.GetEmployee)
	v1.PUT("/employees/:id", employeeHandlers.UpdateEmployee)
	v1.DELETE("/employees/:id", employeeHandlers.DeleteEmployee)

	log.Printf("Staffhub server v%s starting on port %d", version, cfg.Port)
	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", cfg.Port)))
}
