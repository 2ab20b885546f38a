package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"mowhoob/internal/handlers"
	"mowhoob/internal/repositories"
	"mowhoob/internal/seed"
	"mowhoob/internal/services"
	"mowhoob/internal/storage"
	"mowhoob/pkg/rabbitmq"
)

func main() {
	// --- Configuration ---
	viper.SetDefault("APP_PORT", ":8080")
	viper.SetDefault("STORE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "mowhoob.db")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
	viper.SetDefault("SLOT_KEY", storage.DefaultSlotKey)
	viper.SetDefault("RABBITMQ_URL", "")
	viper.AutomaticEnv()

	appPort := viper.GetString("APP_PORT")

	// --- Initialize the persistence slot ---
	store, err := newSlotStore()
	if err != nil {
		log.Fatalf("Failed to initialize slot store: %v", err)
	}

	// --- Initialize RabbitMQ Client (optional) ---
	// Catalog events are an enhancement; the service runs without a broker.
	var publisher services.EventPublisher
	if mqURL := viper.GetString("RABBITMQ_URL"); mqURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: mqURL})
		if err != nil {
			log.Printf("RabbitMQ unavailable, creator events disabled: %v", err)
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Initialize Repository ---
	// Bootstraps from the slot, or from the bundled seed set when the slot
	// is empty or unreadable.
	creatorRepo, err := repositories.NewSlotCreatorRepository(store, seed.Creators())
	if err != nil {
		log.Fatalf("Failed to initialize creator repository: %v", err)
	}
	if creatorRepo.Seeded() {
		log.Println("Creator slot was empty, bootstrapped from bundled seed set")
	}

	// --- Initialize Services and Handlers ---
	creatorService := services.NewCreatorService(creatorRepo, publisher)
	creatorHandler := handlers.NewCreatorHandler(creatorService)

	// --- Initialize Fiber App ---
	app := fiber.New()
	app.Use(logger.New())

	apiV1 := app.Group("/api/v1")
	creatorHandler.RegisterRoutes(apiV1)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "healthy",
			"store":  viper.GetString("STORE_DRIVER"),
		})
	})

	// --- Start HTTP Server ---
	log.Printf("Starting server on port %s", appPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := app.Listen(appPort); err != nil {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Printf("Error during Fiber shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}

// newSlotStore builds the persistence slot backend named by STORE_DRIVER.
func newSlotStore() (storage.SlotStore, error) {
	driver := viper.GetString("STORE_DRIVER")
	slotKey := viper.GetString("SLOT_KEY")

	switch driver {
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return storage.NewGORMSlotStore(db, slotKey)
	case "postgres":
		db, err := gorm.Open(postgres.Open(viper.GetString("DATABASE_DSN")), &gorm.Config{})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return storage.NewGORMSlotStore(db, slotKey)
	case "redis":
		return storage.NewRedisSlotStore(viper.GetString("REDIS_URL"), slotKey)
	case "memory":
		return storage.NewMemorySlotStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}
