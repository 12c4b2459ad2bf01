package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/albumdesk/albumdesk/app/controllers"
	"github.com/albumdesk/albumdesk/app/models"
	"github.com/albumdesk/albumdesk/app/repository"
	"github.com/albumdesk/albumdesk/internal/pkg/cache"
	"github.com/albumdesk/albumdesk/internal/pkg/database"
	"github.com/albumdesk/albumdesk/internal/pkg/env"
	"github.com/albumdesk/albumdesk/internal/pkg/mediastore"
	"github.com/albumdesk/albumdesk/internal/pkg/retention"
	"github.com/albumdesk/albumdesk/internal/pkg/router"
)

func main() {
	app := NewApplication()
	err := app.Listen(fmt.Sprintf("%s:%s", env.GetEnv("APP_HOST", "localhost"), env.GetEnv("APP_PORT", "8080")))
	retention.StopScheduler()
	log.Fatal(err)
}

func NewApplication() *fiber.App {
	env.SetupEnvFile()
	database.SetupDatabase()
	cache.SetupCache()

	repository.InitializeFactory(database.GetDB())

	if err := models.LoadSettings(database.GetDB()); err != nil {
		log.Printf("Could not load settings, using defaults: %v", err)
	}

	if err := mediastore.Setup(); err != nil {
		log.Fatalf("Media store setup failed: %v", err)
	}

	// Find the project root so the OpenAPI file resolves from cmd/ too
	basePaths := []string{
		"./",
		"../../",
		"../../../",
	}
	basePath := ""
	for _, path := range basePaths {
		if _, err := os.Stat(path + "public"); !os.IsNotExist(err) {
			basePath = path
			break
		}
	}
	if basePath == "" {
		panic("Could not find project root directory")
	}

	// init fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:         104857600, // 100 MiB, raw wedding photos are large
		EnablePrintRoutes: env.IsDev(),
	})

	// recovery and logging
	app.Use(recover.New(), logger.New())

	// SWAGGER / OPENAPI
	openAPICfg := swagger.Config{
		BasePath: "/docs/api/",
		FilePath: basePath + "public/docs/v1/openapi.yml",
		Path:     "v1",
	}
	app.Use(swagger.New(openAPICfg))

	// ROUTER
	router.InstallRouter(app)

	// Daily retention cleanup runs in-process once routing (and with it the
	// controller wiring) is in place.
	retention.StartScheduler(controllers.NewRetentionScanner())

	return app
}
