package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sunthewhat/easy-cert-generator/api/handler"
	"github.com/sunthewhat/easy-cert-generator/api/middleware"
	"github.com/sunthewhat/easy-cert-generator/api/routes"
	"github.com/sunthewhat/easy-cert-generator/type/shared"
)

// NewApp builds the fiber app without starting it.
func NewApp(config *shared.Config, deps routes.Dependencies) *fiber.App {
	bodyLimit := 4 * 1024 * 1024
	if deps.MaxUploadBytes > 0 {
		// multipart overhead on top of the file itself
		bodyLimit = int(deps.MaxUploadBytes) + 1024*1024
	}

	cfg := fiber.Config{
		AppName:       "easy-cert-generator",
		ErrorHandler:  handler.HandleError,
		Prefork:       false,
		StrictRouting: true,
		Network:       fiber.NetworkTCP,
		BodyLimit:     bodyLimit,
	}
	app := fiber.New(cfg)

	if config == nil || !config.IsProduction() {
		app.Use(logger.New())
	}
	app.Use(recover.New())
	app.Use(cors.New(corsConfig(config)))

	routes.Init(app, deps)

	app.Use(handler.HandleNotFound)
	return app
}

func corsConfig(config *shared.Config) cors.Config {
	cfg := cors.Config{
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept," + middleware.SessionHeader,
		ExposeHeaders: "Content-Disposition,X-Generated-Count,X-Failed-Count",
	}
	if config == nil {
		return cfg
	}

	var origins []string
	for _, origin := range config.Cors {
		if origin != nil && *origin != "" {
			origins = append(origins, *origin)
		}
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = strings.Join(origins, ",")
	}
	return cfg
}
