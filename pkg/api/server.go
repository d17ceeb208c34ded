package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/travigo/federation/pkg/api/routes"
	"github.com/travigo/federation/pkg/planner"
)

func NewApp(journeyPlanner *planner.Planner) *fiber.App {
	webApp := fiber.New()
	webApp.Use(NewLogger())

	group := webApp.Group("/core")

	group.Get("version", routes.APIVersion)

	routes.JourneysRouter(group.Group("/journeys"), journeyPlanner)

	return webApp
}

func SetupServer(listen string, journeyPlanner *planner.Planner) error {
	return NewApp(journeyPlanner).Listen(listen)
}
