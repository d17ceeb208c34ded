package routes

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/travigo/federation/pkg/ctdf"
	"github.com/travigo/federation/pkg/planner"
	"github.com/travigo/federation/pkg/region"
)

func JourneysRouter(router fiber.Router, journeyPlanner *planner.Planner) {
	router.Get("/", getJourneys(journeyPlanner))
}

func getJourneys(journeyPlanner *planner.Planner) fiber.Handler {
	return func(c *fiber.Ctx) error {
		request := &ctdf.JourneyRequest{
			Clockwise: true,
		}

		if err := c.QueryParser(request); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		if err := request.Validate(); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		response, err := journeyPlanner.Plan(c.UserContext(), request)
		switch {
		case errors.Is(err, region.ErrUnknownRegion):
			c.SendStatus(fiber.StatusNotFound)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, planner.ErrUnsupportedModeCombination):
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		case err != nil:
			log.Error().Err(err).Msg("Failed to plan journeys")

			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Failed to plan journeys",
			})
		}

		rendered, err := ctdf.Render(response, request.Debug)
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": "Sheriff could not reduce the response",
			})
		}

		return c.JSON(rendered)
	}
}
