package handlers

import (
	"time"

	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/internal/utils"
	"recipehub/pkg/home"

	"github.com/gofiber/fiber/v2"
)

type (
	HomeHandler interface {
		GetHome(c *fiber.Ctx) error
	}

	homeHandler struct {
		homeService home.HomeService
		location    *time.Location
	}
)

func NewHomeHandler(homeService home.HomeService) HomeHandler {
	location, err := time.LoadLocation(utils.GetConfig("TIMEZONE"))
	if err != nil {
		location = time.Local
	}
	return &homeHandler{
		homeService: homeService,
		location:    location,
	}
}

func (h *homeHandler) GetHome(c *fiber.Ctx) error {
	userID, _ := c.Locals("user_id").(string)

	// Bucketing depends on the configured zone, not server local time
	now := time.Now().In(h.location)

	homeContext, err := h.homeService.BuildHomeContext(c.Context(), userID, now)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetHome, err)
	}

	return presenters.SuccessResponse(c, homeContext, fiber.StatusOK, domain.MessageSuccessGetHome)
}
