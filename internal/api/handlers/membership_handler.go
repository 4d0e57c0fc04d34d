package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/membership"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	MembershipHandler interface {
		CreatePayment(c *fiber.Ctx) error
		MidtransWebhookHandler(c *fiber.Ctx) error
	}

	membershipHandler struct {
		membershipService membership.MembershipService
		validator         *validator.Validate
	}
)

func NewMembershipHandler(membershipService membership.MembershipService, validator *validator.Validate) MembershipHandler {
	return &membershipHandler{
		membershipService: membershipService,
		validator:         validator,
	}
}

func (h *membershipHandler) CreatePayment(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateMembershipPaymentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
	}

	res, err := h.membershipService.CreatePayment(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreatePayment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreatePayment)
}

func (h *membershipHandler) MidtransWebhookHandler(c *fiber.Ctx) error {
	payload := new(domain.MidtransNotification)

	if err := c.BodyParser(payload); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.membershipService.HandleNotification(c.Context(), *payload); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedNotification, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessNotification)
}
