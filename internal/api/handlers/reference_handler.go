package handlers

import (
	"errors"

	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/reference"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ReferenceHandler interface {
		List(c *fiber.Ctx) error
		Create(c *fiber.Ctx) error
		Update(c *fiber.Ctx) error
		Delete(c *fiber.Ctx) error
	}

	referenceHandler struct {
		referenceService reference.ReferenceService
		validator        *validator.Validate
	}
)

func NewReferenceHandler(referenceService reference.ReferenceService, validator *validator.Validate) ReferenceHandler {
	return &referenceHandler{
		referenceService: referenceService,
		validator:        validator,
	}
}

func referenceErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrReferenceNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrReferenceKindUnknown):
		return fiber.StatusNotFound
	default:
		return fiber.StatusBadRequest
	}
}

func (h *referenceHandler) List(c *fiber.Ctx) error {
	kind := c.Params("kind")

	items, err := h.referenceService.List(c.Context(), kind)
	if err != nil {
		return presenters.ErrorResponse(c, referenceErrorStatus(err), domain.MessageFailedGetReferences, err)
	}

	return presenters.SuccessResponse(c, items, fiber.StatusOK, domain.MessageSuccessGetReferences)
}

func (h *referenceHandler) Create(c *fiber.Ctx) error {
	kind := c.Params("kind")
	req := new(domain.CreateReferenceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateReference, err)
	}

	item, err := h.referenceService.Create(c.Context(), kind, *req)
	if err != nil {
		return presenters.ErrorResponse(c, referenceErrorStatus(err), domain.MessageFailedCreateReference, err)
	}

	return presenters.SuccessResponse(c, item, fiber.StatusCreated, domain.MessageSuccessCreateReference)
}

func (h *referenceHandler) Update(c *fiber.Ctx) error {
	kind := c.Params("kind")
	id := c.Params("id")
	req := new(domain.UpdateReferenceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateReference, err)
	}

	if err := h.referenceService.Update(c.Context(), kind, id, *req); err != nil {
		return presenters.ErrorResponse(c, referenceErrorStatus(err), domain.MessageFailedUpdateReference, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessUpdateReference)
}

func (h *referenceHandler) Delete(c *fiber.Ctx) error {
	kind := c.Params("kind")
	id := c.Params("id")

	if err := h.referenceService.Delete(c.Context(), kind, id); err != nil {
		return presenters.ErrorResponse(c, referenceErrorStatus(err), domain.MessageFailedDeleteReference, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteReference)
}
