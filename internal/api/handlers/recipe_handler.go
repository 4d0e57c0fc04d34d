package handlers

import (
	"encoding/json"
	"errors"
	"fmt"

	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/recipe"

	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		GetCreateContext(c *fiber.Ctx) error
		GetUpdateContext(c *fiber.Ctx) error
		SaveRecipe(c *fiber.Ctx) error
		UnsaveRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
	}
)

// NewRecipeHandler takes no validator: the recipe form goes through the
// field-collecting validation layer in pkg/recipe instead of struct tags.
func NewRecipeHandler(recipeService recipe.RecipeService) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
	}
}

// parseRecipeForm reads the multipart submission: scalar fields straight from
// the form, the two child-op sets as JSON-encoded fields, the recipe image
// under "image" and direction images under "direction_image_<index>".
func parseRecipeForm(c *fiber.Ctx) (domain.RecipeFormRequest, error) {
	var req domain.RecipeFormRequest
	if err := c.BodyParser(&req); err != nil {
		return req, err
	}

	if raw := c.FormValue("ingredients"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Ingredients); err != nil {
			return req, err
		}
	}
	if raw := c.FormValue("directions"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &req.Directions); err != nil {
			return req, err
		}
	}

	if file, err := c.FormFile("image"); err == nil {
		req.Image = file
	}
	for i := range req.Directions {
		if file, err := c.FormFile(fmt.Sprintf("direction_image_%d", i)); err == nil {
			req.Directions[i].Image = file
		}
	}
	return req, nil
}

func recipeErrorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrRecipeNotFound),
		errors.Is(err, domain.ErrIngredientNotFound),
		errors.Is(err, domain.ErrDirectionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrUnauthorizedRecipeAccess):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

func saveResultResponse(c *fiber.Ctx, result *domain.RecipeSaveResult) error {
	if result.Errors != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(presenters.Response{
			Success: false,
			Message: result.Message,
			Data:    result,
		})
	}
	return presenters.SuccessResponse(c, result, fiber.StatusOK, result.Message)
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	req, err := parseRecipeForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	result, err := h.recipeService.Create(c.Context(), req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedCreateRecipe, err)
	}

	if result.Errors != nil {
		return saveResultResponse(c, result)
	}
	return presenters.SuccessResponse(c, result, fiber.StatusCreated, result.Message)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	req, err := parseRecipeForm(c)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	result, err := h.recipeService.Update(c.Context(), recipeID, req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedUpdateRecipe, err)
	}

	return saveResultResponse(c, result)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	if err := h.recipeService.Delete(c.Context(), recipeID, userID); err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	viewerID, _ := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	detail, err := h.recipeService.BuildRecipeDetailContext(c.Context(), recipeID, viewerID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, detail, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) GetCreateContext(c *fiber.Ctx) error {
	formContext, err := h.recipeService.BuildRecipeCreateContext(c.Context())
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedProcessRequest, err)
	}

	return presenters.SuccessResponse(c, formContext, fiber.StatusOK, domain.MessageSuccessGetReferences)
}

func (h *recipeHandler) GetUpdateContext(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	formContext, err := h.recipeService.BuildRecipeUpdateContext(c.Context(), recipeID, userID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, formContext, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) SaveRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	redirectTo, err := h.recipeService.CreateSaved(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedSaveRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"redirect_to": "/recipes/" + redirectTo}, fiber.StatusOK, domain.MessageSuccessSaveRecipe)
}

func (h *recipeHandler) UnsaveRecipe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	recipeID := c.Params("id")

	redirectTo, err := h.recipeService.DeleteSaved(c.Context(), userID, recipeID)
	if err != nil {
		return presenters.ErrorResponse(c, recipeErrorStatus(err), domain.MessageFailedUnsaveRecipe, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"redirect_to": "/recipes/" + redirectTo}, fiber.StatusOK, domain.MessageSuccessUnsaveRecipe)
}
