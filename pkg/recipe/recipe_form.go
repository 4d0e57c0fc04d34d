package recipe

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"recipehub/domain"
	"recipehub/internal/utils/storage"

	"github.com/google/uuid"
)

const (
	maxTitleLength       = 100
	maxDescriptionLength = 2000
)

type (
	parsedIngredientOp struct {
		ID     uuid.UUID // uuid.Nil for adds
		FoodID uuid.UUID
		UnitID uuid.UUID
		Amount *int
		Delete bool
	}

	parsedDirectionOp struct {
		ID          uuid.UUID
		Instruction string
		Position    int
		HasPosition bool
		Delete      bool
		Image       *multipart.FileHeader
	}

	parsedRecipeForm struct {
		Title           string
		Description     string
		DurationMinutes int
		CategoryID      uuid.UUID
		CuisineID       uuid.UUID
		Comment         string
		Publish         bool
		Image           *multipart.FileHeader
		Ingredients     []parsedIngredientOp
		Directions      []parsedDirectionOp
	}
)

// validateRecipeForm checks the recipe scalars and both child-op sets
// independently, so a caller gets every field error in one pass. It returns
// either the normalized form or the collected errors, never both.
func validateRecipeForm(req domain.RecipeFormRequest, requireImage bool) (*parsedRecipeForm, *domain.FormErrors) {
	formErrors := domain.FormErrors{}
	parsed := parsedRecipeForm{
		Description: strings.TrimSpace(req.Description),
		Comment:     strings.TrimSpace(req.Comment),
		Publish:     req.Publish,
		Image:       req.Image,
	}

	formErrors.Recipe = validateRecipeScalars(req, requireImage, &parsed)
	formErrors.Ingredients, parsed.Ingredients = validateIngredientOps(req.Ingredients)
	formErrors.Directions, parsed.Directions = validateDirectionOps(req.Directions)

	if formErrors.HasErrors() {
		return nil, &formErrors
	}
	return &parsed, nil
}

func validateRecipeScalars(req domain.RecipeFormRequest, requireImage bool, parsed *parsedRecipeForm) domain.FieldErrors {
	errs := domain.FieldErrors{}

	parsed.Title = strings.TrimSpace(req.Title)
	if parsed.Title == "" {
		errs = errs.Add("title", "title is required")
	} else if utf8.RuneCountInString(parsed.Title) > maxTitleLength {
		errs = errs.Add("title", "title must be at most 100 characters")
	}

	if utf8.RuneCountInString(parsed.Description) > maxDescriptionLength {
		errs = errs.Add("description", "description must be at most 2000 characters")
	}

	hours := 0
	if strings.TrimSpace(req.Hours) != "" {
		parsedHours, err := parseNonNegativeInt(req.Hours)
		if err != nil {
			errs = errs.Add("hours", "hours must be a non-negative whole number")
		} else {
			hours = parsedHours
		}
	}

	if strings.TrimSpace(req.Minutes) == "" {
		errs = errs.Add("minutes", "minutes is required")
	} else if minutes, err := parseNonNegativeInt(req.Minutes); err != nil {
		errs = errs.Add("minutes", "minutes must be a non-negative whole number")
	} else {
		parsed.DurationMinutes = hours*60 + minutes
	}

	if categoryID, err := uuid.Parse(req.CategoryID); err != nil {
		errs = errs.Add("category_id", "category is required")
	} else {
		parsed.CategoryID = categoryID
	}

	if cuisineID, err := uuid.Parse(req.CuisineID); err != nil {
		errs = errs.Add("cuisine_id", "national cuisine is required")
	} else {
		parsed.CuisineID = cuisineID
	}

	if req.Image == nil {
		if requireImage {
			errs = errs.Add("image", "image is required")
		}
	} else if !imageExtensionAllowed(req.Image.Filename) {
		errs = errs.Add("image", "image must be a jpg, jpeg or png file")
	}

	return errs
}

func validateIngredientOps(ops []domain.IngredientOp) ([]domain.FieldErrors, []parsedIngredientOp) {
	lineErrors := make([]domain.FieldErrors, len(ops))
	parsed := make([]parsedIngredientOp, len(ops))

	for i, op := range ops {
		var errs domain.FieldErrors
		line := parsedIngredientOp{Delete: op.Delete}

		if op.ID != "" {
			id, err := uuid.Parse(op.ID)
			if err != nil {
				errs = errs.Add("id", "invalid ingredient id")
			} else {
				line.ID = id
			}
		}
		if op.Delete {
			if line.ID == uuid.Nil && errs == nil {
				errs = errs.Add("id", "cannot delete an unsaved ingredient")
			}
			lineErrors[i] = errs
			parsed[i] = line
			continue
		}

		if foodID, err := uuid.Parse(op.FoodID); err != nil {
			errs = errs.Add("food_id", "food is required")
		} else {
			line.FoodID = foodID
		}

		if unitID, err := uuid.Parse(op.UnitID); err != nil {
			errs = errs.Add("unit_id", "unit is required")
		} else {
			line.UnitID = unitID
		}

		if strings.TrimSpace(op.Amount) != "" {
			amount, err := parseNonNegativeInt(op.Amount)
			if err != nil {
				errs = errs.Add("amount", "amount must be a non-negative whole number")
			} else {
				line.Amount = &amount
			}
		}

		lineErrors[i] = errs
		parsed[i] = line
	}

	return lineErrors, parsed
}

func validateDirectionOps(ops []domain.DirectionOp) ([]domain.FieldErrors, []parsedDirectionOp) {
	lineErrors := make([]domain.FieldErrors, len(ops))
	parsed := make([]parsedDirectionOp, len(ops))
	seenPositions := map[int]bool{}

	for i, op := range ops {
		var errs domain.FieldErrors
		line := parsedDirectionOp{Delete: op.Delete, Image: op.Image}

		if op.ID != "" {
			id, err := uuid.Parse(op.ID)
			if err != nil {
				errs = errs.Add("id", "invalid direction id")
			} else {
				line.ID = id
			}
		}
		if op.Delete {
			if line.ID == uuid.Nil && errs == nil {
				errs = errs.Add("id", "cannot delete an unsaved direction")
			}
			lineErrors[i] = errs
			parsed[i] = line
			continue
		}

		line.Instruction = strings.TrimSpace(op.Instruction)
		if line.Instruction == "" {
			errs = errs.Add("instruction", "instruction is required")
		}

		if strings.TrimSpace(op.Position) != "" {
			position, err := parseNonNegativeInt(op.Position)
			if err != nil {
				errs = errs.Add("position", "position must be a non-negative whole number")
			} else if seenPositions[position] {
				errs = errs.Add("position", "position is already used by another step")
			} else {
				seenPositions[position] = true
				line.Position = position
				line.HasPosition = true
			}
		}

		if op.Image == nil {
			// New steps need an image; existing steps keep their stored one.
			if line.ID == uuid.Nil {
				errs = errs.Add("image", "image is required")
			}
		} else if !imageExtensionAllowed(op.Image.Filename) {
			errs = errs.Add("image", "image must be a jpg, jpeg or png file")
		}

		lineErrors[i] = errs
		parsed[i] = line
	}

	return lineErrors, parsed
}

func parseNonNegativeInt(raw string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, err
	}
	if value < 0 {
		return 0, strconv.ErrRange
	}
	return value, nil
}

func imageExtensionAllowed(fileName string) bool {
	ext := strings.ToLower(filepath.Ext(fileName))
	for _, allowed := range storage.AllowImage {
		if ext == allowed {
			return true
		}
	}
	return false
}
