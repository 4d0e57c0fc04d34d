package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessSaveRecipe      = "recipe saved to your collection"
	MessageSuccessUnsaveRecipe    = "recipe removed from your collection"
	MessageRecipeFormInvalid      = "recipe form has errors"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedUnsaveRecipe    = "failed to remove saved recipe"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrIngredientNotFound       = errors.New("ingredient does not belong to this recipe")
	ErrDirectionNotFound        = errors.New("direction does not belong to this recipe")
	ErrCategoryNotFound         = errors.New("category not found")
	ErrCuisineNotFound          = errors.New("national cuisine not found")
	ErrFoodNotFound             = errors.New("food not found")
	ErrUnitNotFound             = errors.New("unit not found")
)

type (
	// RecipeFormRequest carries the recipe form exactly as submitted. Numeric
	// inputs stay strings until the validation layer parses them, so a bad
	// value becomes a field error instead of a decode failure.
	RecipeFormRequest struct {
		Title       string `json:"title" form:"title"`
		Description string `json:"description" form:"description"`
		Hours       string `json:"hours" form:"hours"`
		Minutes     string `json:"minutes" form:"minutes"`
		CategoryID  string `json:"category_id" form:"category_id"`
		CuisineID   string `json:"cuisine_id" form:"cuisine_id"`
		Comment     string `json:"comment" form:"comment"`
		Publish     bool   `json:"publish" form:"publish"`

		Image       *multipart.FileHeader `json:"-" form:"-"`
		Ingredients []IngredientOp        `json:"ingredients" form:"-"`
		Directions  []DirectionOp         `json:"directions" form:"-"`
	}

	// IngredientOp is one line of the ingredient set: an add (no ID), an
	// update (ID set) or a removal (Delete set).
	IngredientOp struct {
		ID     string `json:"id,omitempty"`
		FoodID string `json:"food_id"`
		UnitID string `json:"unit_id"`
		Amount string `json:"amount,omitempty"`
		Delete bool   `json:"delete,omitempty"`
	}

	DirectionOp struct {
		ID          string `json:"id,omitempty"`
		Instruction string `json:"instruction"`
		Position    string `json:"position,omitempty"`
		Delete      bool   `json:"delete,omitempty"`

		Image *multipart.FileHeader `json:"-"`
	}

	// FieldErrors maps a field name to every message raised against it.
	FieldErrors map[string][]string

	// FormErrors collects the outcome of validating the recipe form and both
	// child-op sets. Ingredient and direction entries are index-aligned with
	// the submitted ops; a nil map means the line passed.
	FormErrors struct {
		Recipe      FieldErrors   `json:"recipe,omitempty"`
		Ingredients []FieldErrors `json:"ingredients,omitempty"`
		Directions  []FieldErrors `json:"directions,omitempty"`
	}

	// RecipeSaveResult is the save workflow outcome: either Recipe is set and
	// the caller redirects, or Errors carries the re-render instruction along
	// with the values the user submitted.
	RecipeSaveResult struct {
		Recipe     *RecipeDetail      `json:"recipe,omitempty"`
		Errors     *FormErrors        `json:"errors,omitempty"`
		Submitted  *RecipeFormRequest `json:"submitted,omitempty"`
		Message    string             `json:"message"`
		RedirectTo string             `json:"redirect_to,omitempty"`
	}

	RecipeSummary struct {
		ID              string     `json:"id"`
		Title           string     `json:"title"`
		ImageURL        string     `json:"image_url"`
		DurationMinutes int        `json:"duration_minutes"`
		Category        string     `json:"category"`
		Cuisine         string     `json:"cuisine"`
		IsDraft         bool       `json:"is_draft"`
		PubDate         *time.Time `json:"pub_date,omitempty"`
		Author          Author     `json:"author"`
	}

	IngredientLine struct {
		ID     string `json:"id"`
		Food   string `json:"food"`
		Unit   string `json:"unit"`
		Amount *int   `json:"amount,omitempty"`
	}

	DirectionStep struct {
		ID          string `json:"id"`
		Step        int    `json:"step"`
		Instruction string `json:"instruction"`
		ImageURL    string `json:"image_url"`
	}

	RecipeDetail struct {
		RecipeSummary
		Description string           `json:"description"`
		Comment     string           `json:"comment,omitempty"`
		Ingredients []IngredientLine `json:"ingredients"`
		Directions  []DirectionStep  `json:"directions"`
		IsSaved     bool             `json:"is_saved"`
	}

	SaveRecipeRequest struct {
		RecipeID string `json:"recipe_id" validate:"required,uuid"`
	}

	// RecipeFormContext backs the create and update forms: the reference data
	// the selects need, plus the stored aggregate when editing.
	RecipeFormContext struct {
		Categories []ReferenceItem `json:"categories"`
		Cuisines   []ReferenceItem `json:"cuisines"`
		Foods      []ReferenceItem `json:"foods"`
		Units      []ReferenceItem `json:"units"`
		Recipe     *RecipeDetail   `json:"recipe,omitempty"`
	}
)

func (fe FieldErrors) Add(field, message string) FieldErrors {
	if fe == nil {
		fe = FieldErrors{}
	}
	fe[field] = append(fe[field], message)
	return fe
}

func (f *FormErrors) HasErrors() bool {
	if f == nil {
		return false
	}
	if len(f.Recipe) > 0 {
		return true
	}
	for _, fe := range f.Ingredients {
		if len(fe) > 0 {
			return true
		}
	}
	for _, fe := range f.Directions {
		if len(fe) > 0 {
			return true
		}
	}
	return false
}
