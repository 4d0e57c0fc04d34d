package recipe

import (
	"mime/multipart"
	"strings"
	"testing"

	"recipehub/domain"

	"github.com/google/uuid"
)

func validFormRequestFixture() domain.RecipeFormRequest {
	return domain.RecipeFormRequest{
		Title:      "Nasi Goreng",
		Hours:      "1",
		Minutes:    "15",
		CategoryID: uuid.NewString(),
		CuisineID:  uuid.NewString(),
		Image:      &multipart.FileHeader{Filename: "cover.jpg"},
		Ingredients: []domain.IngredientOp{
			{FoodID: uuid.NewString(), UnitID: uuid.NewString(), Amount: "2"},
		},
		Directions: []domain.DirectionOp{
			{Instruction: "Heat the pan", Position: "0", Image: &multipart.FileHeader{Filename: "step-1.jpg"}},
			{Instruction: "Fry the rice", Position: "1", Image: &multipart.FileHeader{Filename: "step-2.png"}},
		},
	}
}

func TestValidateRecipeFormValid(t *testing.T) {
	parsed, formErrors := validateRecipeForm(validFormRequestFixture(), true)
	if formErrors != nil {
		t.Fatalf("expected no errors, got %+v", formErrors)
	}
	if parsed.DurationMinutes != 75 {
		t.Errorf("expected duration 75, got %d", parsed.DurationMinutes)
	}
	if len(parsed.Ingredients) != 1 || parsed.Ingredients[0].Amount == nil || *parsed.Ingredients[0].Amount != 2 {
		t.Errorf("unexpected parsed ingredients: %+v", parsed.Ingredients)
	}
	if len(parsed.Directions) != 2 || !parsed.Directions[1].HasPosition || parsed.Directions[1].Position != 1 {
		t.Errorf("unexpected parsed directions: %+v", parsed.Directions)
	}
}

func TestValidateRecipeFormCollectsEveryError(t *testing.T) {
	req := validFormRequestFixture()
	req.Title = "   "
	req.Minutes = "abc"

	parsed, formErrors := validateRecipeForm(req, true)
	if parsed != nil {
		t.Fatal("expected nil parsed form on invalid input")
	}
	if formErrors == nil {
		t.Fatal("expected form errors")
	}
	if got := formErrors.Recipe["title"]; len(got) != 1 {
		t.Errorf("expected one title error, got %v", got)
	}
	if got := formErrors.Recipe["minutes"]; len(got) != 1 {
		t.Errorf("expected one minutes error, got %v", got)
	}
}

func TestValidateRecipeFormCountsRunesNotBytes(t *testing.T) {
	req := validFormRequestFixture()
	req.Title = strings.Repeat("é", 100)

	if _, formErrors := validateRecipeForm(req, true); formErrors != nil {
		t.Fatalf("expected a 100-rune multibyte title to pass, got %+v", formErrors)
	}

	req.Title = strings.Repeat("é", 101)
	_, formErrors := validateRecipeForm(req, true)
	if formErrors == nil || len(formErrors.Recipe["title"]) == 0 {
		t.Fatal("expected a title error at 101 runes")
	}
}

func TestValidateRecipeFormScalars(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(req *domain.RecipeFormRequest)
		field  string
	}{
		{
			name:   "title too long",
			mutate: func(req *domain.RecipeFormRequest) { req.Title = strings.Repeat("a", 101) },
			field:  "title",
		},
		{
			name:   "negative hours",
			mutate: func(req *domain.RecipeFormRequest) { req.Hours = "-1" },
			field:  "hours",
		},
		{
			name:   "missing minutes",
			mutate: func(req *domain.RecipeFormRequest) { req.Minutes = "" },
			field:  "minutes",
		},
		{
			name:   "bad category id",
			mutate: func(req *domain.RecipeFormRequest) { req.CategoryID = "not-a-uuid" },
			field:  "category_id",
		},
		{
			name:   "bad cuisine id",
			mutate: func(req *domain.RecipeFormRequest) { req.CuisineID = "" },
			field:  "cuisine_id",
		},
		{
			name:   "missing image",
			mutate: func(req *domain.RecipeFormRequest) { req.Image = nil },
			field:  "image",
		},
		{
			name:   "disallowed image extension",
			mutate: func(req *domain.RecipeFormRequest) { req.Image = &multipart.FileHeader{Filename: "cover.gif"} },
			field:  "image",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validFormRequestFixture()
			tt.mutate(&req)

			_, formErrors := validateRecipeForm(req, true)
			if formErrors == nil {
				t.Fatal("expected form errors")
			}
			if got := formErrors.Recipe[tt.field]; len(got) == 0 {
				t.Errorf("expected error on %q, got %+v", tt.field, formErrors.Recipe)
			}
		})
	}
}

func TestValidateRecipeFormImageOptionalOnUpdate(t *testing.T) {
	req := validFormRequestFixture()
	req.Image = nil
	// Existing steps keep their stored image, so carry an id instead.
	for i := range req.Directions {
		req.Directions[i].ID = uuid.NewString()
		req.Directions[i].Image = nil
	}

	if _, formErrors := validateRecipeForm(req, false); formErrors != nil {
		t.Fatalf("expected no errors, got %+v", formErrors)
	}
}

func TestValidateRecipeFormIngredientOps(t *testing.T) {
	req := validFormRequestFixture()
	req.Ingredients = []domain.IngredientOp{
		{FoodID: "bogus", UnitID: uuid.NewString()},
		{FoodID: uuid.NewString(), UnitID: uuid.NewString(), Amount: "two"},
		{Delete: true},
	}

	_, formErrors := validateRecipeForm(req, true)
	if formErrors == nil {
		t.Fatal("expected form errors")
	}
	if got := formErrors.Ingredients[0]["food_id"]; len(got) == 0 {
		t.Errorf("expected food_id error on line 0, got %+v", formErrors.Ingredients[0])
	}
	if got := formErrors.Ingredients[1]["amount"]; len(got) == 0 {
		t.Errorf("expected amount error on line 1, got %+v", formErrors.Ingredients[1])
	}
	if got := formErrors.Ingredients[2]["id"]; len(got) == 0 {
		t.Errorf("expected id error on delete without id, got %+v", formErrors.Ingredients[2])
	}
}

func TestValidateRecipeFormRejectsDuplicatePositions(t *testing.T) {
	req := validFormRequestFixture()
	req.Directions[1].Position = "0"

	_, formErrors := validateRecipeForm(req, true)
	if formErrors == nil {
		t.Fatal("expected form errors")
	}
	if got := formErrors.Directions[1]["position"]; len(got) == 0 {
		t.Errorf("expected position error on the second step, got %+v", formErrors.Directions[1])
	}
}

func TestValidateRecipeFormNewStepNeedsImage(t *testing.T) {
	req := validFormRequestFixture()
	req.Directions[0].Image = nil

	_, formErrors := validateRecipeForm(req, true)
	if formErrors == nil {
		t.Fatal("expected form errors")
	}
	if got := formErrors.Directions[0]["image"]; len(got) == 0 {
		t.Errorf("expected image error on the new step, got %+v", formErrors.Directions[0])
	}
}
