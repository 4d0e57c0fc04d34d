package recipe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/utils/storage"
	"recipehub/pkg/reference"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		Create(ctx context.Context, req domain.RecipeFormRequest, userID string) (*domain.RecipeSaveResult, error)
		Update(ctx context.Context, recipeID string, req domain.RecipeFormRequest, userID string) (*domain.RecipeSaveResult, error)
		Delete(ctx context.Context, recipeID string, userID string) error

		BuildRecipeDetailContext(ctx context.Context, recipeID string, viewerID string) (*domain.RecipeDetail, error)
		BuildRecipeCreateContext(ctx context.Context) (*domain.RecipeFormContext, error)
		BuildRecipeUpdateContext(ctx context.Context, recipeID string, userID string) (*domain.RecipeFormContext, error)

		CreateSaved(ctx context.Context, userID, recipeID string) (string, error)
		DeleteSaved(ctx context.Context, userID, recipeID string) (string, error)
		IsSaved(ctx context.Context, userID, recipeID string) (bool, error)
	}

	recipeService struct {
		recipeRepository    RecipeRepository
		referenceRepository reference.ReferenceRepository
		s3                  storage.AwsS3
		now                 func() time.Time
	}
)

func NewRecipeService(recipeRepository RecipeRepository, referenceRepository reference.ReferenceRepository, s3 storage.AwsS3) RecipeService {
	return &recipeService{
		recipeRepository:    recipeRepository,
		referenceRepository: referenceRepository,
		s3:                  s3,
		now:                 time.Now,
	}
}

// Create runs the full save workflow for a new recipe: validate everything
// first, then upload images, then persist the aggregate in one transaction.
// A validation failure returns the submitted values with errors attached and
// writes nothing.
func (s *recipeService) Create(ctx context.Context, req domain.RecipeFormRequest, userID string) (*domain.RecipeSaveResult, error) {
	parsed, formErrors := validateRecipeForm(req, true)
	if formErrors != nil {
		return rejectedResult(req, formErrors), nil
	}

	if err := s.checkReferences(ctx, parsed); err != nil {
		return nil, err
	}

	authorID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	recipeID := uuid.New()
	recipe := &entities.Recipe{
		ID:              recipeID,
		AuthorID:        authorID,
		Title:           parsed.Title,
		Description:     parsed.Description,
		DurationMinutes: parsed.DurationMinutes,
		CategoryID:      parsed.CategoryID,
		CuisineID:       parsed.CuisineID,
		Comment:         parsed.Comment,
		IsDraft:         true,
	}
	if parsed.Publish {
		now := s.now()
		recipe.IsDraft = false
		recipe.PubDate = &now
	}

	imageURL, err := s.uploadRecipeImage(recipeID, parsed)
	if err != nil {
		return nil, err
	}
	recipe.ImageURL = imageURL

	agg := RecipeAggregateSave{Recipe: recipe, IsCreate: true}
	if err := s.buildChildOps(parsed, &agg, nil); err != nil {
		return nil, err
	}

	if err := s.recipeRepository.SaveRecipeAggregate(ctx, agg); err != nil {
		return nil, err
	}

	return s.successResult(ctx, recipeID.String(), userID, domain.MessageSuccessCreateRecipe)
}

// Update re-validates and re-persists an existing aggregate. The author never
// changes, and a recipe that already carries a publish timestamp keeps it no
// matter what the publish flag says.
func (s *recipeService) Update(ctx context.Context, recipeID string, req domain.RecipeFormRequest, userID string) (*domain.RecipeSaveResult, error) {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if existing.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}

	parsed, formErrors := validateRecipeForm(req, false)
	if formErrors != nil {
		return rejectedResult(req, formErrors), nil
	}

	if err := s.checkReferences(ctx, parsed); err != nil {
		return nil, err
	}

	recipe := &entities.Recipe{
		ID:              existing.ID,
		AuthorID:        existing.AuthorID,
		Title:           parsed.Title,
		Description:     parsed.Description,
		DurationMinutes: parsed.DurationMinutes,
		CategoryID:      parsed.CategoryID,
		CuisineID:       parsed.CuisineID,
		Comment:         parsed.Comment,
		ImageURL:        existing.ImageURL,
		IsDraft:         existing.IsDraft,
		PubDate:         existing.PubDate,
		Timestamp:       existing.Timestamp,
	}
	if parsed.Publish && existing.PubDate == nil {
		now := s.now()
		recipe.IsDraft = false
		recipe.PubDate = &now
	}

	if parsed.Image != nil {
		imageURL, err := s.uploadRecipeImage(existing.ID, parsed)
		if err != nil {
			return nil, err
		}
		recipe.ImageURL = imageURL
	}

	agg := RecipeAggregateSave{Recipe: recipe}
	if err := s.buildChildOps(parsed, &agg, existing); err != nil {
		return nil, err
	}

	if err := s.recipeRepository.SaveRecipeAggregate(ctx, agg); err != nil {
		return nil, err
	}

	return s.successResult(ctx, recipeID, userID, domain.MessageSuccessUpdateRecipe)
}

func (s *recipeService) Delete(ctx context.Context, recipeID string, userID string) error {
	existing, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}
	if existing.AuthorID.String() != userID {
		return domain.ErrUnauthorizedRecipeAccess
	}
	return s.recipeRepository.DeleteRecipe(ctx, recipeID)
}

func (s *recipeService) uploadRecipeImage(recipeID uuid.UUID, parsed *parsedRecipeForm) (string, error) {
	if parsed.Image == nil {
		return "", nil
	}
	objectKey, err := s.s3.UploadFile(
		fmt.Sprintf("recipe-%s", recipeID.String()),
		parsed.Image,
		"recipes",
		storage.AllowImage...,
	)
	if err != nil {
		return "", err
	}
	return s.s3.GetPublicLinkKey(objectKey), nil
}

// checkReferences confirms every referenced lookup row exists before the
// transaction starts, so a dangling category or food surfaces as a domain
// error rather than a database integrity failure.
func (s *recipeService) checkReferences(ctx context.Context, parsed *parsedRecipeForm) error {
	if _, err := s.referenceRepository.GetCategoryByID(ctx, parsed.CategoryID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCategoryNotFound
		}
		return err
	}
	if _, err := s.referenceRepository.GetCuisineByID(ctx, parsed.CuisineID.String()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCuisineNotFound
		}
		return err
	}

	seenFoods := map[uuid.UUID]bool{}
	seenUnits := map[uuid.UUID]bool{}
	for _, op := range parsed.Ingredients {
		if op.Delete {
			continue
		}
		if !seenFoods[op.FoodID] {
			seenFoods[op.FoodID] = true
			if _, err := s.referenceRepository.GetFoodByID(ctx, op.FoodID.String()); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrFoodNotFound
				}
				return err
			}
		}
		if !seenUnits[op.UnitID] {
			seenUnits[op.UnitID] = true
			if _, err := s.referenceRepository.GetUnitByID(ctx, op.UnitID.String()); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrUnitNotFound
				}
				return err
			}
		}
	}
	return nil
}

// buildChildOps turns parsed ops into entity upserts and deletion lists,
// uploading direction images along the way. Every submitted id must name a
// child of this recipe; an existing step without a new upload keeps its stored
// image. Steps without an explicit position are appended past every submitted
// and stored one, in submission order; the repository renumber pass makes the
// final sequence contiguous.
func (s *recipeService) buildChildOps(parsed *parsedRecipeForm, agg *RecipeAggregateSave, existing *entities.Recipe) error {
	existingIngredients := map[uuid.UUID]entities.Ingredient{}
	existingDirections := map[uuid.UUID]entities.Direction{}
	if existing != nil {
		for _, ingredient := range existing.Ingredients {
			existingIngredients[ingredient.ID] = ingredient
		}
		for _, direction := range existing.Directions {
			existingDirections[direction.ID] = direction
		}
	}

	for _, op := range parsed.Ingredients {
		if op.Delete {
			agg.DeleteIngredients = append(agg.DeleteIngredients, op.ID)
			continue
		}
		ingredient := &entities.Ingredient{
			ID:     op.ID,
			FoodID: op.FoodID,
			UnitID: op.UnitID,
			Amount: op.Amount,
		}
		if ingredient.ID == uuid.Nil {
			ingredient.ID = uuid.New()
		} else {
			stored, ok := existingIngredients[ingredient.ID]
			if !ok {
				return domain.ErrIngredientNotFound
			}
			ingredient.Timestamp = stored.Timestamp
		}
		agg.UpsertIngredients = append(agg.UpsertIngredients, ingredient)
	}

	nextPosition := 0
	for _, op := range parsed.Directions {
		if !op.Delete && op.HasPosition && op.Position >= nextPosition {
			nextPosition = op.Position + 1
		}
	}
	for _, stored := range existingDirections {
		if stored.Position >= nextPosition {
			nextPosition = stored.Position + 1
		}
	}

	for _, op := range parsed.Directions {
		if op.Delete {
			agg.DeleteDirections = append(agg.DeleteDirections, op.ID)
			continue
		}
		direction := &entities.Direction{
			ID:          op.ID,
			Instruction: op.Instruction,
			Position:    op.Position,
		}
		if !op.HasPosition {
			direction.Position = nextPosition
			nextPosition++
		}
		if direction.ID == uuid.Nil {
			direction.ID = uuid.New()
		} else {
			stored, ok := existingDirections[direction.ID]
			if !ok {
				return domain.ErrDirectionNotFound
			}
			direction.ImageURL = stored.ImageURL
			direction.Timestamp = stored.Timestamp
		}
		if op.Image != nil {
			objectKey, err := s.s3.UploadFile(
				fmt.Sprintf("direction-%s", direction.ID.String()),
				op.Image,
				"directions",
				storage.AllowImage...,
			)
			if err != nil {
				return err
			}
			direction.ImageURL = s.s3.GetPublicLinkKey(objectKey)
		}
		agg.UpsertDirections = append(agg.UpsertDirections, direction)
	}
	return nil
}

func rejectedResult(req domain.RecipeFormRequest, formErrors *domain.FormErrors) *domain.RecipeSaveResult {
	// Strip file handles before echoing the submission back.
	submitted := req
	submitted.Image = nil
	for i := range submitted.Directions {
		submitted.Directions[i].Image = nil
	}
	return &domain.RecipeSaveResult{
		Errors:    formErrors,
		Submitted: &submitted,
		Message:   domain.MessageRecipeFormInvalid,
	}
}

func (s *recipeService) successResult(ctx context.Context, recipeID, userID, message string) (*domain.RecipeSaveResult, error) {
	detail, err := s.BuildRecipeDetailContext(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	redirect := "/recipes/" + recipeID
	if detail.IsDraft {
		redirect += "/edit"
	}
	return &domain.RecipeSaveResult{
		Recipe:     detail,
		Message:    message,
		RedirectTo: redirect,
	}, nil
}

// BuildRecipeDetailContext assembles the detail view model. Drafts exist only
// for their author; everyone else gets a not-found.
func (s *recipeService) BuildRecipeDetailContext(ctx context.Context, recipeID string, viewerID string) (*domain.RecipeDetail, error) {
	recipe, err := s.getVisibleRecipe(ctx, recipeID, viewerID)
	if err != nil {
		return nil, err
	}

	detail := toRecipeDetail(recipe)
	if viewerID != "" {
		saved, err := s.recipeRepository.IsRecipeSaved(ctx, viewerID, recipeID)
		if err != nil {
			return nil, err
		}
		detail.IsSaved = saved
	}
	return detail, nil
}

func (s *recipeService) BuildRecipeCreateContext(ctx context.Context) (*domain.RecipeFormContext, error) {
	return s.buildFormContext(ctx, nil)
}

func (s *recipeService) BuildRecipeUpdateContext(ctx context.Context, recipeID string, userID string) (*domain.RecipeFormContext, error) {
	recipe, err := s.getVisibleRecipe(ctx, recipeID, userID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID.String() != userID {
		return nil, domain.ErrUnauthorizedRecipeAccess
	}
	return s.buildFormContext(ctx, toRecipeDetail(recipe))
}

func (s *recipeService) buildFormContext(ctx context.Context, detail *domain.RecipeDetail) (*domain.RecipeFormContext, error) {
	categories, err := s.referenceRepository.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	cuisines, err := s.referenceRepository.ListCuisines(ctx)
	if err != nil {
		return nil, err
	}
	foods, err := s.referenceRepository.ListFoods(ctx)
	if err != nil {
		return nil, err
	}
	units, err := s.referenceRepository.ListUnits(ctx)
	if err != nil {
		return nil, err
	}

	formContext := domain.RecipeFormContext{Recipe: detail}
	for _, category := range categories {
		formContext.Categories = append(formContext.Categories, domain.ReferenceItem{ID: category.ID.String(), Name: category.Name})
	}
	for _, cuisine := range cuisines {
		formContext.Cuisines = append(formContext.Cuisines, domain.ReferenceItem{ID: cuisine.ID.String(), Name: cuisine.Name})
	}
	for _, food := range foods {
		formContext.Foods = append(formContext.Foods, domain.ReferenceItem{ID: food.ID.String(), Name: food.Name})
	}
	for _, unit := range units {
		formContext.Units = append(formContext.Units, domain.ReferenceItem{
			ID:           unit.ID.String(),
			Name:         unit.Name,
			Abbreviation: unit.Abbreviation,
		})
	}
	return &formContext, nil
}

func (s *recipeService) getVisibleRecipe(ctx context.Context, recipeID string, viewerID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.IsDraft && recipe.AuthorID.String() != viewerID {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

// CreateSaved bookmarks a published recipe for the user. Saving twice is a
// no-op; the returned id is the redirect target.
func (s *recipeService) CreateSaved(ctx context.Context, userID, recipeID string) (string, error) {
	recipe, err := s.requirePublished(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if err := s.recipeRepository.CreateSavedRecipe(ctx, userID, recipeID); err != nil {
		return "", err
	}
	return recipe.ID.String(), nil
}

func (s *recipeService) DeleteSaved(ctx context.Context, userID, recipeID string) (string, error) {
	recipe, err := s.requirePublished(ctx, recipeID)
	if err != nil {
		return "", err
	}
	if err := s.recipeRepository.DeleteSavedRecipe(ctx, userID, recipeID); err != nil {
		return "", err
	}
	return recipe.ID.String(), nil
}

func (s *recipeService) IsSaved(ctx context.Context, userID, recipeID string) (bool, error) {
	return s.recipeRepository.IsRecipeSaved(ctx, userID, recipeID)
}

func (s *recipeService) requirePublished(ctx context.Context, recipeID string) (*entities.Recipe, error) {
	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, err
	}
	if recipe.IsDraft {
		return nil, domain.ErrRecipeNotFound
	}
	return recipe, nil
}

func ToAuthor(user *entities.User) domain.Author {
	if user == nil {
		return domain.Author{}
	}
	return domain.Author{
		ID:        user.ID.String(),
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		AvatarURL: user.AvatarURL,
	}
}

func ToRecipeSummary(recipe *entities.Recipe) domain.RecipeSummary {
	summary := domain.RecipeSummary{
		ID:              recipe.ID.String(),
		Title:           recipe.Title,
		ImageURL:        recipe.ImageURL,
		DurationMinutes: recipe.DurationMinutes,
		IsDraft:         recipe.IsDraft,
		PubDate:         recipe.PubDate,
		Author:          ToAuthor(recipe.Author),
	}
	if recipe.Category != nil {
		summary.Category = recipe.Category.Name
	}
	if recipe.Cuisine != nil {
		summary.Cuisine = recipe.Cuisine.Name
	}
	return summary
}

func toRecipeDetail(recipe *entities.Recipe) *domain.RecipeDetail {
	detail := domain.RecipeDetail{
		RecipeSummary: ToRecipeSummary(recipe),
		Description:   recipe.Description,
		Comment:       recipe.Comment,
		Ingredients:   []domain.IngredientLine{},
		Directions:    []domain.DirectionStep{},
	}
	for _, ingredient := range recipe.Ingredients {
		line := domain.IngredientLine{
			ID:     ingredient.ID.String(),
			Amount: ingredient.Amount,
		}
		if ingredient.Food != nil {
			line.Food = ingredient.Food.Name
		}
		if ingredient.Unit != nil {
			line.Unit = ingredient.Unit.Name
		}
		detail.Ingredients = append(detail.Ingredients, line)
	}
	for _, direction := range recipe.Directions {
		detail.Directions = append(detail.Directions, domain.DirectionStep{
			ID:          direction.ID.String(),
			Step:        direction.Position,
			Instruction: direction.Instruction,
			ImageURL:    direction.ImageURL,
		})
	}
	return &detail
}
