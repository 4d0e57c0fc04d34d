package recipe

import (
	"context"
	"errors"
	"time"

	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type (
	// RecipeAggregateSave is one logical write: the recipe row plus every
	// child upsert and deletion that belongs to the same submission. The
	// repository commits it atomically or not at all.
	RecipeAggregateSave struct {
		Recipe            *entities.Recipe
		IsCreate          bool
		UpsertIngredients []*entities.Ingredient
		DeleteIngredients []uuid.UUID
		UpsertDirections  []*entities.Direction
		DeleteDirections  []uuid.UUID
	}

	RecipeRepository interface {
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetRecentPublished(ctx context.Context, limit int) ([]*entities.Recipe, error)
		GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error)
		GetPublishedByCategoryName(ctx context.Context, categoryName string) ([]*entities.Recipe, error)
		SaveRecipeAggregate(ctx context.Context, agg RecipeAggregateSave) error
		DeleteRecipe(ctx context.Context, id string) error

		CreateSavedRecipe(ctx context.Context, userID, recipeID string) error
		DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error
		IsRecipeSaved(ctx context.Context, userID, recipeID string) (bool, error)
		GetSavedRecipes(ctx context.Context, userID string) ([]*entities.Recipe, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func withAggregate(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Preload("Ingredients.Food").
		Preload("Ingredients.Unit").
		Preload("Directions", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := withAggregate(r.db.WithContext(ctx)).
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecentPublished(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Where("is_draft = ?", false).
		Order("pub_date desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetRecipesByAuthor(ctx context.Context, authorID string, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	query := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Where("author_id = ?", authorID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) GetPublishedByCategoryName(ctx context.Context, categoryName string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Joins("JOIN categories ON categories.id = recipes.category_id").
		Where("categories.name = ? AND recipes.is_draft = ?", categoryName, false).
		Order("recipes.pub_date desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SaveRecipeAggregate writes the parent before any child so the foreign keys
// have an identity to point at, then renumbers the surviving direction rows to
// a contiguous zero-based sequence. Everything runs in one transaction.
func (r *recipeRepository) SaveRecipeAggregate(ctx context.Context, agg RecipeAggregateSave) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if agg.IsCreate {
			if err := tx.Create(agg.Recipe).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Save(agg.Recipe).Error; err != nil {
				return err
			}
		}

		if len(agg.DeleteIngredients) > 0 {
			if err := tx.
				Where("recipe_id = ? AND id IN ?", agg.Recipe.ID, agg.DeleteIngredients).
				Delete(&entities.Ingredient{}).Error; err != nil {
				return err
			}
		}
		if len(agg.DeleteDirections) > 0 {
			if err := tx.
				Where("recipe_id = ? AND id IN ?", agg.Recipe.ID, agg.DeleteDirections).
				Delete(&entities.Direction{}).Error; err != nil {
				return err
			}
		}

		for _, ingredient := range agg.UpsertIngredients {
			ingredient.RecipeID = agg.Recipe.ID
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(ingredient).Error; err != nil {
				return err
			}
		}
		for _, direction := range agg.UpsertDirections {
			direction.RecipeID = agg.Recipe.ID
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(direction).Error; err != nil {
				return err
			}
		}

		return renumberDirections(tx, agg.Recipe.ID)
	})
}

// renumberDirections closes any position gap left by deletions, so "step N"
// rendering never skips a number.
func renumberDirections(tx *gorm.DB, recipeID uuid.UUID) error {
	var directions []entities.Direction
	if err := tx.
		Where("recipe_id = ?", recipeID).
		Order("position asc, created_at asc").
		Find(&directions).Error; err != nil {
		return err
	}

	for i, direction := range directions {
		if direction.Position == i {
			continue
		}
		if err := tx.Model(&entities.Direction{}).
			Where("id = ?", direction.ID).
			Update("position", i).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Ingredient{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Direction{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.SavedRecipe{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

func (r *recipeRepository) CreateSavedRecipe(ctx context.Context, userID, recipeID string) error {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return err
	}

	recipeUUID, err := uuid.Parse(recipeID)
	if err != nil {
		return err
	}

	// Re-saving an already saved recipe is a no-op
	var existing entities.SavedRecipe
	if err := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userUUID, recipeUUID).
		First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	saved := entities.SavedRecipe{
		ID:        uuid.New(),
		UserID:    userUUID,
		RecipeID:  recipeUUID,
		CreatedAt: time.Now(),
	}

	return r.db.WithContext(ctx).Create(&saved).Error
}

func (r *recipeRepository) DeleteSavedRecipe(ctx context.Context, userID, recipeID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&entities.SavedRecipe{}).Error
}

func (r *recipeRepository) IsRecipeSaved(ctx context.Context, userID, recipeID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.SavedRecipe{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *recipeRepository) GetSavedRecipes(ctx context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Category").
		Preload("Cuisine").
		Joins("JOIN saved_recipes ON recipes.id = saved_recipes.recipe_id").
		Where("saved_recipes.user_id = ?", userID).
		Order("saved_recipes.created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}
