package reference

import (
	"context"

	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	ReferenceRepository interface {
		ListFoods(ctx context.Context) ([]*entities.Food, error)
		ListUnits(ctx context.Context) ([]*entities.Unit, error)
		ListCategories(ctx context.Context) ([]*entities.Category, error)
		ListCuisines(ctx context.Context) ([]*entities.NationalCuisine, error)

		GetFoodByID(ctx context.Context, id string) (*entities.Food, error)
		GetUnitByID(ctx context.Context, id string) (*entities.Unit, error)
		GetCategoryByID(ctx context.Context, id string) (*entities.Category, error)
		GetCuisineByID(ctx context.Context, id string) (*entities.NationalCuisine, error)

		CreateFood(ctx context.Context, food *entities.Food) error
		CreateUnit(ctx context.Context, unit *entities.Unit) error
		CreateCategory(ctx context.Context, category *entities.Category) error
		CreateCuisine(ctx context.Context, cuisine *entities.NationalCuisine) error

		UpdateFood(ctx context.Context, food *entities.Food) error
		UpdateUnit(ctx context.Context, unit *entities.Unit) error
		UpdateCategory(ctx context.Context, category *entities.Category) error
		UpdateCuisine(ctx context.Context, cuisine *entities.NationalCuisine) error

		DeleteFood(ctx context.Context, id string) error
		DeleteUnit(ctx context.Context, id string) error
		DeleteCategory(ctx context.Context, id string) error
		DeleteCuisine(ctx context.Context, id string) error
	}

	referenceRepository struct {
		db *gorm.DB
	}
)

func NewReferenceRepository(db *gorm.DB) ReferenceRepository {
	return &referenceRepository{db: db}
}

func (r *referenceRepository) ListFoods(ctx context.Context) ([]*entities.Food, error) {
	var foods []*entities.Food
	if err := r.db.WithContext(ctx).Order("name asc").Find(&foods).Error; err != nil {
		return nil, err
	}
	return foods, nil
}

func (r *referenceRepository) ListUnits(ctx context.Context) ([]*entities.Unit, error) {
	var units []*entities.Unit
	if err := r.db.WithContext(ctx).Order("name asc").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

func (r *referenceRepository) ListCategories(ctx context.Context) ([]*entities.Category, error) {
	var categories []*entities.Category
	if err := r.db.WithContext(ctx).Order("name asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *referenceRepository) ListCuisines(ctx context.Context) ([]*entities.NationalCuisine, error) {
	var cuisines []*entities.NationalCuisine
	if err := r.db.WithContext(ctx).Order("name asc").Find(&cuisines).Error; err != nil {
		return nil, err
	}
	return cuisines, nil
}

func (r *referenceRepository) GetFoodByID(ctx context.Context, id string) (*entities.Food, error) {
	var food entities.Food
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&food).Error; err != nil {
		return nil, err
	}
	return &food, nil
}

func (r *referenceRepository) GetUnitByID(ctx context.Context, id string) (*entities.Unit, error) {
	var unit entities.Unit
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&unit).Error; err != nil {
		return nil, err
	}
	return &unit, nil
}

func (r *referenceRepository) GetCategoryByID(ctx context.Context, id string) (*entities.Category, error) {
	var category entities.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *referenceRepository) GetCuisineByID(ctx context.Context, id string) (*entities.NationalCuisine, error) {
	var cuisine entities.NationalCuisine
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&cuisine).Error; err != nil {
		return nil, err
	}
	return &cuisine, nil
}

func (r *referenceRepository) CreateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Create(food).Error
}

func (r *referenceRepository) CreateUnit(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Create(unit).Error
}

func (r *referenceRepository) CreateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Create(category).Error
}

func (r *referenceRepository) CreateCuisine(ctx context.Context, cuisine *entities.NationalCuisine) error {
	return r.db.WithContext(ctx).Create(cuisine).Error
}

func (r *referenceRepository) UpdateFood(ctx context.Context, food *entities.Food) error {
	return r.db.WithContext(ctx).Save(food).Error
}

func (r *referenceRepository) UpdateUnit(ctx context.Context, unit *entities.Unit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

func (r *referenceRepository) UpdateCategory(ctx context.Context, category *entities.Category) error {
	return r.db.WithContext(ctx).Save(category).Error
}

func (r *referenceRepository) UpdateCuisine(ctx context.Context, cuisine *entities.NationalCuisine) error {
	return r.db.WithContext(ctx).Save(cuisine).Error
}

func (r *referenceRepository) DeleteFood(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Food{}).Error
}

func (r *referenceRepository) DeleteUnit(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Unit{}).Error
}

func (r *referenceRepository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Category{}).Error
}

func (r *referenceRepository) DeleteCuisine(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.NationalCuisine{}).Error
}
