package reference

import (
	"context"
	"errors"

	"recipehub/domain"
	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	ReferenceService interface {
		List(ctx context.Context, kind string) ([]domain.ReferenceItem, error)
		Create(ctx context.Context, kind string, req domain.CreateReferenceRequest) (*domain.ReferenceItem, error)
		Update(ctx context.Context, kind string, id string, req domain.UpdateReferenceRequest) error
		Delete(ctx context.Context, kind string, id string) error
	}

	referenceService struct {
		referenceRepository ReferenceRepository
	}
)

func NewReferenceService(referenceRepository ReferenceRepository) ReferenceService {
	return &referenceService{referenceRepository: referenceRepository}
}

func (s *referenceService) List(ctx context.Context, kind string) ([]domain.ReferenceItem, error) {
	switch kind {
	case domain.ReferenceKindFood:
		foods, err := s.referenceRepository.ListFoods(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]domain.ReferenceItem, 0, len(foods))
		for _, food := range foods {
			items = append(items, domain.ReferenceItem{ID: food.ID.String(), Name: food.Name})
		}
		return items, nil
	case domain.ReferenceKindUnit:
		units, err := s.referenceRepository.ListUnits(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]domain.ReferenceItem, 0, len(units))
		for _, unit := range units {
			items = append(items, domain.ReferenceItem{
				ID:           unit.ID.String(),
				Name:         unit.Name,
				Abbreviation: unit.Abbreviation,
			})
		}
		return items, nil
	case domain.ReferenceKindCategory:
		categories, err := s.referenceRepository.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]domain.ReferenceItem, 0, len(categories))
		for _, category := range categories {
			items = append(items, domain.ReferenceItem{ID: category.ID.String(), Name: category.Name})
		}
		return items, nil
	case domain.ReferenceKindCuisine:
		cuisines, err := s.referenceRepository.ListCuisines(ctx)
		if err != nil {
			return nil, err
		}
		items := make([]domain.ReferenceItem, 0, len(cuisines))
		for _, cuisine := range cuisines {
			items = append(items, domain.ReferenceItem{ID: cuisine.ID.String(), Name: cuisine.Name})
		}
		return items, nil
	default:
		return nil, domain.ErrReferenceKindUnknown
	}
}

func (s *referenceService) Create(ctx context.Context, kind string, req domain.CreateReferenceRequest) (*domain.ReferenceItem, error) {
	id := uuid.New()
	item := domain.ReferenceItem{ID: id.String(), Name: req.Name, Abbreviation: req.Abbreviation}

	var err error
	switch kind {
	case domain.ReferenceKindFood:
		err = s.referenceRepository.CreateFood(ctx, &entities.Food{ID: id, Name: req.Name})
	case domain.ReferenceKindUnit:
		err = s.referenceRepository.CreateUnit(ctx, &entities.Unit{ID: id, Name: req.Name, Abbreviation: req.Abbreviation})
	case domain.ReferenceKindCategory:
		err = s.referenceRepository.CreateCategory(ctx, &entities.Category{ID: id, Name: req.Name})
	case domain.ReferenceKindCuisine:
		err = s.referenceRepository.CreateCuisine(ctx, &entities.NationalCuisine{ID: id, Name: req.Name})
	default:
		return nil, domain.ErrReferenceKindUnknown
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *referenceService) Update(ctx context.Context, kind string, id string, req domain.UpdateReferenceRequest) error {
	switch kind {
	case domain.ReferenceKindFood:
		food, err := s.referenceRepository.GetFoodByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		food.Name = req.Name
		return s.referenceRepository.UpdateFood(ctx, food)
	case domain.ReferenceKindUnit:
		unit, err := s.referenceRepository.GetUnitByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		unit.Name = req.Name
		unit.Abbreviation = req.Abbreviation
		return s.referenceRepository.UpdateUnit(ctx, unit)
	case domain.ReferenceKindCategory:
		category, err := s.referenceRepository.GetCategoryByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		category.Name = req.Name
		return s.referenceRepository.UpdateCategory(ctx, category)
	case domain.ReferenceKindCuisine:
		cuisine, err := s.referenceRepository.GetCuisineByID(ctx, id)
		if err != nil {
			return notFoundOr(err)
		}
		cuisine.Name = req.Name
		return s.referenceRepository.UpdateCuisine(ctx, cuisine)
	default:
		return domain.ErrReferenceKindUnknown
	}
}

func (s *referenceService) Delete(ctx context.Context, kind string, id string) error {
	switch kind {
	case domain.ReferenceKindFood:
		return s.referenceRepository.DeleteFood(ctx, id)
	case domain.ReferenceKindUnit:
		return s.referenceRepository.DeleteUnit(ctx, id)
	case domain.ReferenceKindCategory:
		return s.referenceRepository.DeleteCategory(ctx, id)
	case domain.ReferenceKindCuisine:
		return s.referenceRepository.DeleteCuisine(ctx, id)
	default:
		return domain.ErrReferenceKindUnknown
	}
}

func notFoundOr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrReferenceNotFound
	}
	return err
}
