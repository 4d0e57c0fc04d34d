package home

import (
	"context"
	"errors"
	"time"

	"recipehub/domain"
	"recipehub/pkg/recipe"
	"recipehub/pkg/user"

	"gorm.io/gorm"
)

const (
	ownRecipesLimit    = 4
	recentRecipesLimit = 2
	subscriptionsLimit = 4
)

type (
	HomeService interface {
		BuildHomeContext(ctx context.Context, userID string, now time.Time) (*domain.HomeContext, error)
	}

	homeService struct {
		recipeRepository recipe.RecipeRepository
		userRepository   user.UserRepository
	}
)

func NewHomeService(recipeRepository recipe.RecipeRepository, userRepository user.UserRepository) HomeService {
	return &homeService{
		recipeRepository: recipeRepository,
		userRepository:   userRepository,
	}
}

// TimeBucketFor maps a zone-local hour to the meal the homepage should
// recommend: [5,12) breakfast, [12,17) lunch, everything else dinner.
func TimeBucketFor(now time.Time) string {
	hour := now.Hour()
	switch {
	case hour >= 5 && hour < 12:
		return domain.TimeBucketBreakfast
	case hour >= 12 && hour < 17:
		return domain.TimeBucketLunch
	default:
		return domain.TimeBucketDinner
	}
}

// BuildHomeContext assembles the homepage view model. Anonymous visitors get
// only the recent-recipes rail; authenticated users additionally get the
// time-bucket recommendations merged with their saved recipes, their own
// recipes and their author subscriptions. Pure read, idempotent for a fixed
// now.
func (s *homeService) BuildHomeContext(ctx context.Context, userID string, now time.Time) (*domain.HomeContext, error) {
	homeContext := domain.HomeContext{
		TimeBucket:    TimeBucketFor(now),
		RecentRecipes: []domain.RecipeSummary{},
	}

	recent, err := s.recipeRepository.GetRecentPublished(ctx, recentRecipesLimit)
	if err != nil {
		return nil, err
	}
	for _, item := range recent {
		homeContext.RecentRecipes = append(homeContext.RecentRecipes, recipe.ToRecipeSummary(item))
	}

	if userID == "" {
		return &homeContext, nil
	}

	viewer, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &homeContext, nil
		}
		return nil, err
	}

	recommended, err := s.buildRecommendations(ctx, userID, homeContext.TimeBucket)
	if err != nil {
		return nil, err
	}
	homeContext.Recommended = recommended

	if viewer.IsActive {
		own, err := s.recipeRepository.GetRecipesByAuthor(ctx, userID, ownRecipesLimit)
		if err != nil {
			return nil, err
		}
		for _, item := range own {
			homeContext.OwnRecipes = append(homeContext.OwnRecipes, recipe.ToRecipeSummary(item))
		}
	}

	subscriptions, err := s.userRepository.GetSubscriptions(ctx, userID, subscriptionsLimit)
	if err != nil {
		return nil, err
	}
	for _, subscription := range subscriptions {
		homeContext.Subscriptions = append(homeContext.Subscriptions, recipe.ToAuthor(subscription.Author))
	}

	return &homeContext, nil
}

// buildRecommendations unions the bucket's published recipes with the user's
// saved recipes, deduplicated by recipe id. Set semantics, so the relative
// order of duplicates does not matter.
func (s *homeService) buildRecommendations(ctx context.Context, userID string, bucket string) ([]domain.RecipeSummary, error) {
	byBucket, err := s.recipeRepository.GetPublishedByCategoryName(ctx, bucket)
	if err != nil {
		return nil, err
	}

	saved, err := s.recipeRepository.GetSavedRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	recommended := []domain.RecipeSummary{}
	for _, item := range append(byBucket, saved...) {
		id := item.ID.String()
		if seen[id] {
			continue
		}
		seen[id] = true
		recommended = append(recommended, recipe.ToRecipeSummary(item))
	}
	return recommended, nil
}
