package domain

var (
	MessageSuccessGetHome = "success get home context"
	MessageFailedGetHome  = "failed to get home context"
)

const (
	TimeBucketBreakfast = "breakfast"
	TimeBucketLunch     = "lunch"
	TimeBucketDinner    = "dinner"
)

type HomeContext struct {
	TimeBucket string `json:"time_bucket"`

	// Recommended is nil for anonymous visitors.
	Recommended   []RecipeSummary `json:"recommended_recipes"`
	OwnRecipes    []RecipeSummary `json:"own_recipes,omitempty"`
	RecentRecipes []RecipeSummary `json:"recent_recipes"`
	Subscriptions []Author        `json:"subscriptions,omitempty"`
}
