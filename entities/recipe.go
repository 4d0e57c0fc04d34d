package entities

import (
	"time"

	"github.com/google/uuid"
)

type Recipe struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	AuthorID        uuid.UUID  `json:"author_id"`
	Title           string     `gorm:"size:100" json:"title"`
	Description     string     `gorm:"type:text" json:"description"`
	DurationMinutes int        `json:"duration_minutes"`
	CategoryID      uuid.UUID  `json:"category_id"`
	CuisineID       uuid.UUID  `json:"cuisine_id"`
	ImageURL        string     `json:"image_url"`
	Comment         string     `gorm:"type:text" json:"comment,omitempty"`
	// No column default on purpose: gorm drops zero-valued fields that have
	// one from the insert, which would turn publish-on-create into a draft.
	IsDraft bool       `json:"is_draft"`
	PubDate *time.Time `gorm:"type:timestamp" json:"pub_date,omitempty"`

	Author      *User            `gorm:"foreignKey:AuthorID"`
	Category    *Category        `gorm:"foreignKey:CategoryID"`
	Cuisine     *NationalCuisine `gorm:"foreignKey:CuisineID"`
	Ingredients []Ingredient     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Directions  []Direction      `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Timestamp
}

type Ingredient struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID uuid.UUID `gorm:"index" json:"recipe_id"`
	FoodID   uuid.UUID `json:"food_id"`
	UnitID   uuid.UUID `json:"unit_id"`
	Amount   *int      `json:"amount,omitempty"`

	Food *Food `gorm:"foreignKey:FoodID"`
	Unit *Unit `gorm:"foreignKey:UnitID"`
	Timestamp
}

// Position is kept contiguous and zero-based per recipe by the save workflow,
// the detail view renders "step N" straight from it.
type Direction struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	RecipeID    uuid.UUID `gorm:"index" json:"recipe_id"`
	Instruction string    `gorm:"type:text" json:"instruction"`
	ImageURL    string    `json:"image_url"`
	Position    int       `json:"position"`

	Timestamp
}

type SavedRecipe struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_saved_user_recipe" json:"user_id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_saved_user_recipe" json:"recipe_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	User   *User   `gorm:"foreignKey:UserID"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID"`
}
