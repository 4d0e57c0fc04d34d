package recipe

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/reference"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// The entity tags carry a postgres uuid default sqlite cannot execute, so the
// test schema is created by hand instead of AutoMigrate. Ids are always set by
// the services, the defaults are never relied on.
var testSchema = []string{
	`CREATE TABLE users (
		id text PRIMARY KEY,
		username text, email text, password text,
		first_name text, last_name text, avatar_url text,
		is_active boolean DEFAULT true, is_staff boolean DEFAULT false,
		is_premium boolean DEFAULT false, is_verified boolean DEFAULT false,
		last_login datetime, created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE subscriptions (
		id text PRIMARY KEY,
		subscriber_id text, author_id text, created_at datetime,
		UNIQUE (subscriber_id, author_id)
	)`,
	`CREATE TABLE foods (
		id text PRIMARY KEY, name text UNIQUE,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE units (
		id text PRIMARY KEY, name text UNIQUE, abbreviation text,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE categories (
		id text PRIMARY KEY, name text UNIQUE,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE national_cuisines (
		id text PRIMARY KEY, name text UNIQUE,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE recipes (
		id text PRIMARY KEY,
		author_id text, title text, description text,
		duration_minutes integer, category_id text, cuisine_id text,
		image_url text, comment text,
		is_draft boolean DEFAULT true, pub_date datetime,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE ingredients (
		id text PRIMARY KEY,
		recipe_id text, food_id text, unit_id text, amount integer,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE directions (
		id text PRIMARY KEY,
		recipe_id text, instruction text, image_url text, position integer,
		created_at datetime, updated_at datetime
	)`,
	`CREATE TABLE saved_recipes (
		id text PRIMARY KEY,
		user_id text, recipe_id text, created_at datetime,
		UNIQUE (user_id, recipe_id)
	)`,
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database handle: %v", err)
	}
	// One connection, or every pooled connection gets its own :memory: db.
	sqlDB.SetMaxOpenConns(1)

	for _, stmt := range testSchema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}
	return db
}

type fakeS3 struct{}

func (fakeS3) UploadFile(fileName string, file *multipart.FileHeader, folder string, allowedExt ...string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	return fmt.Sprintf("%s/%s%s", folder, fileName, ext), nil
}

func (fakeS3) UpdateFile(objectKey string, file *multipart.FileHeader, allowedExt ...string) (string, error) {
	return objectKey, nil
}

func (fakeS3) DeleteFile(objectKey string) error { return nil }

func (fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://cdn.test/" + objectKey
}

type testFixture struct {
	author   *entities.User
	category *entities.Category
	cuisine  *entities.NationalCuisine
	food     *entities.Food
	unit     *entities.Unit
}

func seedFixture(t *testing.T, db *gorm.DB) testFixture {
	t.Helper()

	fixture := testFixture{
		author: &entities.User{
			ID:       uuid.New(),
			Username: "chef",
			Email:    "chef@example.com",
			IsActive: true,
		},
		category: &entities.Category{ID: uuid.New(), Name: "breakfast"},
		cuisine:  &entities.NationalCuisine{ID: uuid.New(), Name: "indonesian"},
		food:     &entities.Food{ID: uuid.New(), Name: "rice"},
		unit:     &entities.Unit{ID: uuid.New(), Name: "gram", Abbreviation: "g"},
	}

	for _, row := range []any{fixture.author, fixture.category, fixture.cuisine, fixture.food, fixture.unit} {
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("failed to seed fixture: %v", err)
		}
	}
	return fixture
}

func newTestRecipeService(db *gorm.DB, now time.Time) RecipeService {
	return &recipeService{
		recipeRepository:    NewRecipeRepository(db),
		referenceRepository: reference.NewReferenceRepository(db),
		s3:                  fakeS3{},
		now:                 func() time.Time { return now },
	}
}

func formRequest(fixture testFixture, directions int) domain.RecipeFormRequest {
	req := domain.RecipeFormRequest{
		Title:       "Nasi Goreng",
		Description: "Fried rice the way my grandmother made it.",
		Minutes:     "30",
		CategoryID:  fixture.category.ID.String(),
		CuisineID:   fixture.cuisine.ID.String(),
		Image:       &multipart.FileHeader{Filename: "cover.jpg"},
		Ingredients: []domain.IngredientOp{
			{FoodID: fixture.food.ID.String(), UnitID: fixture.unit.ID.String(), Amount: "200"},
		},
	}
	for i := 0; i < directions; i++ {
		req.Directions = append(req.Directions, domain.DirectionOp{
			Instruction: fmt.Sprintf("Step number %d", i+1),
			Position:    fmt.Sprintf("%d", i),
			Image:       &multipart.FileHeader{Filename: fmt.Sprintf("step-%d.jpg", i+1)},
		})
	}
	return req
}

func rowCount(t *testing.T, db *gorm.DB, model any) int64 {
	t.Helper()
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	return count
}

func TestCreateRecipePersistsAggregate(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	result, err := service.Create(context.Background(), formRequest(fixture, 2), fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Errors != nil {
		t.Fatalf("unexpected validation errors: %+v", result.Errors)
	}
	if result.Recipe == nil {
		t.Fatal("expected recipe detail in result")
	}
	if !result.Recipe.IsDraft {
		t.Error("expected a draft when publish was not requested")
	}
	if !strings.HasSuffix(result.RedirectTo, "/edit") {
		t.Errorf("expected draft redirect to the edit page, got %q", result.RedirectTo)
	}
	if got := rowCount(t, db, &entities.Recipe{}); got != 1 {
		t.Errorf("expected 1 recipe row, got %d", got)
	}
	if got := rowCount(t, db, &entities.Ingredient{}); got != 1 {
		t.Errorf("expected 1 ingredient row, got %d", got)
	}
	if got := rowCount(t, db, &entities.Direction{}); got != 2 {
		t.Errorf("expected 2 direction rows, got %d", got)
	}
	if len(result.Recipe.Directions) != 2 || result.Recipe.Directions[0].Step != 0 {
		t.Errorf("unexpected direction steps: %+v", result.Recipe.Directions)
	}
}

func TestCreateRecipeInvalidFormWritesNothing(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	req := formRequest(fixture, 1)
	req.Title = ""
	req.Minutes = "abc"

	result, err := service.Create(context.Background(), req, fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if result.Errors == nil {
		t.Fatal("expected validation errors")
	}
	if len(result.Errors.Recipe["title"]) == 0 || len(result.Errors.Recipe["minutes"]) == 0 {
		t.Errorf("expected title and minutes errors, got %+v", result.Errors.Recipe)
	}
	if result.Submitted == nil || result.Submitted.Minutes != "abc" {
		t.Errorf("expected the submission echoed back, got %+v", result.Submitted)
	}
	if got := rowCount(t, db, &entities.Recipe{}); got != 0 {
		t.Errorf("expected no recipe rows after a rejected submission, got %d", got)
	}
	if got := rowCount(t, db, &entities.Ingredient{}); got != 0 {
		t.Errorf("expected no ingredient rows after a rejected submission, got %d", got)
	}
}

func TestCreateRecipeUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	req := formRequest(fixture, 1)
	req.CategoryID = uuid.NewString()

	if _, err := service.Create(context.Background(), req, fixture.author.ID.String()); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestUpdateRecipePublishDateSetOnce(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	authorID := fixture.author.ID.String()

	firstPublish := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	service := newTestRecipeService(db, firstPublish)

	created, err := service.Create(context.Background(), formRequest(fixture, 1), authorID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	recipeID := created.Recipe.ID

	updateReq := formRequest(fixture, 0)
	updateReq.Image = nil
	updateReq.Ingredients = nil
	updateReq.Publish = true

	if _, err := service.Update(context.Background(), recipeID, updateReq, authorID); err != nil {
		t.Fatalf("first publish failed: %v", err)
	}

	var published entities.Recipe
	if err := db.First(&published, "id = ?", recipeID).Error; err != nil {
		t.Fatalf("failed to load recipe: %v", err)
	}
	if published.IsDraft {
		t.Error("expected recipe to leave draft state on publish")
	}
	if published.PubDate == nil || !published.PubDate.Equal(firstPublish) {
		t.Fatalf("expected pub date %v, got %v", firstPublish, published.PubDate)
	}

	// Publishing again must not move the timestamp.
	service = newTestRecipeService(db, firstPublish.Add(48*time.Hour))
	if _, err := service.Update(context.Background(), recipeID, updateReq, authorID); err != nil {
		t.Fatalf("second publish failed: %v", err)
	}

	var republished entities.Recipe
	if err := db.First(&republished, "id = ?", recipeID).Error; err != nil {
		t.Fatalf("failed to reload recipe: %v", err)
	}
	if republished.PubDate == nil || !republished.PubDate.Equal(firstPublish) {
		t.Errorf("expected pub date to stay %v, got %v", firstPublish, republished.PubDate)
	}
}

func TestUpdateRecipeOnlyAuthor(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	created, err := service.Create(context.Background(), formRequest(fixture, 1), fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := formRequest(fixture, 0)
	req.Image = nil
	if _, err := service.Update(context.Background(), created.Recipe.ID, req, uuid.NewString()); !errors.Is(err, domain.ErrUnauthorizedRecipeAccess) {
		t.Fatalf("expected ErrUnauthorizedRecipeAccess, got %v", err)
	}
}

func TestDraftVisibleOnlyToAuthor(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	created, err := service.Create(context.Background(), formRequest(fixture, 1), fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	recipeID := created.Recipe.ID

	if _, err := service.BuildRecipeDetailContext(context.Background(), recipeID, uuid.NewString()); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound for a stranger, got %v", err)
	}
	if _, err := service.BuildRecipeDetailContext(context.Background(), recipeID, ""); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Errorf("expected ErrRecipeNotFound for anonymous, got %v", err)
	}

	detail, err := service.BuildRecipeDetailContext(context.Background(), recipeID, fixture.author.ID.String())
	if err != nil {
		t.Fatalf("expected the author to see the draft, got %v", err)
	}
	if !detail.IsDraft {
		t.Error("expected draft flag on the detail")
	}
}

func TestSaveRecipeIdempotent(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	req := formRequest(fixture, 1)
	req.Publish = true
	created, err := service.Create(context.Background(), req, fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	recipeID := created.Recipe.ID
	readerID := uuid.New()
	reader := &entities.User{ID: readerID, Username: "reader", Email: "reader@example.com", IsActive: true}
	if err := db.Create(reader).Error; err != nil {
		t.Fatalf("failed to seed reader: %v", err)
	}

	for i := 0; i < 2; i++ {
		if _, err := service.CreateSaved(context.Background(), readerID.String(), recipeID); err != nil {
			t.Fatalf("save %d failed: %v", i+1, err)
		}
	}
	if got := rowCount(t, db, &entities.SavedRecipe{}); got != 1 {
		t.Errorf("expected 1 saved row after double save, got %d", got)
	}

	saved, err := service.IsSaved(context.Background(), readerID.String(), recipeID)
	if err != nil || !saved {
		t.Errorf("expected recipe to be saved, got %v %v", saved, err)
	}

	for i := 0; i < 2; i++ {
		if _, err := service.DeleteSaved(context.Background(), readerID.String(), recipeID); err != nil {
			t.Fatalf("unsave %d failed: %v", i+1, err)
		}
	}
	if got := rowCount(t, db, &entities.SavedRecipe{}); got != 0 {
		t.Errorf("expected 0 saved rows after double unsave, got %d", got)
	}
}

func TestSaveRecipeRequiresPublished(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	created, err := service.Create(context.Background(), formRequest(fixture, 1), fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := service.CreateSaved(context.Background(), uuid.NewString(), created.Recipe.ID); !errors.Is(err, domain.ErrRecipeNotFound) {
		t.Fatalf("expected ErrRecipeNotFound for a draft, got %v", err)
	}
}

func TestDirectionsRenumberedAfterDelete(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	authorID := fixture.author.ID.String()
	service := newTestRecipeService(db, time.Now())

	created, err := service.Create(context.Background(), formRequest(fixture, 3), authorID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	recipeID := created.Recipe.ID

	var middle entities.Direction
	if err := db.First(&middle, "recipe_id = ? AND position = ?", recipeID, 1).Error; err != nil {
		t.Fatalf("failed to load middle direction: %v", err)
	}

	req := formRequest(fixture, 0)
	req.Image = nil
	req.Ingredients = nil
	req.Directions = []domain.DirectionOp{{ID: middle.ID.String(), Delete: true}}

	if _, err := service.Update(context.Background(), recipeID, req, authorID); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var remaining []entities.Direction
	if err := db.Order("position asc").Find(&remaining, "recipe_id = ?", recipeID).Error; err != nil {
		t.Fatalf("failed to load directions: %v", err)
	}
	if len(remaining) != 2 {
		t.Fatalf("expected 2 directions, got %d", len(remaining))
	}
	for i, direction := range remaining {
		if direction.Position != i {
			t.Errorf("expected position %d, got %d", i, direction.Position)
		}
	}
	if remaining[0].Instruction != "Step number 1" || remaining[1].Instruction != "Step number 3" {
		t.Errorf("unexpected surviving steps: %q %q", remaining[0].Instruction, remaining[1].Instruction)
	}
}

func TestUpdateDirectionKeepsStoredImage(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	authorID := fixture.author.ID.String()
	service := newTestRecipeService(db, time.Now())

	created, err := service.Create(context.Background(), formRequest(fixture, 1), authorID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	recipeID := created.Recipe.ID

	var stored entities.Direction
	if err := db.First(&stored, "recipe_id = ?", recipeID).Error; err != nil {
		t.Fatalf("failed to load direction: %v", err)
	}
	if stored.ImageURL == "" {
		t.Fatal("expected the created step to carry an image")
	}

	req := formRequest(fixture, 0)
	req.Image = nil
	req.Ingredients = nil
	req.Directions = []domain.DirectionOp{
		{ID: stored.ID.String(), Instruction: "Stir harder", Position: "0"},
	}

	if _, err := service.Update(context.Background(), recipeID, req, authorID); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	var updated entities.Direction
	if err := db.First(&updated, "id = ?", stored.ID).Error; err != nil {
		t.Fatalf("failed to reload direction: %v", err)
	}
	if updated.Instruction != "Stir harder" {
		t.Errorf("expected instruction to change, got %q", updated.Instruction)
	}
	if updated.ImageURL != stored.ImageURL {
		t.Errorf("expected stored image %q to survive, got %q", stored.ImageURL, updated.ImageURL)
	}
	if !updated.CreatedAt.Equal(stored.CreatedAt) {
		t.Errorf("expected created_at to survive, got %v want %v", updated.CreatedAt, stored.CreatedAt)
	}
}

func TestUpdateRejectsForeignChildIDs(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	victim, err := service.Create(context.Background(), formRequest(fixture, 1), fixture.author.ID.String())
	if err != nil {
		t.Fatalf("victim create failed: %v", err)
	}
	var victimDirection entities.Direction
	if err := db.First(&victimDirection, "recipe_id = ?", victim.Recipe.ID).Error; err != nil {
		t.Fatalf("failed to load victim direction: %v", err)
	}
	var victimIngredient entities.Ingredient
	if err := db.First(&victimIngredient, "recipe_id = ?", victim.Recipe.ID).Error; err != nil {
		t.Fatalf("failed to load victim ingredient: %v", err)
	}

	attacker := &entities.User{ID: uuid.New(), Username: "attacker", Email: "attacker@example.com", IsActive: true}
	if err := db.Create(attacker).Error; err != nil {
		t.Fatalf("failed to seed attacker: %v", err)
	}
	owned, err := service.Create(context.Background(), formRequest(fixture, 1), attacker.ID.String())
	if err != nil {
		t.Fatalf("attacker create failed: %v", err)
	}

	// A direction op naming another recipe's row must not touch it.
	req := formRequest(fixture, 0)
	req.Image = nil
	req.Ingredients = nil
	req.Directions = []domain.DirectionOp{
		{ID: victimDirection.ID.String(), Instruction: "stolen", Position: "0"},
	}
	if _, err := service.Update(context.Background(), owned.Recipe.ID, req, attacker.ID.String()); !errors.Is(err, domain.ErrDirectionNotFound) {
		t.Fatalf("expected ErrDirectionNotFound, got %v", err)
	}

	req = formRequest(fixture, 0)
	req.Image = nil
	req.Directions = nil
	req.Ingredients = []domain.IngredientOp{
		{ID: victimIngredient.ID.String(), FoodID: fixture.food.ID.String(), UnitID: fixture.unit.ID.String()},
	}
	if _, err := service.Update(context.Background(), owned.Recipe.ID, req, attacker.ID.String()); !errors.Is(err, domain.ErrIngredientNotFound) {
		t.Fatalf("expected ErrIngredientNotFound, got %v", err)
	}

	var untouched entities.Direction
	if err := db.First(&untouched, "id = ?", victimDirection.ID).Error; err != nil {
		t.Fatalf("failed to reload victim direction: %v", err)
	}
	if untouched.RecipeID != victimDirection.RecipeID || untouched.Instruction != victimDirection.Instruction {
		t.Errorf("victim direction was modified: %+v", untouched)
	}
}

func TestImplicitPositionsAppendAfterExplicit(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	service := newTestRecipeService(db, time.Now())

	req := formRequest(fixture, 0)
	req.Directions = []domain.DirectionOp{
		{Instruction: "Garnish and serve", Image: &multipart.FileHeader{Filename: "step-a.jpg"}},
		{Instruction: "Fry the rice", Position: "2", Image: &multipart.FileHeader{Filename: "step-b.jpg"}},
	}

	created, err := service.Create(context.Background(), req, fixture.author.ID.String())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	var directions []entities.Direction
	if err := db.Order("position asc").Find(&directions, "recipe_id = ?", created.Recipe.ID).Error; err != nil {
		t.Fatalf("failed to load directions: %v", err)
	}
	if len(directions) != 2 {
		t.Fatalf("expected 2 directions, got %d", len(directions))
	}
	// The unpositioned step appends after every explicitly placed one.
	if directions[0].Instruction != "Fry the rice" || directions[1].Instruction != "Garnish and serve" {
		t.Errorf("unexpected order: %q %q", directions[0].Instruction, directions[1].Instruction)
	}
	for i, direction := range directions {
		if direction.Position != i {
			t.Errorf("expected position %d, got %d", i, direction.Position)
		}
	}
}

func TestDeleteRecipeRemovesChildren(t *testing.T) {
	db := newTestDB(t)
	fixture := seedFixture(t, db)
	authorID := fixture.author.ID.String()
	service := newTestRecipeService(db, time.Now())

	req := formRequest(fixture, 2)
	req.Publish = true
	created, err := service.Create(context.Background(), req, authorID)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	recipeID := created.Recipe.ID

	readerID := uuid.New()
	if err := db.Create(&entities.User{ID: readerID, Username: "reader", Email: "reader@example.com", IsActive: true}).Error; err != nil {
		t.Fatalf("failed to seed reader: %v", err)
	}
	if _, err := service.CreateSaved(context.Background(), readerID.String(), recipeID); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := service.Delete(context.Background(), recipeID, uuid.NewString()); !errors.Is(err, domain.ErrUnauthorizedRecipeAccess) {
		t.Fatalf("expected ErrUnauthorizedRecipeAccess for a stranger, got %v", err)
	}
	if err := service.Delete(context.Background(), recipeID, authorID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	for model, name := range map[any]string{
		&entities.Recipe{}:      "recipes",
		&entities.Ingredient{}:  "ingredients",
		&entities.Direction{}:   "directions",
		&entities.SavedRecipe{}: "saved recipes",
	} {
		if got := rowCount(t, db, model); got != 0 {
			t.Errorf("expected no %s left, got %d", name, got)
		}
	}
}
