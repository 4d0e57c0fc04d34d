package migration

import (
	"errors"
	"fmt"
	"log"

	"recipehub/domain"
	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	db.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")

	if err := db.AutoMigrate(&entities.User{}); err != nil {
		log.Fatalf("Error migrating user database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Subscription{}); err != nil {
		log.Fatalf("Error migrating subscription database: %v", err)
		return err
	}
	if err := db.AutoMigrate(
		&entities.Food{},
		&entities.Unit{},
		&entities.Category{},
		&entities.NationalCuisine{},
	); err != nil {
		log.Fatalf("Error migrating reference database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.Recipe{}, &entities.Ingredient{}, &entities.Direction{}); err != nil {
		log.Fatalf("Error migrating recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.SavedRecipe{}); err != nil {
		log.Fatalf("Error migrating saved recipe database: %v", err)
		return err
	}
	if err := db.AutoMigrate(&entities.MembershipTransaction{}); err != nil {
		log.Fatalf("Error migrating membership database: %v", err)
		return err
	}

	if err := seedBucketCategories(db); err != nil {
		log.Fatalf("Error seeding categories: %v", err)
		return err
	}

	fmt.Println("Database migration complete")
	return nil
}

// seedBucketCategories makes sure the three meal categories the homepage
// recommendations filter on always exist.
func seedBucketCategories(db *gorm.DB) error {
	buckets := []string{
		domain.TimeBucketBreakfast,
		domain.TimeBucketLunch,
		domain.TimeBucketDinner,
	}

	for _, name := range buckets {
		var category entities.Category
		err := db.Where("name = ?", name).First(&category).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		if err := db.Create(&entities.Category{ID: uuid.New(), Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}
