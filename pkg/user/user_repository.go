package user

import (
	"context"
	"errors"
	"time"

	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		GetUserByEmail(ctx context.Context, email string) (*entities.User, error)
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		UpdateUser(ctx context.Context, user *entities.User) error

		CreateSubscription(ctx context.Context, subscriberID, authorID string) error
		DeleteSubscription(ctx context.Context, subscriberID, authorID string) error
		GetSubscriptions(ctx context.Context, subscriberID string, limit int) ([]*entities.Subscription, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) CreateSubscription(ctx context.Context, subscriberID, authorID string) error {
	subscriberUUID, err := uuid.Parse(subscriberID)
	if err != nil {
		return err
	}

	authorUUID, err := uuid.Parse(authorID)
	if err != nil {
		return err
	}

	// Subscribing twice is a no-op
	var existing entities.Subscription
	if err := r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberUUID, authorUUID).
		First(&existing).Error; err == nil {
		return nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	subscription := entities.Subscription{
		ID:           uuid.New(),
		SubscriberID: subscriberUUID,
		AuthorID:     authorUUID,
		CreatedAt:    time.Now(),
	}

	return r.db.WithContext(ctx).Create(&subscription).Error
}

func (r *userRepository) DeleteSubscription(ctx context.Context, subscriberID, authorID string) error {
	return r.db.WithContext(ctx).
		Where("subscriber_id = ? AND author_id = ?", subscriberID, authorID).
		Delete(&entities.Subscription{}).Error
}

func (r *userRepository) GetSubscriptions(ctx context.Context, subscriberID string, limit int) ([]*entities.Subscription, error) {
	var subscriptions []*entities.Subscription
	query := r.db.WithContext(ctx).
		Preload("Author").
		Where("subscriber_id = ?", subscriberID).
		Order("created_at desc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&subscriptions).Error; err != nil {
		return nil, err
	}
	return subscriptions, nil
}
