package membership

import (
	"context"

	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	MembershipRepository interface {
		CreateTransaction(ctx context.Context, transaction *entities.MembershipTransaction) error
		GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.MembershipTransaction, error)
		UpdateTransaction(ctx context.Context, transaction *entities.MembershipTransaction) error
	}

	membershipRepository struct {
		db *gorm.DB
	}
)

func NewMembershipRepository(db *gorm.DB) MembershipRepository {
	return &membershipRepository{db: db}
}

func (r *membershipRepository) CreateTransaction(ctx context.Context, transaction *entities.MembershipTransaction) error {
	return r.db.WithContext(ctx).Create(transaction).Error
}

func (r *membershipRepository) GetTransactionByOrderID(ctx context.Context, orderID string) (*entities.MembershipTransaction, error) {
	var transaction entities.MembershipTransaction
	if err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&transaction).Error; err != nil {
		return nil, err
	}
	return &transaction, nil
}

func (r *membershipRepository) UpdateTransaction(ctx context.Context, transaction *entities.MembershipTransaction) error {
	return r.db.WithContext(ctx).Save(transaction).Error
}
