package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username   string    `gorm:"uniqueIndex" json:"username"`
	Email      string    `gorm:"uniqueIndex" json:"email"`
	Password   string    `json:"-"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	AvatarURL  string    `json:"avatar_url,omitempty"`
	IsActive   bool      `gorm:"default:true" json:"is_active"`
	IsStaff    bool      `gorm:"default:false" json:"-"`
	IsPremium  bool      `gorm:"default:false" json:"is_premium"`
	IsVerified bool      `gorm:"default:false" json:"is_verified"`
	LastLogin  time.Time `gorm:"type:timestamp" json:"-"`

	Timestamp
}

type Subscription struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	SubscriberID uuid.UUID `gorm:"uniqueIndex:idx_subscriber_author" json:"subscriber_id"`
	AuthorID     uuid.UUID `gorm:"uniqueIndex:idx_subscriber_author" json:"author_id"`
	CreatedAt    time.Time `gorm:"type:timestamp" json:"created_at"`

	Subscriber *User `gorm:"foreignKey:SubscriberID"`
	Author     *User `gorm:"foreignKey:AuthorID"`
}
