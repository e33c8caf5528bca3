package models

import "github.com/google/uuid"

// UserProfile holds the optional contact details for a user. The user ID is
// both primary key and foreign key, so at most one profile exists per user.
type UserProfile struct {
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey;not null"`
	FullName string    `json:"full_name" gorm:"type:varchar(200);not null"`
	Phone    string    `json:"phone" gorm:"type:varchar(50)"`
	Address  string    `json:"address" gorm:"type:text"`

	User User `json:"user,omitempty" gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:CASCADE"`
}
