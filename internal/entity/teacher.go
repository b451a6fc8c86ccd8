package entity

import "time"

// Teacher is a row in the external account directory. This service only
// reads it; registration and profile changes happen elsewhere.
type Teacher struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex" json:"username"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     string    `gorm:"uniqueIndex" json:"email"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
