// Package model defines database models
package model

import "time"

type User struct {
	ID                 string    `gorm:"primaryKey;size:21" json:"id"`
	Username           string    `gorm:"uniqueIndex;size:64;not null" json:"username"`
	NormalizedUsername string    `gorm:"uniqueIndex;size:64;not null" json:"-"`
	Email              string    `gorm:"size:256" json:"email,omitempty"`
	NormalizedEmail    string    `gorm:"index;size:256" json:"-"`
	PasswordHash       string    `gorm:"not null" json:"-"`
	SecurityStamp      string    `gorm:"size:36" json:"-"`
	ConcurrencyStamp   string    `gorm:"size:36" json:"-"`
	CreatedAt          time.Time `gorm:"not null" json:"createdAt"`
}
