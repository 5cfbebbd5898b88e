package model

import (
	"strings"

	"gorm.io/gorm"
)

type Review struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      string `gorm:"index;size:21;not null" json:"userID"`
	CompanyRank int    `gorm:"index;not null" json:"companyRank"`
	Content     string `gorm:"not null" json:"content"`

	// Lower cased copy of Content used by search
	NormalizedContent string `json:"-"`

	// Dependent rows go away together with their author or company
	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Company *Company `gorm:"foreignKey:CompanyRank;references:Rank;constraint:OnDelete:CASCADE" json:"-"`
}

func (r *Review) BeforeSave(*gorm.DB) error {
	r.NormalizedContent = strings.ToLower(r.Content)
	return nil
}
