package model

import (
	"strings"

	"gorm.io/gorm"
)

// Company is a single entry of the companies list. Rank is assigned by
// whoever creates the row and is never generated by the database.
//
// The metric columns are kept as text because the source data mixes
// units and separators ("10M", "100%", "1,200").
type Company struct {
	Rank            int    `gorm:"primaryKey;autoIncrement:false" json:"rank"`
	Profile         string `json:"profile"`
	Name            string `gorm:"index;not null" json:"name"`
	NormalizedName  string `gorm:"index" json:"-"`
	URL             string `json:"url"`
	State           string `json:"state"`
	City            string `json:"city"`
	Revenue         string `json:"revenue"`
	GrowthPercent   string `json:"growthPercent"`
	Industry        string `json:"industry"`
	Workers         string `json:"workers"`
	PreviousWorkers string `json:"previousWorkers"`
	Founded         *int   `json:"founded"`
	YrsOnList       *int   `json:"yrsOnList"`
	Metro           string `json:"metro"`
}

// BeforeSave keeps the search column in step with the name. Lower casing
// happens here because not every store folds non-ASCII letters.
func (c *Company) BeforeSave(*gorm.DB) error {
	c.NormalizedName = strings.ToLower(c.Name)
	return nil
}

// CompanySummary is the public projection used by the plain list endpoint
type CompanySummary struct {
	Rank  int    `json:"rank"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	State string `json:"state"`
	City  string `json:"city"`
}
