// Package company contains the endpoints of the companies list
package company

import (
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/internal/query"

	"gorm.io/gorm/clause"
)

var sorting = query.Sorting{
	Default: "rank",
	Columns: map[string]clause.Column{
		"rank":    {Name: "rank"},
		"name":    {Name: "name"},
		"city":    {Name: "city"},
		"state":   {Name: "state"},
		"workers": {Name: "workers"},
	},
}

// companyBody is accepted by both create and update. Rank is only read on
// create, where 0 lets the server pick the next free one.
type companyBody struct {
	Rank            int    `json:"rank" binding:"gte=0"`
	Profile         string `json:"profile"`
	Name            string `json:"name" binding:"required,max=256"`
	URL             string `json:"url" binding:"required,url"`
	State           string `json:"state" binding:"required"`
	City            string `json:"city" binding:"required"`
	Revenue         string `json:"revenue"`
	GrowthPercent   string `json:"growthPercent"`
	Industry        string `json:"industry"`
	Workers         string `json:"workers"`
	PreviousWorkers string `json:"previousWorkers"`
	Founded         *int   `json:"founded" binding:"omitempty,gte=0"`
	YrsOnList       *int   `json:"yrsOnList" binding:"omitempty,gte=0"`
	Metro           string `json:"metro"`
}

// apply copies every field of the body except the rank
func (b *companyBody) apply(c *model.Company) {
	c.Profile = b.Profile
	c.Name = b.Name
	c.URL = b.URL
	c.State = b.State
	c.City = b.City
	c.Revenue = b.Revenue
	c.GrowthPercent = b.GrowthPercent
	c.Industry = b.Industry
	c.Workers = b.Workers
	c.PreviousWorkers = b.PreviousWorkers
	c.Founded = b.Founded
	c.YrsOnList = b.YrsOnList
	c.Metro = b.Metro
}
