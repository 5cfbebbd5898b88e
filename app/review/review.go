// Package review contains the endpoints for reviews nested under a company
package review

import (
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/internal/query"
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	errCompanyNotFound = errors.New("company not found")
	errReviewNotFound  = errors.New("review not found")
	errNotAuthor       = errors.New("not the author of the review")
)

var sorting = query.Sorting{
	Default: "id",
	Columns: map[string]clause.Column{
		"id":       {Table: "reviews", Name: "id"},
		"username": {Table: "users", Name: "username"},
		"content":  {Table: "reviews", Name: "content"},
	},
}

type reviewBody struct {
	Content string `json:"content" binding:"required,min=3,max=4000"`
}

// withAuthor preloads the public fields of the review's author
func withAuthor(db *gorm.DB) *gorm.DB {
	return db.Preload("User", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "username", "created_at")
	})
}

func companyExists(ctx context.Context, db *gorm.DB, rank int) (bool, error) {
	var exists bool

	err := db.WithContext(ctx).
		Model(model.Company{}).
		Select("count(*) > 0").
		Where("rank = ?", rank).
		Find(&exists).
		Error
	return exists, err
}

// ownedReview loads a review of the company and makes sure userID wrote it
func ownedReview(ctx context.Context, db *gorm.DB, rank, reviewID int, userID string) (*model.Review, error) {
	var r model.Review

	err := db.WithContext(ctx).
		Where("id = ? AND company_rank = ?", reviewID, rank).
		First(&r).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errReviewNotFound
		}

		return nil, err
	}

	if r.UserID != userID {
		return nil, errNotAuthor
	}

	return &r, nil
}
