package company

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/request"
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errRankTaken = errors.New("rank taken")

// CompanyCreate adds a company. Without a rank in the body it is placed
// right after the currently last company.
func CompanyCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data companyBody
	if !request.BindJSON(c, &data) {
		return
	}

	company := model.Company{Rank: data.Rank}
	data.apply(&company)

	assigned := company.Rank == 0

	err := insert(c.Request.Context(), d.DB, &company)
	if assigned && errors.Is(err, gorm.ErrDuplicatedKey) {
		// Another create took the same next rank first
		company.Rank = 0
		err = insert(c.Request.Context(), d.DB, &company)
	}

	if err != nil {
		switch {
		case assigned && errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "Couldn't assign a rank because of concurrent changes, please retry",
				"requestID": requestID,
			})
		case errors.Is(err, errRankTaken) || errors.Is(err, gorm.ErrDuplicatedKey):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "A company with this rank already exists",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to create company", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	zap.L().Debug("Company created", zap.Int("rank", company.Rank), zap.String("requestID", requestID))

	c.Header("Location", "/api/companies/"+strconv.Itoa(company.Rank))
	c.JSON(http.StatusCreated, company)
}

// insert stores company, giving it the rank after the current last one
// when it has none
func insert(ctx context.Context, db *gorm.DB, company *model.Company) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if company.Rank == 0 {
			var maxRank int
			if err := tx.Model(model.Company{}).Select("COALESCE(MAX(rank), 0)").Scan(&maxRank).Error; err != nil {
				return err
			}

			company.Rank = maxRank + 1
		} else {
			var taken bool
			if err := tx.Model(model.Company{}).Select("count(*) > 0").Where("rank = ?", company.Rank).Find(&taken).Error; err != nil {
				return err
			}

			if taken {
				return errRankTaken
			}
		}

		return tx.Create(company).Error
	})
}
