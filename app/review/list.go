package review

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/internal/query"
	"bitwise74/company-api/pkg/hateoas"
	"bitwise74/company-api/pkg/request"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// ReviewList returns a page of the reviews of one company. An unknown
// company simply has no reviews.
func ReviewList(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	rank, ok := request.ParamInt(c, "rank")
	if !ok {
		return
	}

	p, err := query.Parse(c, viper.GetInt("pagination.reviews_page_size"), sorting)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	base := d.DB.
		WithContext(c.Request.Context()).
		Model(model.Review{}).
		Joins("JOIN users ON users.id = reviews.user_id").
		Where("reviews.company_rank = ?", rank).
		Scopes(query.Search(p.Search, "LOWER(users.username)", "reviews.normalized_content"))

	reviews := []model.Review{}

	total, err := query.List(base, sorting, p, &reviews, withAuthor)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to list reviews", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":       p.Page,
		"pageSize":   p.PageSize,
		"totalCount": total,
		"reviews":    reviews,
		"links":      hateoas.Build(c.Request.URL.Path, p.Page, p.PageSize, total, p.Values()),
	})
}
