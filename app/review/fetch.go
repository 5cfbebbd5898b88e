package review

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/request"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func ReviewFetch(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	rank, ok := request.ParamInt(c, "rank")
	if !ok {
		return
	}

	reviewID, ok := request.ParamInt(c, "reviewID")
	if !ok {
		return
	}

	var r model.Review

	err := d.DB.
		WithContext(c.Request.Context()).
		Scopes(withAuthor).
		Where("id = ? AND company_rank = ?", reviewID, rank).
		First(&r).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Review not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch review", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, r)
}
