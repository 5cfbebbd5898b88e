package company

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/request"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyUpdate replaces every field of a company but its rank
func CompanyUpdate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	rank, ok := request.ParamInt(c, "rank")
	if !ok {
		return
	}

	var data companyBody
	if !request.BindJSON(c, &data) {
		return
	}

	var company model.Company

	err := d.DB.
		WithContext(c.Request.Context()).
		Where("rank = ?", rank).
		First(&company).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Company with rank " + strconv.Itoa(rank) + " not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch company from db", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	data.apply(&company)

	if err := d.DB.WithContext(c.Request.Context()).Save(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update company", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, company)
}
