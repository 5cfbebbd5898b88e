package review

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/request"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewCreate adds a review written by the authenticated caller
func ReviewCreate(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	rank, ok := request.ParamInt(c, "rank")
	if !ok {
		return
	}

	var data reviewBody
	if !request.BindJSON(c, &data) {
		return
	}

	exists, err := companyExists(c.Request.Context(), d.DB, rank)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to check if company exists", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     errCompanyNotFound.Error(),
			"requestID": requestID,
		})
		return
	}

	r := model.Review{
		UserID:      userID,
		CompanyRank: rank,
		Content:     data.Content,
	}

	if err := d.DB.WithContext(c.Request.Context()).Create(&r).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create review", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Header("Location", c.Request.URL.Path+"/"+strconv.FormatUint(uint64(r.ID), 10))
	c.JSON(http.StatusCreated, r)
}
