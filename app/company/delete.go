package company

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/request"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CompanyDelete removes a company together with all of its reviews
func CompanyDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	rank, ok := request.ParamInt(c, "rank")
	if !ok {
		return
	}

	var deleted int64

	err := d.DB.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		// Not every store enforces the foreign key cascade
		err := tx.
			Where("company_rank = ?", rank).
			Delete(model.Review{}).
			Error
		if err != nil {
			return err
		}

		r := tx.Where("rank = ?", rank).Delete(model.Company{})
		deleted = r.RowsAffected
		return r.Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete company", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if deleted == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Company not found",
			"requestID": requestID,
		})
		return
	}

	c.Status(http.StatusNoContent)
}
