package review

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/pkg/request"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewDelete removes a review. Only its author may do so.
func ReviewDelete(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	rank, ok := request.ParamInt(c, "rank")
	if !ok {
		return
	}

	reviewID, ok := request.ParamInt(c, "reviewID")
	if !ok {
		return
	}

	r, err := ownedReview(c.Request.Context(), d.DB, rank, reviewID, userID)
	if err != nil {
		switch {
		case errors.Is(err, errReviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Review not found",
				"requestID": requestID,
			})
		case errors.Is(err, errNotAuthor):
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "You can only delete your own reviews",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to fetch review", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	if err := d.DB.WithContext(c.Request.Context()).Delete(&model.Review{}, r.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to delete review", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.Status(http.StatusNoContent)
}
