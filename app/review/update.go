package review

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/pkg/request"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ReviewUpdate replaces the content of a review. Only its author may do so.
func ReviewUpdate(c *gin.Context, d *internal.Deps) {
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

	var data reviewBody
	if !request.BindJSON(c, &data) {
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
				"error":     "You can only edit your own reviews",
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

	r.Content = data.Content

	if err := d.DB.WithContext(c.Request.Context()).Save(r).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update review", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, r)
}
