package middleware

import (
	"bitwise74/company-api/internal/model"
	"bitwise74/company-api/internal/service"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// NewJWTMiddleware rejects requests without a valid bearer token. On
// success the caller's identity is stored as userID and username.
func NewJWTMiddleware(d *gorm.DB, tokens *service.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetString("requestID")

		header := c.GetHeader("Authorization")
		scheme, tokenStr, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(tokenStr) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Missing bearer token",
				"requestID": requestID,
			})
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid or expired",
				"requestID": requestID,
			})

			zap.L().Debug("Rejected token", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		// Tokens outlive the account they were issued for if it goes away
		var exists bool
		err = d.WithContext(c.Request.Context()).
			Model(model.User{}).
			Select("count(*) > 0").
			Where("id = ?", claims.Subject).
			Find(&exists).
			Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to check if user exists", zap.Error(err), zap.String("requestID", requestID))
			return
		}

		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error":     "Authorization token invalid or expired",
				"requestID": requestID,
			})
			return
		}

		c.Set("userID", claims.Subject)
		c.Set("username", claims.Username)
		c.Next()
	}
}
