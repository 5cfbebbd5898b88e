// Package user contains the account endpoints
package user

import (
	"bitwise74/company-api/internal"
	"bitwise74/company-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Login       string `json:"login"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	RepPassword string `json:"repPassword"`
}

func UserRegister(c *gin.Context, d *internal.Deps) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Debug("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user, err := d.Auth.Register(c.Request.Context(), service.RegisterInput{
		Username:         data.Login,
		Email:            data.Email,
		Password:         data.Password,
		RepeatedPassword: data.RepPassword,
	})
	if err != nil {
		var vErr *service.ValidationError

		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     "Passwords do not match",
				"requestID": requestID,
			})
		case errors.As(err, &vErr):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     vErr.Error(),
				"field":     vErr.Field,
				"requestID": requestID,
			})
		case errors.Is(err, service.ErrUsernameTaken):
			c.JSON(http.StatusConflict, gin.H{
				"error":     "This login is already taken. Please log in or pick a different one",
				"requestID": requestID,
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to register user", zap.Error(err), zap.String("requestID", requestID))
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"userID":   user.ID,
		"username": user.Username,
	})
}
