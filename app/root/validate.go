package root

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Validate only runs behind the JWT middleware, so reaching it means the
// token is good
func Validate(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"userID":   c.GetString("userID"),
		"username": c.GetString("username"),
	})
}
