// Package request contains helpers shared by handlers to read and
// validate incoming requests
package request

import (
	"bitwise74/company-api/pkg/middleware"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// UseJSONFieldNames makes validation errors refer to fields by their
// JSON name instead of the Go one
func UseJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
}

// BindJSON decodes and validates the JSON body into dst. When it fails
// the error response is already written and false is returned.
func BindJSON(c *gin.Context, dst any) bool {
	requestID := c.GetString("requestID")

	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	if middleware.IsBodyTooLarge(err) {
		c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":     "Request body size exceeds limit",
			"requestID": requestID,
		})
		return false
	}

	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     Describe(vErrs),
			"requestID": requestID,
		})
		return false
	}

	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"error":     "Malformed or invalid JSON request body",
		"requestID": requestID,
	})

	zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
	return false
}

// Describe turns validation failures into one readable sentence
func Describe(errs validator.ValidationErrors) string {
	msgs := make([]string, 0, len(errs))

	for _, fe := range errs {
		field := lowerFirst(fe.Field())

		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s characters long", field, fe.Param()))
		case "max":
			msgs = append(msgs, fmt.Sprintf("%s must be at most %s characters long", field, fe.Param()))
		case "url":
			msgs = append(msgs, field+" must be a valid URL")
		case "gte":
			msgs = append(msgs, fmt.Sprintf("%s must be at least %s", field, fe.Param()))
		default:
			msgs = append(msgs, field+" is invalid")
		}
	}

	return strings.Join(msgs, ", ")
}

// ParamInt reads a positive integer path parameter. When it is missing or
// malformed the error response is already written and false is returned.
func ParamInt(c *gin.Context, name string) (int, bool) {
	n, err := strconv.Atoi(c.Param(name))
	if err != nil || n < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"error":     name + " must be a positive integer",
			"requestID": c.GetString("requestID"),
		})
		return 0, false
	}

	return n, true
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToLower(s[:1]) + s[1:]
}
