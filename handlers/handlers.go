package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
)

// respondError maps an error's kind to a status code. Unclassified errors
// are logged and surface as opaque 500s.
func respondError(c *gin.Context, err error) {
	switch utils.KindOf(err) {
	case utils.ErrorKindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": errMessage(err)})
	case utils.ErrorKindAuthorization:
		c.JSON(http.StatusUnauthorized, gin.H{"error": errMessage(err)})
	case utils.ErrorKindNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": errMessage(err)})
	case utils.ErrorKindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": errMessage(err)})
	default:
		config.LogError(config.GetLogger(), "handlers", "respondError", c.FullPath(), nil, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func errMessage(err error) string {
	var appErr *utils.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

// respondBindError distinguishes field validation failures from malformed
// bodies.
func respondBindError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ProcessValidationErrors(err)})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

func intQuery(c *gin.Context, key string, def int) int {
	v := c.Query(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func skipLimit(c *gin.Context) (int, int) {
	return intQuery(c, "skip", 0), intQuery(c, "limit", 100)
}
