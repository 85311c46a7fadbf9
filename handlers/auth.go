package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiktrack/tiktrack_backend/models"
	"github.com/tiktrack/tiktrack_backend/utils"
)

func Login() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.LoginInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		token, err := models.Login(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
	}
}

func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := utils.GetUserIdFromContext(c.Request.Context())
		if !ok {
			respondError(c, utils.NewAuthorizationError("unauthorized"))
			return
		}
		user, err := models.GetUser(c.Request.Context(), userId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	}
}

func ChangePassword() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := utils.GetUserIdFromContext(c.Request.Context())
		if !ok {
			respondError(c, utils.NewAuthorizationError("unauthorized"))
			return
		}
		var input models.ChangePasswordInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		if err := models.ChangePassword(c.Request.Context(), userId, &input); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
	}
}
