package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tiktrack/tiktrack_backend/models"
)

func CreateOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewOwner
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		owner, err := models.CreateOwner(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, owner)
	}
}

func ListOwners() gin.HandlerFunc {
	return func(c *gin.Context) {
		owners, err := models.GetOwners(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, owners)
	}
}

func CreateOwnerPayment() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewOwnerPayment
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		entry, err := models.CreateOwnerPayment(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, entry)
	}
}

func ListOwnerPayments() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := skipLimit(c)
		entries, err := models.GetOwnerPayments(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, entries)
	}
}

func SetProductEquity() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner id"})
			return
		}
		var input models.NewProductEquity
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		equity, err := models.SetProductEquity(c.Request.Context(), ownerId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, equity)
	}
}

func GetOwnerBalance() gin.HandlerFunc {
	return func(c *gin.Context) {
		ownerId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid owner id"})
			return
		}
		balance, err := models.GetOwnerBalance(c.Request.Context(), ownerId)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, balance)
	}
}
