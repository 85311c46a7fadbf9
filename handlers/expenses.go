package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiktrack/tiktrack_backend/models"
)

func CreateExpense() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewExpense
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		expense, err := models.CreateExpense(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, expense)
	}
}

func ListExpenses() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := skipLimit(c)
		expenses, err := models.GetExpenses(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
	}
}

func CreateSale() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewSale
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		sale, err := models.ProcessSale(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, sale)
	}
}
