package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiktrack/tiktrack_backend/models"
	"github.com/tiktrack/tiktrack_backend/utils"
)

// Dashboard returns daily stats when ?date= is given, lifetime otherwise.
func Dashboard() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.Query("date"); raw != "" {
			date, err := utils.ParseDate(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
				return
			}
			stats, err := models.GetDashboardStats(c.Request.Context(), &date)
			if err != nil {
				respondError(c, err)
				return
			}
			c.JSON(http.StatusOK, stats)
			return
		}

		stats, err := models.GetDashboardStats(c.Request.Context(), nil)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

func History() gin.HandlerFunc {
	return func(c *gin.Context) {
		days := intQuery(c, "days", 30)
		history, err := models.GetSalesHistory(c.Request.Context(), days)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, history)
	}
}

func OwnerProfits() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := models.GetOwnerProfitSummary(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func TopPayers() gin.HandlerFunc {
	return func(c *gin.Context) {
		limit := intQuery(c, "limit", 5)
		payers, err := models.GetTopExpensePayers(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, payers)
	}
}

func ExpensesLiability() gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := models.GetExpenseLiabilitySummary(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, summary)
	}
}

func ProductPerformance() gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := models.GetProductSalesStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
