package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tiktrack/tiktrack_backend/models"
	"github.com/tiktrack/tiktrack_backend/models/reports"
	"github.com/tiktrack/tiktrack_backend/utils"
)

func CreateDailyReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewDailyReport
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		report, err := models.CreateDailyReport(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, report)
	}
}

func ListDailyReports() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := skipLimit(c)
		dailyReports, err := models.GetDailyReports(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dailyReports)
	}
}

func UpdateDailyReport() gin.HandlerFunc {
	return func(c *gin.Context) {
		reportId, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid report id"})
			return
		}
		var input models.UpdateDailyReportInput
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		report, err := models.UpdateDailyReport(c.Request.Context(), reportId, &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, report)
	}
}

func ExportReportsPdf() gin.HandlerFunc {
	return func(c *gin.Context) {
		startDate, err := utils.ParseDate(c.Query("start_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		endDate, err := utils.ParseDate(c.Query("end_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		if err := reports.ExportPdf(c.Request.Context(), c.Writer, startDate, endDate); err != nil {
			respondError(c, err)
		}
	}
}

func ExportReportsExcel() gin.HandlerFunc {
	return func(c *gin.Context) {
		startDate, err := utils.ParseDate(c.Query("start_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "start_date must be YYYY-MM-DD"})
			return
		}
		endDate, err := utils.ParseDate(c.Query("end_date"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "end_date must be YYYY-MM-DD"})
			return
		}
		if err := reports.ExportExcel(c.Request.Context(), c.Writer, startDate, endDate); err != nil {
			respondError(c, err)
		}
	}
}
