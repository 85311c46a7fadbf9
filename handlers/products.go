package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tiktrack/tiktrack_backend/models"
)

func CreateProduct() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewProduct
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		product, err := models.CreateProduct(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}

func ListProducts() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := skipLimit(c)
		products, err := models.GetProducts(c.Request.Context(), skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, products)
	}
}

func CreateInventoryBatch() gin.HandlerFunc {
	return func(c *gin.Context) {
		var input models.NewInventoryBatch
		if err := c.ShouldBindJSON(&input); err != nil {
			respondBindError(c, err)
			return
		}
		batch, err := models.CreateInventoryBatch(c.Request.Context(), &input)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, batch)
	}
}

func ListInventoryBatches() gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit := skipLimit(c)
		productId := intQuery(c, "product_id", 0)
		batches, err := models.GetInventoryBatches(c.Request.Context(), productId, skip, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, batches)
	}
}
