package httpserver

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	reviewsvc "storefront/internal/service/review"
)

type reviewHandler struct {
	svc    ReviewService
	logger *log.Logger
}

func (h *reviewHandler) list(c *gin.Context) {
	var productID *int64
	if raw := c.Query("product_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product_id"})
			return
		}
		productID = &id
	}
	reviews, err := h.svc.List(c.Request.Context(), productID)
	if err != nil {
		writeError(c, h.logger, err, "Review")
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *reviewHandler) create(c *gin.Context) {
	var in reviewsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	rv, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, "Product")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": rv})
}
