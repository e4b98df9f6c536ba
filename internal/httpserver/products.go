package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	productsvc "storefront/internal/service/product"
)

type productHandler struct {
	svc    ProductService
	logger *log.Logger
}

func (h *productHandler) list(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err, "Product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *productHandler) create(c *gin.Context) {
	var in productsvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON body"})
		return
	}
	p, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err, "Product")
		return
	}
	h.logger.Printf("product created id=%d by=%s", p.ID, c.GetString(adminNameKey))
	c.JSON(http.StatusCreated, gin.H{"product": p})
}
