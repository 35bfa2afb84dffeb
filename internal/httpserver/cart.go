package httpserver

import (
	"net/http"

	"gamestore/internal/domain"
	"github.com/gin-gonic/gin"
)

type addCartLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type updateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

func listCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		lines, total, err := svc.List(c.Request.Context(), customerKey(c))
		if err != nil {
			writeError(c, err)
			return
		}
		if lines == nil {
			lines = []domain.CartLine{}
		}
		c.JSON(http.StatusOK, gin.H{"lines": lines, "total": total})
	}
}

func addCartLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		line, err := svc.Add(c.Request.Context(), customerKey(c), req.ProductID, req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, line)
	}
}

func updateCartLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateCartLineRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
		line, err := svc.Update(c.Request.Context(), customerKey(c), c.Param("id"), req.Quantity)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, line)
	}
}

func removeCartLineHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Remove(c.Request.Context(), customerKey(c), c.Param("id")); err != nil {
			writeError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
