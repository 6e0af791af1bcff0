package http

import "github.com/gin-gonic/gin"

// Register attaches link composition routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/compose", h.compose)
	rg.GET("/session/:id", h.sessionParams)
}
