package http

import "github.com/gin-gonic/gin"

// Register attaches project routes to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.list)
	rg.POST("", h.create)
	rg.PUT("/:id", h.update)
	rg.DELETE("/:id", h.delete)
}

// Register attaches the settings routes to the given router group.
func (h *SettingsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("", h.get)
	rg.PUT("", h.put)
}
