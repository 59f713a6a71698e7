package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, h *Handler) {
	group := r.Group("/notice")
	{
		group.GET("", h.List)
		group.GET("/new", h.NewForm)
		group.GET("/edit", h.EditForm)
		group.POST("", h.Create)
		group.POST("/update", h.Update)
		group.POST("/delete", h.Delete)
	}
}
