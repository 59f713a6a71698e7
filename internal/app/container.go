package app

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"noticeadmin/internal/api"
	"noticeadmin/internal/notice"
	noticeHttp "noticeadmin/internal/notice/http"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router *gin.Engine
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Notice Module
	noticeRepo := notice.NewPgxRepository(cfg.DBPool)
	noticeService := notice.NewService(noticeRepo)
	noticeHandler := noticeHttp.NewHandler(noticeService)

	// Router
	router := api.NewRouter(api.Config{
		IsProduction:  cfg.IsProduction,
		ProdOrigins:   cfg.ProdOrigins,
		NoticeHandler: noticeHandler,
	})

	return &Container{
		Router: router,
	}
}
