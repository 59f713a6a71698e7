package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	noticeHttp "noticeadmin/internal/notice/http"
)

// Config carries the settings and handlers the router needs.
type Config struct {
	IsProduction  bool
	ProdOrigins   string
	NoticeHandler *noticeHttp.Handler
}

// NewRouter initializes the HTTP router engine. It assembles middleware
// (CORS, Logger, Recovery), loads the HTML views and registers the
// notice routes.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global Middleware:
	// - Logger: Logs request information to the console.
	// - Recovery: Captures panics to prevent server crashes and returns a 500 error.
	r.Use(gin.Logger(), gin.Recovery())

	// Configure CORS (Cross-Origin Resource Sharing).
	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:8080"}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type"}
	r.Use(cors.New(corsConfig))

	// Server-rendered views
	r.SetHTMLTemplate(noticeHttp.Templates())

	// The root URL is just a shortcut to the notice list.
	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/notice")
	})

	noticeHttp.RegisterRoutes(r, cfg.NoticeHandler)

	return r
}
