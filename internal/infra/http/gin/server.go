package ginserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	gin "github.com/gin-gonic/gin"

	"staybase/internal/infra/config"
	"staybase/internal/infra/obs"
)

type AccommodationHTTP interface {
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	Search(c *gin.Context)
	UploadPhotos(c *gin.Context)
}

type RuleHTTP interface {
	Create(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

type BlockHTTP interface {
	Create(c *gin.Context)
	Delete(c *gin.Context)
	List(c *gin.Context)
}

type Handlers struct {
	Accommodation      AccommodationHTTP
	Rules              RuleHTTP
	Blocks             BlockHTTP
	IdentityMiddleware gin.HandlerFunc
}

func NewServer(cfg config.Config, obsMW obs.Middleware, health obs.HealthHandlers, h Handlers) *http.Server {
	mode := configureGinMode(cfg.Env)
	if obsMW.Logger != nil {
		obsMW.Logger.Info("gin initialized", "mode", mode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(obsMW.RequestID())
	router.Use(obsMW.LoggerMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-User-Id", "X-User-Email", "X-User-Role"},
		ExposeHeaders: []string{
			"Content-Length",
			"Content-Type",
			"X-Request-ID",
		},
		MaxAge: 12 * time.Hour,
	}))
	if h.IdentityMiddleware != nil {
		router.Use(h.IdentityMiddleware)
	}

	router.GET("/livez", health.Livez)
	router.GET("/readyz", health.Readyz)

	api := router.Group("/api/v1")
	if h.Accommodation != nil {
		api.GET("/accommodations", h.Accommodation.Search)
		api.POST("/accommodations", h.Accommodation.Create)
		api.GET("/accommodations/:id", h.Accommodation.Get)
		api.PUT("/accommodations/:id", h.Accommodation.Update)
		api.DELETE("/accommodations/:id", h.Accommodation.Delete)
		api.POST("/accommodations/:id/photos", h.Accommodation.UploadPhotos)
	}
	if h.Rules != nil {
		api.GET("/accommodations/:id/rules", h.Rules.List)
		api.POST("/accommodations/:id/rules", h.Rules.Create)
		api.PATCH("/accommodations/:id/rules/:ruleId", h.Rules.Update)
		api.DELETE("/accommodations/:id/rules/:ruleId", h.Rules.Delete)
	}
	if h.Blocks != nil {
		api.GET("/accommodations/:id/blocks", h.Blocks.List)
		api.POST("/accommodations/:id/blocks", h.Blocks.Create)
		api.DELETE("/accommodations/:id/blocks/:blockId", h.Blocks.Delete)
	}

	return &http.Server{Addr: cfg.HTTPAddr, Handler: router}
}

func configureGinMode(env string) string {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "debug":
		gin.SetMode(gin.DebugMode)
		return gin.DebugMode
	case "test", "testing":
		gin.SetMode(gin.TestMode)
		return gin.TestMode
	default:
		gin.SetMode(gin.ReleaseMode)
		return gin.ReleaseMode
	}
}
