package server

import (
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "presence-analyzer/docs"
	"presence-analyzer/internal/directory"
	"presence-analyzer/internal/platform/config"
	"presence-analyzer/internal/platform/metrics"
	"presence-analyzer/internal/platform/middleware"
	"presence-analyzer/internal/presence"
	"presence-analyzer/web"
)

const (
	APIPrefix = "/api/v1"
	IndexPage = "/presence_weekday.html"
)

type Deps struct {
	Mode      string
	Presence  *presence.Service
	Directory *directory.Service
	Metrics   *metrics.Metrics
	Log       *zap.Logger
}

func NewRouter(d Deps) (*gin.Engine, error) {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(d.Log))
	_ = r.SetTrustedProxies(nil)

	if d.Mode == config.ModeDev {
		// CORS（開発中のみ必要）
		r.Use(cors.New(cors.Config{
			AllowOrigins:  []string{"http://localhost:3000"},
			AllowHeaders:  []string{"Origin", "Content-Type", middleware.HeaderRequestID},
			ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
			AllowMethods:  []string{"GET", "OPTIONS"},
		}))
	}

	// ヘルス
	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if d.Metrics != nil {
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", func(c *gin.Context) { c.Redirect(http.StatusFound, IndexPage) })

	// /api/v1
	api := r.Group(APIPrefix)
	presence.RegisterRoutes(api, d.Presence)
	if d.Directory != nil {
		directory.RegisterRoutes(api, d.Directory)
	}

	static, err := staticHandler()
	if err != nil {
		return nil, err
	}
	r.NoRoute(static)
	return r, nil
}

// staticHandler: 埋め込んだレポート画面と /static 配下を返す
func staticHandler() (gin.HandlerFunc, error) {
	sub, err := fs.Sub(web.Public, "public")
	if err != nil {
		return nil, err
	}
	fileFS := http.FS(sub)

	return func(c *gin.Context) {
		// API は対象外
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, presence.ErrNotFound("no such endpoint"))
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}

		reqPath := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
		f, err := fileFS.Open(reqPath)
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		if info.IsDir() {
			c.Status(http.StatusNotFound)
			return
		}
		if ct := mime.TypeByExtension(path.Ext(reqPath)); ct != "" {
			c.Header("Content-Type", ct)
		}
		// html 以外はキャッシュ
		if strings.HasPrefix(reqPath, "static/") {
			c.Header("Cache-Control", "public, max-age=86400")
		}
		http.ServeContent(c.Writer, c.Request, reqPath, info.ModTime(), f)
	}, nil
}
