package http

import (
	"context"
	nethttp "net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shamtool/internal/shared/transport"
	"shamtool/internal/shared/transport/http/middleware"
	"shamtool/modules/kit/logx"
)

// Registrar is implemented by every module that exposes HTTP routes.
type Registrar interface {
	HttpRegister(g *gin.RouterGroup)
}

type Options struct {
	AllowOrigins []string
}

type Server struct {
	engine *gin.Engine
	group  *gin.RouterGroup
	srv    *nethttp.Server
}

func NewHttpServer(addr string, engine *gin.Engine, logger logx.Logger, opts Options) *Server {
	if engine == nil {
		engine = gin.New()
		engine.Use(gin.Recovery())
	}
	engine.Use(middleware.Cors(opts.AllowOrigins))
	engine.Use(middleware.Metrics())
	engine.Use(middleware.AccessLog(logger))
	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(nethttp.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	engine.NoRoute(func(c *gin.Context) {
		Fail(c, nethttp.StatusNotFound, transport.NotFound, "Invalid API function or parameter.")
	})

	return &Server{
		engine: engine,
		group:  engine.Group(""),
		srv: &nethttp.Server{
			Addr:              addr,
			Handler:           engine,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// Register mounts every module on the root group.
func (s *Server) Register(modules ...Registrar) {
	for _, m := range modules {
		m.HttpRegister(s.group)
	}
}

// Start serves until Shutdown; it then returns net/http.ErrServerClosed.
func (s *Server) Start() error {
	return s.srv.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

func (s *Server) Group() *gin.RouterGroup {
	return s.group
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) Handler() nethttp.Handler {
	return s.engine
}
