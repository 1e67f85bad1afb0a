package server

import (
	"embed"
	"io/fs"
	"net/http"
	"net/http/pprof"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/vishwajitvm/tracenest/internal/controller"
	"github.com/vishwajitvm/tracenest/internal/source"
)

//go:embed all:web
var webFS embed.FS

// Server exposes the viewer over HTTP: an embedded presenter page, a JSON
// API mirroring the TraceNest UI endpoints, and a websocket that forwards
// user events to the controller and pushes recomputed view models back.
type Server struct {
	engine *gin.Engine
	ctrl   *controller.Controller
	reader source.Reader
	port   string
	log    zerolog.Logger
}

// New creates the viewer server.
func New(ctrl *controller.Controller, reader source.Reader, port string, logger zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	// Disable automatic redirects that cause 301 issues.
	engine.RedirectTrailingSlash = false
	engine.RedirectFixedPath = false

	s := &Server{
		engine: engine,
		ctrl:   ctrl,
		reader: reader,
		port:   port,
		log:    logger,
	}

	s.setupRoutes()
	return s
}

// serveEmbedded reads a file from the embedded FS and writes it with the given content type.
func serveEmbedded(webContent fs.FS, name string, contentType string) gin.HandlerFunc {
	// Pre-read the file at startup so we don't read on every request.
	data, err := fs.ReadFile(webContent, name)
	return func(c *gin.Context) {
		if err != nil {
			c.String(http.StatusNotFound, "file not found: %s", name)
			return
		}
		c.Data(http.StatusOK, contentType, data)
	}
}

func (s *Server) setupRoutes() {
	webContent, err := fs.Sub(webFS, "web")
	if err != nil {
		s.log.Fatal().Err(err).Msg("embedded web assets unavailable")
	}

	// Presenter page.
	s.engine.GET("/", serveEmbedded(webContent, "index.html", "text/html; charset=utf-8"))
	s.engine.GET("/style.css", serveEmbedded(webContent, "style.css", "text/css; charset=utf-8"))
	s.engine.GET("/app.js", serveEmbedded(webContent, "app.js", "application/javascript; charset=utf-8"))

	// Health check.
	s.engine.GET("/healthz", func(c *gin.Context) {
		state := controller.StateIdle
		if vm, ok := s.ctrl.LatestView(); ok {
			state = vm.State
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"state":   state,
			"dropped": s.ctrl.Dropped(),
		})
	})

	// Source list, same shape as the TraceNest backend's own endpoint.
	s.engine.GET("/api/sources", func(c *gin.Context) {
		names, err := s.reader.ListSources(c.Request.Context())
		if err != nil {
			s.log.Error().Err(err).Msg("source list failed")
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		if names == nil {
			names = []string{}
		}
		c.JSON(http.StatusOK, names)
	})

	// Latest computed view, for presenters that poll instead of subscribing.
	s.engine.GET("/api/view", func(c *gin.Context) {
		vm, ok := s.ctrl.LatestView()
		if !ok {
			c.JSON(http.StatusOK, gin.H{"state": controller.StateIdle})
			return
		}
		c.JSON(http.StatusOK, vm)
	})

	// WebSocket.
	s.engine.GET("/ws", s.handleWebSocket)

	// pprof profiling endpoints.
	s.engine.GET("/debug/pprof/", gin.WrapF(pprof.Index))
	s.engine.GET("/debug/pprof/cmdline", gin.WrapF(pprof.Cmdline))
	s.engine.GET("/debug/pprof/profile", gin.WrapF(pprof.Profile))
	s.engine.GET("/debug/pprof/symbol", gin.WrapF(pprof.Symbol))
	s.engine.GET("/debug/pprof/trace", gin.WrapF(pprof.Trace))
	s.engine.GET("/debug/pprof/allocs", gin.WrapH(pprof.Handler("allocs")))
	s.engine.GET("/debug/pprof/heap", gin.WrapH(pprof.Handler("heap")))
	s.engine.GET("/debug/pprof/goroutine", gin.WrapH(pprof.Handler("goroutine")))
}

// Start runs the server. Blocks until the server is stopped.
func (s *Server) Start() error {
	return s.engine.Run(":" + s.port)
}
