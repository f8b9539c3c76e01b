// Package server exposes the solver over HTTP.
package server

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/beesolve/internal/model"
	"github.com/verte-zerg/beesolve/internal/report"
	"github.com/verte-zerg/beesolve/internal/solver"
)

//go:embed templates/*.html
var templateFiles embed.FS

const (
	requestIDHeader = "X-Request-ID"
	shutdownTimeout = 5 * time.Second
)

// Server serves the solver form and JSON API.
type Server struct {
	router    *gin.Engine
	words     []string
	lookupURL string
}

type solveRequest struct {
	Letters string `json:"letters" binding:"required"`
	Center  string `json:"center" binding:"required"`
}

type pageData struct {
	Letters string
	Center  string
	Error   string
	Count   string
	Result  *report.Result
}

// New builds a server over a prepared dictionary.
func New(words []string, lookupURL string) (*Server, error) {
	tmpl, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	if lookupURL == "" {
		lookupURL = report.DefaultLookupURL
	}

	router := gin.New()
	router.Use(requestID(), gin.Logger(), gin.Recovery())
	router.SetHTMLTemplate(tmpl)

	s := &Server{
		router:    router,
		words:     words,
		lookupURL: lookupURL,
	}
	s.setupRoutes()
	return s, nil
}

func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/solve", s.handleSolvePage)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.POST("/solve", s.handleSolveAPI)
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run listens on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("listening on %s (%d words)", addr, len(s.words))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		log.Printf("server stopped")
		return nil
	})
	return g.Wait()
}

func (s *Server) handleIndex(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{})
}

func (s *Server) handleSolvePage(c *gin.Context) {
	data := pageData{Letters: c.Query("letters"), Center: c.Query("center")}
	p, err := solver.NewPuzzle(data.Letters, data.Center)
	if err != nil {
		data.Error = solver.FormMessage(err)
		c.HTML(http.StatusBadRequest, "index.html", data)
		return
	}
	res := s.solve(p)
	data.Letters = p.Letters
	data.Center = string(p.Center)
	data.Count = report.CountLine(res.Count)
	data.Result = &res
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) handleSolveAPI(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "letters and center are required"})
		return
	}
	p, err := solver.NewPuzzle(req.Letters, req.Center)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": solver.FormMessage(err)})
		return
	}
	c.JSON(http.StatusOK, s.solve(p))
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "words": len(s.words)})
}

func (s *Server) solve(p model.Puzzle) report.Result {
	return report.NewResult(p, solver.Solve(p, s.words), s.lookupURL)
}

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("requestID", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}
