// Package server exposes column summaries of one loaded dataset over HTTP.
package server

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-gota/gota/dataframe"
	"go.uber.org/zap"

	"github.com/KaramelBytes/edaloom-cli/internal/dataset"
	"github.com/KaramelBytes/edaloom-cli/internal/eda"
	"github.com/KaramelBytes/edaloom-cli/internal/plots"
	"github.com/KaramelBytes/edaloom-cli/internal/summary"
)

// Server serves summaries of a single dataframe.
type Server struct {
	df     dataframe.DataFrame
	source string
	opt    eda.Options
	router *gin.Engine
}

// NewServer creates a server for df. opt supplies the defaults that query
// parameters override per request.
func NewServer(df dataframe.DataFrame, source string, opt eda.Options) *Server {
	s := &Server{df: df, source: source, opt: opt, router: gin.New()}
	s.router.Use(gin.Recovery(), requestLogger())
	s.setupRoutes()
	return s
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.GET("/columns", s.handleColumns)
	api.GET("/columns/:name/summary", s.handleSummary)
	api.GET("/columns/:name/figure.png", s.handleFigure("png"))
	api.GET("/columns/:name/figure.svg", s.handleFigure("svg"))
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("serving summaries", zap.String("addr", addr), zap.String("source", s.source))
		errCh <- srv.ListenAndServe()
	}()
	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		zap.L().Debug("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}

func (s *Server) handleColumns(c *gin.Context) {
	profiles, err := dataset.InferFrame(s.df)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	cols := make([]gin.H, 0, len(profiles))
	for _, p := range profiles {
		cols = append(cols, gin.H{
			"name":     p.Name,
			"type":     string(p.Kind),
			"observed": p.Observed,
			"missing":  p.Missing,
			"unique":   p.Unique,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"source":  s.source,
		"rows":    s.df.Nrow(),
		"columns": cols,
	})
}

// summarize runs the summary for the :name parameter, writing an error
// response and returning nil on failure.
func (s *Server) summarize(c *gin.Context) *eda.Result {
	opt := s.opt
	if t := c.Query("type"); t != "" {
		k, err := dataset.ParseKind(t)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return nil
		}
		opt.Kind = k
	}
	if p := c.Query("palette"); p != "" {
		opt.ApplyFigure(0, p, 0)
	}
	res, err := eda.Summarize(s.df, c.Param("name"), opt)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return nil
	}
	return res
}

func (s *Server) handleSummary(c *gin.Context) {
	res := s.summarize(c)
	if res == nil {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"column": res.Column,
		"type":   string(res.Kind),
		"table":  res.Table.Records(),
	})
}

func (s *Server) handleFigure(format string) gin.HandlerFunc {
	contentType := "image/png"
	if format == "svg" {
		contentType = "image/svg+xml"
	}
	return func(c *gin.Context) {
		res := s.summarize(c)
		if res == nil {
			return
		}
		writeFigure(c, res.Column, res.Figure, format, contentType)
	}
}

// writeFigure renders fig fully before answering so a render failure is a 500.
func writeFigure(c *gin.Context, column string, fig *plots.Figure, format, contentType string) {
	var buf bytes.Buffer
	if err := fig.WriteTo(&buf, format); err != nil {
		zap.L().Error("render figure", zap.String("column", column), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, contentType, buf.Bytes())
}

func statusFor(err error) int {
	var (
		notFound  *dataset.ColumnNotFoundError
		badOption *eda.InvalidOptionError
		badTrim   *summary.InvalidTrimError
		badKind   *summary.UnsupportedKindError
		coercion  *dataset.CoercionError
		transform *plots.TransformDomainError
		unknownTf *plots.UnsupportedTransformError
	)
	switch {
	case errors.As(err, &notFound):
		return http.StatusNotFound
	case errors.As(err, &badOption), errors.As(err, &badTrim), errors.As(err, &badKind),
		errors.As(err, &coercion), errors.As(err, &transform), errors.As(err, &unknownTf):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
