package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"SportsNewsHub/internal/domain"
	"SportsNewsHub/internal/ports"
)

const dateLayout = "2006-01-02"

// Server exposes the read-only query API over the persisted article store.
type Server struct {
	store  ports.ArticleStore
	logger *slog.Logger
}

// NewServer wires the store behind the HTTP handlers.
func NewServer(store ports.ArticleStore, logger *slog.Logger) *Server {
	return &Server{store: store, logger: logger}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", s.health)

	apiGroup := router.Group("/api")
	apiGroup.GET("/sports", s.listSports)
	apiGroup.GET("/articles", s.listArticles)
	apiGroup.GET("/articles/:id", s.getArticle)

	return router
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) listSports(c *gin.Context) {
	sports, err := s.store.ListSports(c.Request.Context())
	if err != nil {
		s.serverError(c, "list sports", err)
		return
	}
	c.JSON(http.StatusOK, sports)
}

func (s *Server) listArticles(c *gin.Context) {
	filter := ports.ArticleFilter{SportSlug: c.Query("sport")}

	if raw := c.Query("from"); raw != "" {
		from, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid 'from' date, expected YYYY-MM-DD"})
			return
		}
		filter.From = &from
	}

	if raw := c.Query("to"); raw != "" {
		to, err := time.Parse(dateLayout, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid 'to' date, expected YYYY-MM-DD"})
			return
		}
		// Inclusive upper bound: extend to end of day.
		endOfDay := to.Add(24*time.Hour - time.Nanosecond)
		filter.To = &endOfDay
	}

	articles, err := s.store.ListArticles(c.Request.Context(), filter)
	if err != nil {
		s.serverError(c, "list articles", err)
		return
	}
	c.JSON(http.StatusOK, articles)
}

func (s *Server) getArticle(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid article id"})
		return
	}

	article, err := s.store.GetArticle(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrArticleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Article not found"})
			return
		}
		s.serverError(c, "get article", err)
		return
	}
	c.JSON(http.StatusOK, article)
}

func (s *Server) serverError(c *gin.Context, op string, err error) {
	if s.logger != nil {
		s.logger.Error(op+" failed", "error", err)
	}
	c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
}
