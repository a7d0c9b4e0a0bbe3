package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/LJTian/NewsRadar/internal/collector"
	"github.com/LJTian/NewsRadar/internal/news"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	fetchFailedMessage   = "Failed to fetch news"
	topicRequiredMessage = "topic is required"
)

// Searcher 由 news.Service 实现
type Searcher interface {
	Search(ctx context.Context, q news.Query) ([]collector.Article, error)
}

type Server struct {
	searcher Searcher
	log      *zap.Logger
}

func NewServer(searcher Searcher, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{searcher: searcher, log: log}
}

func (s *Server) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", s.health)
	r.GET("/news/:topic", s.newsByPath)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/news", s.newsByQuery)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) newsByPath(c *gin.Context) {
	topic := strings.TrimSpace(c.Param("topic"))
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": topicRequiredMessage})
		return
	}
	s.respond(c, news.Query{Topic: topic})
}

// newsByQuery 支持 ?topic=xxx&window=12h，window 覆盖默认时间窗口
func (s *Server) newsByQuery(c *gin.Context) {
	topic := strings.TrimSpace(c.Query("topic"))
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": topicRequiredMessage})
		return
	}

	q := news.Query{Topic: topic}
	if raw := c.Query("window"); raw != "" {
		w, err := time.ParseDuration(raw)
		if err != nil || w <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "window must be a positive duration, e.g. 12h"})
			return
		}
		q.Window = w
	}

	s.respond(c, q)
}

func (s *Server) respond(c *gin.Context, q news.Query) {
	articles, err := s.searcher.Search(c.Request.Context(), q)
	if err != nil {
		s.log.Error("fetch news failed", zap.String("topic", q.Topic), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fetchFailedMessage})
		return
	}
	if articles == nil {
		articles = []collector.Article{}
	}
	c.JSON(http.StatusOK, articles)
}
