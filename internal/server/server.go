package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/agenthands/literalkg/internal/core"
	"github.com/agenthands/literalkg/internal/core/model"
	"github.com/agenthands/literalkg/internal/logger"
)

// Server exposes a built dataset read-only over HTTP.
type Server struct {
	Dataset *core.Dataset
}

func NewServer(ds *core.Dataset) *Server {
	return &Server{Dataset: ds}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/stats", s.Stats)
	r.GET("/vocab/:kind", s.Vocab)
	r.GET("/edges/:split", s.Edges)
	// entity names are usually paths like /m/0abc, so the rest of the URL is
	// the name
	r.GET("/entities/*name", s.Entity)

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		logger.Debug("request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status())
	}
}

func (s *Server) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, s.Dataset.Stats())
}

func (s *Server) vocabulary(kind string) *model.Vocabulary {
	switch kind {
	case "entities":
		return s.Dataset.Vocab.Entities
	case "relations":
		return s.Dataset.Vocab.Relations
	case "numeric":
		return s.Dataset.Vocab.NumericAttrs
	case "textual":
		return s.Dataset.Vocab.TextualAttrs
	}
	return nil
}

type VocabEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Origin int    `json:"origin"`
}

// Vocab lists one vocabulary, paged with ?offset= and ?limit= (default 100).
func (s *Server) Vocab(c *gin.Context) {
	v := s.vocabulary(c.Param("kind"))
	if v == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown vocabulary, want entities, relations, numeric or textual"})
		return
	}

	offset, err1 := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, err2 := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err1 != nil || err2 != nil || offset < 0 || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset or limit"})
		return
	}

	end := min(offset+limit, v.Len())
	entries := []VocabEntry{}
	for id := offset; id < end; id++ {
		entries = append(entries, VocabEntry{ID: id, Name: v.Names[id], Origin: v.Origin[id]})
	}

	c.JSON(http.StatusOK, gin.H{"total": v.Len(), "entries": entries})
}

// Edges returns the edge count of one split and its first ?limit= edges.
func (s *Server) Edges(c *gin.Context) {
	e, ok := s.Dataset.Edges[model.Split(c.Param("split"))]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown split"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit"})
		return
	}

	n := min(limit, e.Len())
	c.JSON(http.StatusOK, gin.H{
		"total": e.Len(),
		"heads": e.Index[0][:n],
		"tails": e.Index[1][:n],
		"types": e.Types[:n],
	})
}

func (s *Server) Entity(c *gin.Context) {
	name := strings.TrimPrefix(c.Param("name"), "/")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing entity name"})
		return
	}

	f, err := s.Dataset.Entity(name)
	if err != nil {
		// names are stored with or without their leading slash
		f, err = s.Dataset.Entity("/" + name)
	}
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, f)
}
