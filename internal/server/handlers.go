package server

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nitin85058/VEYA/internal/export"
	"github.com/nitin85058/VEYA/internal/health"
	"github.com/nitin85058/VEYA/internal/imaging"
	"github.com/nitin85058/VEYA/internal/logging"
)

func (s *Server) handleDashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"title":   "VEYA - Equipment Health Analyzer",
		"version": s.cfg.Version,
	})
}

// API handlers

func (s *Server) handleUpload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "image file required",
		})
		return
	}

	if err := imaging.ValidateName(file.Filename); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if file.Size > s.cfg.MaxUploadBytes() {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("image exceeds maximum size of %d MB", s.cfg.Server.MaxUploadMB),
		})
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	if err := imaging.Validate(data, s.cfg.MaxUploadBytes()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	a, err := s.runner.Run(c.Request.Context(), file.Filename, data)
	if err != nil {
		logging.ServerError("analysis failed for %s: %v", file.Filename, err)
		logging.AuditFailed(file.Filename, err)
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	s.store.Put(a)
	logging.Server("analysis %s stored: %s category=%q score=%d",
		a.ID, a.Filename, a.Category, a.Health.Score)
	logging.AuditCreated(a.ID, a.Filename, a.Category, a.Health.Score)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    a,
	})
}

func (s *Server) handleList(c *gin.Context) {
	summaries := s.store.Summaries()
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    summaries,
		"count":   len(summaries),
	})
}

func (s *Server) handleGet(c *gin.Context) {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "analysis not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    a,
	})
}

func (s *Server) handleDelete(c *gin.Context) {
	id := c.Param("id")
	if !s.store.Delete(id) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "analysis not found",
		})
		return
	}

	logging.AuditDeleted(id)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "analysis deleted",
	})
}

func (s *Server) handleClear(c *gin.Context) {
	n := s.store.Clear()
	logging.AuditCleared(n)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"cleared": n,
	})
}

func (s *Server) handleJSONReport(c *gin.Context) {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "analysis not found",
		})
		return
	}

	data, err := export.JSONReport(a)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   err.Error(),
		})
		return
	}

	name := export.JSONFilename(a)
	logging.AuditExported(a.ID, name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) handleTextReport(c *gin.Context) {
	a, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error":   "analysis not found",
		})
		return
	}

	report := export.TextReport(a)
	name := export.TextFilename(a)
	logging.AuditExported(a.ID, name)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

func (s *Server) handleFleet(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    health.Fleet(s.store.List()),
	})
}

func (s *Server) handleRules(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    s.rules.Current(),
	})
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": s.cfg.Version,
	})
}
