package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"prompt-architect-server/internal/models"
)

type sceneRequest struct {
	Scene    models.SceneData `json:"scene"`
	Language string           `json:"language"`
}

type deconstructRequest struct {
	Text string `json:"text" binding:"required"`
}

type saveRequest struct {
	Scene         models.SceneData `json:"scene"`
	Prompt        string           `json:"prompt"`
	VersionNotes  string           `json:"versionNotes"`
	RemixSourceID string           `json:"remixSourceId"`
}

type remixRequest struct {
	VersionIndex int `json:"versionIndex"`
}

type videoRequest struct {
	Prompt      string             `json:"prompt" binding:"required"`
	AspectRatio models.AspectRatio `json:"aspectRatio" binding:"required"`
}

func (s *Server) handleGenerate(c *gin.Context) {
	var req sceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	text, err := s.prompts.Generate(c.Request.Context(), req.Scene.Normalized(), req.Language)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prompt": text})
}

func (s *Server) handleSuggest(c *gin.Context) {
	var req sceneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	text, err := s.prompts.Suggest(c.Request.Context(), req.Scene.Normalized(), req.Language)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": text})
}

func (s *Server) handleDeconstruct(c *gin.Context) {
	var req deconstructRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	scene, err := s.deconstructor.Deconstruct(c.Request.Context(), req.Text)
	if err != nil {
		s.respondError(c, err)
		return
	}

	// History is advisory; a failed write never fails the decode.
	if err := s.history.Append(c.Request.Context(), req.Text); err != nil {
		s.logger.Warn("failed to record query history", zap.Error(err))
	}

	c.JSON(http.StatusOK, scene)
}

func (s *Server) handleListGallery(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.List())
}

func (s *Server) handleSave(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	pending := s.store.RecordGeneration(req.Scene.Normalized(), req.Prompt)
	saved, err := s.store.Save(c.Request.Context(), pending, req.VersionNotes, req.RemixSourceID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) handleDelete(c *gin.Context) {
	if err := s.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		s.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleToggleVisibility(c *gin.Context) {
	visibility, err := s.store.ToggleVisibility(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"visibility": visibility})
}

func (s *Server) handleRemix(c *gin.Context) {
	var req remixRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	scene, err := s.store.Remix(c.Param("id"), req.VersionIndex)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, scene)
}

func (s *Server) handleStartVideo(c *gin.Context) {
	if s.videos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "video generation is not configured"})
		return
	}

	var req videoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt and aspectRatio are required"})
		return
	}

	job, err := s.videos.Start(c.Request.Context(), req.Prompt, req.AspectRatio)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, job)
}

func (s *Server) handleGetVideo(c *gin.Context) {
	if s.videos == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "video generation is not configured"})
		return
	}

	job, err := s.videos.Get(c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// respondError maps domain errors onto HTTP statuses. Anything unmapped is
// an internal error with a generic message.
func (s *Server) respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrPromptNotFound),
		errors.Is(err, models.ErrVersionNotFound),
		errors.Is(err, models.ErrVideoNotFound):
		status = http.StatusNotFound
	case errors.Is(err, models.ErrDeconstructionPending):
		status = http.StatusConflict
	case errors.Is(err, models.ErrConsentRequired),
		errors.Is(err, models.ErrAspectRatioUnsupported),
		errors.Is(err, models.ErrNothingToSave),
		errors.Is(err, models.ErrEmptyDescription):
		status = http.StatusBadRequest
	case errors.Is(err, models.ErrVideoCredentialInvalid):
		status = http.StatusUnauthorized
	case errors.Is(err, models.ErrGenerationFailed),
		errors.Is(err, models.ErrDeconstructionFailed),
		errors.Is(err, models.ErrSuggestionFailed),
		errors.Is(err, models.ErrVideoGenerationFailed):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("unhandled error", zap.Error(err))
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
