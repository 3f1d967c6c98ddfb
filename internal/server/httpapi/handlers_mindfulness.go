package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/models"
)

type createMindfulnessEntryBody struct {
	QuestionGrateful      string `json:"questionGrateful"`
	QuestionServiceSelf   string `json:"questionServiceSelf"`
	QuestionServiceOthers string `json:"questionServiceOthers"`
}

func (s *HTTPServer) listMindfulnessEntries(c *gin.Context) {
	entries, err := s.mindfulness.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entries": entries})
}

func (s *HTTPServer) createMindfulnessEntry(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		respondError(c, common.ErrUnauthorized)
		return
	}

	var body createMindfulnessEntryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	entry, err := s.mindfulness.Create(c.Request.Context(), caller.ID,
		body.QuestionGrateful, body.QuestionServiceSelf, body.QuestionServiceOthers)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entry": entry})
}

func (s *HTTPServer) deleteAllMindfulnessEntries(c *gin.Context) {
	affected, err := s.mindfulness.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}

func (s *HTTPServer) getMindfulnessEntryByID(c *gin.Context) {
	entry, err := s.mindfulness.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entry": entry})
}

func (s *HTTPServer) updateMindfulnessEntryByID(c *gin.Context) {
	var patch models.MindfulnessEntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	entry, err := s.mindfulness.UpdateByID(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entry": entry})
}

func (s *HTTPServer) deleteMindfulnessEntryByID(c *gin.Context) {
	affected, err := s.mindfulness.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}

func (s *HTTPServer) listMindfulnessEntriesForUser(c *gin.Context) {
	entries, err := s.mindfulness.GetForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entries": entries})
}
