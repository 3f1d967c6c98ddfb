package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/models"
)

type createEntryBody struct {
	ExampleValue string `json:"exampleValue"`
}

func (s *HTTPServer) listEntries(c *gin.Context) {
	entries, err := s.entries.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entries": entries})
}

// createEntry inserts an entry owned by the authenticated caller; the
// owner always comes from the token, never from the body.
func (s *HTTPServer) createEntry(c *gin.Context) {
	caller, ok := callerFromContext(c)
	if !ok {
		respondError(c, common.ErrUnauthorized)
		return
	}

	var body createEntryBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	entry, err := s.entries.Create(c.Request.Context(), caller.ID, body.ExampleValue)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entry": entry})
}

func (s *HTTPServer) deleteAllEntries(c *gin.Context) {
	affected, err := s.entries.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}

func (s *HTTPServer) getEntryByID(c *gin.Context) {
	entry, err := s.entries.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entry": entry})
}

func (s *HTTPServer) updateEntryByID(c *gin.Context) {
	var patch models.EntryPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	entry, err := s.entries.UpdateByID(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entry": entry})
}

func (s *HTTPServer) deleteEntryByID(c *gin.Context) {
	affected, err := s.entries.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}

func (s *HTTPServer) listEntriesForUser(c *gin.Context) {
	entries, err := s.entries.GetForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"entries": entries})
}
