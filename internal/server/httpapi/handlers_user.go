package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mindwell/journal/internal/server/models"
)

type createUserBody struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// getAuth exchanges Basic credentials for a bearer token.
func (s *HTTPServer) getAuth(c *gin.Context) {
	creds, err := extractBasicCredentials(c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	user, err := s.users.Authenticate(c.Request.Context(), creds.Email, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := s.users.IssueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"user": user, "token": token})
}

func (s *HTTPServer) listUsers(c *gin.Context) {
	users, err := s.users.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"users": users})
}

// createUser registers a new user. Credentials ride in the Basic
// Authorization header; the JSON body only carries the name fields.
func (s *HTTPServer) createUser(c *gin.Context) {
	creds, err := extractBasicCredentials(c.GetHeader("Authorization"))
	if err != nil {
		respondError(c, err)
		return
	}

	var body createUserBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	user, err := s.users.Create(c.Request.Context(), body.FirstName, body.LastName, creds.Email, creds.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"user": user})
}

func (s *HTTPServer) deleteAllUsers(c *gin.Context) {
	affected, err := s.users.DeleteAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}

func (s *HTTPServer) getUserByID(c *gin.Context) {
	user, err := s.users.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"user": user})
}

func (s *HTTPServer) updateUserByID(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	user, err := s.users.UpdateByID(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"user": user})
}

func (s *HTTPServer) deleteUserByID(c *gin.Context) {
	affected, err := s.users.DeleteByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}

func (s *HTTPServer) getUserByEmail(c *gin.Context) {
	user, err := s.users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"user": user})
}

func (s *HTTPServer) updateUserByEmail(c *gin.Context) {
	var patch models.UserPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respondError(c, errInvalidBody)
		return
	}

	user, err := s.users.UpdateByEmail(c.Request.Context(), c.Param("email"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"user": user})
}

func (s *HTTPServer) deleteUserByEmail(c *gin.Context) {
	affected, err := s.users.DeleteByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}

	respond(c, gin.H{"deleted": affected})
}
