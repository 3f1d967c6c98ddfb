package httpapi

import (
	"github.com/gin-gonic/gin"

	"github.com/mindwell/journal/internal/common"
	"github.com/mindwell/journal/internal/server/auth"
	"github.com/mindwell/journal/internal/server/models"
)

const userContextKey = "authUser"

// resolveCaller authenticates the request: extract the bearer token,
// verify it, then re-resolve the subject to a live user. A deleted user
// fails here even when the token itself still verifies. Every failure
// normalizes to ErrUnauthorized so an auth check never reveals whether a
// record exists.
func (s *HTTPServer) resolveCaller(c *gin.Context) (*models.User, error) {
	token, err := extractBearerToken(c.GetHeader("Authorization"))
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	subject, err := auth.GetSubjectFromToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	user, err := s.users.GetByEmail(c.Request.Context(), subject)
	if err != nil {
		return nil, common.ErrUnauthorized
	}

	return user, nil
}

// requireAuthenticated admits any validly-tokened live identity.
func (s *HTTPServer) requireAuthenticated() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.resolveCaller(c)
		if err != nil {
			respondError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// requireAdmin admits only identities with the admin flag. A valid
// non-admin identity is a 403, not a 401.
func (s *HTTPServer) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.resolveCaller(c)
		if err != nil {
			respondError(c, err)
			return
		}

		if !user.IsAdmin {
			respondError(c, common.ErrForbidden)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// requireSelfOrAdmin admits admins unconditionally and other identities
// only when the path-supplied id/email/userId matches their own.
func (s *HTTPServer) requireSelfOrAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := s.resolveCaller(c)
		if err != nil {
			respondError(c, err)
			return
		}

		if !user.IsAdmin {
			if id := c.Param("id"); id != "" && id != user.ID {
				respondError(c, common.ErrForbidden)
				return
			}
			if email := c.Param("email"); email != "" && email != user.Email {
				respondError(c, common.ErrForbidden)
				return
			}
			if owner := c.Param("userId"); owner != "" && owner != user.ID {
				respondError(c, common.ErrForbidden)
				return
			}
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// callerFromContext returns the user placed there by the middleware.
func callerFromContext(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
