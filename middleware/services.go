package middleware

import (
	"github.com/ariebrainware/hms-portal/auth"
	"github.com/ariebrainware/hms-portal/repository"
	"github.com/gin-gonic/gin"
)

const (
	repositoryKey = "repository"
	authKey       = "auth_service"
)

// Services makes the data access layer and the session service available to
// handlers.
func Services(repo *repository.Repository, svc *auth.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(repositoryKey, repo)
		c.Set(authKey, svc)
		c.Next()
	}
}

// GetRepository returns the repository set by Services, or nil.
func GetRepository(c *gin.Context) *repository.Repository {
	if v, ok := c.Get(repositoryKey); ok {
		if repo, ok := v.(*repository.Repository); ok {
			return repo
		}
	}
	return nil
}

// GetAuthService returns the session service set by Services, or nil.
func GetAuthService(c *gin.Context) *auth.Service {
	if v, ok := c.Get(authKey); ok {
		if svc, ok := v.(*auth.Service); ok {
			return svc
		}
	}
	return nil
}
