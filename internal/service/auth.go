package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/portfolio-api/internal/server"
)

// AuthService configures Clerk, which verifies the sessions of the admin
// routes.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	clerk.SetKey(s.Config.Auth.SecretKey)
	return &AuthService{
		server: s,
	}
}
