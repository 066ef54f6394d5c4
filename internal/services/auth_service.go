package services

import (
	"context"

	"bookbound/internal/api"
	"bookbound/internal/repos"
)

// AuthService is a login passthrough: credentials go to the backend, and on
// success the returned identity is bound to the sid cookie in the local
// session store. No password ever touches this process's disk.
type AuthService struct {
	API      *api.Client
	Sessions *repos.SessionRepo
}

func NewAuthService(client *api.Client, sessions *repos.SessionRepo) *AuthService {
	return &AuthService{API: client, Sessions: sessions}
}

func (s *AuthService) Login(ctx context.Context, sid, username, password string) (*repos.Session, error) {
	res, err := s.API.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	name := res.CustomerName
	if res.Role == "ADMIN" {
		name = res.AdminName
	}
	if err := s.Sessions.Bind(sid, res.Role, res.CustomerID, name); err != nil {
		return nil, err
	}
	return s.Sessions.Get(sid)
}

func (s *AuthService) Register(ctx context.Context, sid, username, password, realName string) (*repos.Session, error) {
	res, err := s.API.Register(ctx, username, password, realName)
	if err != nil {
		return nil, err
	}
	if err := s.Sessions.Bind(sid, res.Role, res.CustomerID, res.CustomerName); err != nil {
		return nil, err
	}
	return s.Sessions.Get(sid)
}

func (s *AuthService) Logout(sid string) error {
	return s.Sessions.Unbind(sid)
}

// Current returns nil when the sid has no bound login.
func (s *AuthService) Current(sid string) (*repos.Session, error) {
	return s.Sessions.Get(sid)
}
