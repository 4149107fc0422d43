package api

import (
	"context"
	"net/http"
)

type AuthService struct {
	client *Client
}

func (c *Client) Auth() *AuthService { return &AuthService{client: c} }

type AdminLoginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type TeacherLoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResult struct {
	AccessToken string `json:"accessToken"`
	Role        string `json:"role"`
	ID          int64  `json:"id"`
	Message     string `json:"message"`
}

func (s *AuthService) AdminLogin(ctx context.Context, in AdminLoginInput) (*LoginResult, error) {
	var res LoginResult
	if err := s.client.do(ctx, http.MethodPost, "/auth/admin/login", nil, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AuthService) TeacherLogin(ctx context.Context, in TeacherLoginInput) (*LoginResult, error) {
	var res LoginResult
	if err := s.client.do(ctx, http.MethodPost, "/auth/teacher/login", nil, in, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (s *AuthService) AdminMe(ctx context.Context) (*Admin, error) {
	var a Admin
	if err := s.client.do(ctx, http.MethodGet, "/auth/admin/me", nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AuthService) TeacherMe(ctx context.Context) (*Teacher, error) {
	var t Teacher
	if err := s.client.do(ctx, http.MethodGet, "/auth/teacher/me", nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}
