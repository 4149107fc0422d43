package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type AdminsService struct {
	client *Client
}

func (c *Client) Admins() *AdminsService { return &AdminsService{client: c} }

type AdminListParams struct {
	Search string
	Page   int
	Limit  int
}

type CreateAdminInput struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Role        string `json:"role"`
	PhoneNumber string `json:"phoneNumber"`
}

type UpdateAdminInput struct {
	Username    string `json:"username,omitempty"`
	Role        string `json:"role,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

type ChangePasswordInput struct {
	Password string `json:"password"`
}

func (s *AdminsService) List(ctx context.Context, p AdminListParams) (Page[Admin], error) {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(max(p.Limit, 1)))

	var page Page[Admin]
	if err := s.client.do(ctx, http.MethodGet, "/admins", q, nil, &page); err != nil {
		return Page[Admin]{}, err
	}
	return page, nil
}

func (s *AdminsService) Get(ctx context.Context, id int64) (*Admin, error) {
	var a Admin
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/admins/%d", id), nil, nil, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminsService) Create(ctx context.Context, in CreateAdminInput) (*Admin, error) {
	var a Admin
	if err := s.client.do(ctx, http.MethodPost, "/admins", nil, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminsService) Update(ctx context.Context, id int64, in UpdateAdminInput) (*Admin, error) {
	var a Admin
	if err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/admins/%d", id), nil, in, &a); err != nil {
		return nil, err
	}
	return &a, nil
}

func (s *AdminsService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/admins/%d", id), nil, nil, nil)
}

func (s *AdminsService) Restore(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/admins/%d/restore", id), nil, nil, nil)
}

func (s *AdminsService) Activate(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/admins/%d/activate", id), nil, nil, nil)
}

func (s *AdminsService) Deactivate(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/admins/%d/deactivate", id), nil, nil, nil)
}

func (s *AdminsService) ChangePassword(ctx context.Context, id int64, in ChangePasswordInput) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/admins/%d/change-password", id), nil, in, nil)
}
