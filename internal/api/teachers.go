package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
)

type TeachersService struct {
	client *Client
}

func (c *Client) Teachers() *TeachersService { return &TeachersService{client: c} }

type TeacherListParams struct {
	Page  int
	Limit int
}

// UpdateTeacherInput carries only the fields the caller wants to PATCH;
// empty fields are omitted from the body so an unchanged resubmission
// is a no-op for the server.
type UpdateTeacherInput struct {
	Email         string   `json:"email,omitempty"`
	PhoneNumber   string   `json:"phoneNumber,omitempty"`
	FullName      string   `json:"fullName,omitempty"`
	CardNumber    string   `json:"cardNumber,omitempty"`
	Specification string   `json:"specification,omitempty"`
	Level         string   `json:"level,omitempty"`
	HourPrice     *float64 `json:"hourPrice,omitempty"`
	Experience    *int     `json:"experience,omitempty"`
	PortfolioLink string   `json:"portfolioLink,omitempty"`
}

type UpdateTeacherPasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

func (s *TeachersService) List(ctx context.Context, p TeacherListParams) (Page[Teacher], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(max(p.Limit, 1)))

	var page Page[Teacher]
	if err := s.client.do(ctx, http.MethodGet, "/teacher", q, nil, &page); err != nil {
		return Page[Teacher]{}, err
	}
	return page, nil
}

func (s *TeachersService) Get(ctx context.Context, id int64) (*Teacher, error) {
	var t Teacher
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/teacher/%d", id), nil, nil, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TeachersService) Update(ctx context.Context, id int64, in UpdateTeacherInput) (*Teacher, error) {
	var t Teacher
	if err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/teacher/%d", id), nil, in, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TeachersService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/teacher/%d", id), nil, nil, nil)
}

// UploadImage replaces the teacher's photo, multipart field "image".
func (s *TeachersService) UploadImage(ctx context.Context, id int64, filename string, file io.Reader) (*Teacher, error) {
	var t Teacher
	if err := s.client.upload(ctx, fmt.Sprintf("/teacher/%d/upload-image", id), "image", filename, file, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TeachersService) UpdatePassword(ctx context.Context, id int64, in UpdateTeacherPasswordInput) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/teacher/%d/update-password", id), nil, in, nil)
}
