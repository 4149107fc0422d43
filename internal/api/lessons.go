package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type LessonsService struct {
	client *Client
}

func (c *Client) Lessons() *LessonsService { return &LessonsService{client: c} }

type LessonListParams struct {
	Search string
	Status string
	Page   int
	Limit  int
}

type CreateLessonInput struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	TeacherID int64     `json:"teacherId"`
	Price     float64   `json:"price"`
}

type UpdateLessonInput struct {
	Name      string     `json:"name,omitempty"`
	StartTime *time.Time `json:"startTime,omitempty"`
	EndTime   *time.Time `json:"endTime,omitempty"`
	Price     *float64   `json:"price,omitempty"`
	Status    string     `json:"status,omitempty"`
}

func (s *LessonsService) List(ctx context.Context, p LessonListParams) (Page[Lesson], error) {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(max(p.Limit, 1)))

	var page Page[Lesson]
	if err := s.client.do(ctx, http.MethodGet, "/lesson", q, nil, &page); err != nil {
		return Page[Lesson]{}, err
	}
	return page, nil
}

// ByTeacher returns every lesson belonging to one teacher.
func (s *LessonsService) ByTeacher(ctx context.Context, teacherID int64) ([]Lesson, error) {
	var out []Lesson
	if err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/lesson/%d/teacher", teacherID), nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *LessonsService) Create(ctx context.Context, in CreateLessonInput) (*Lesson, error) {
	var l Lesson
	if err := s.client.do(ctx, http.MethodPost, "/lesson", nil, in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LessonsService) Update(ctx context.Context, id int64, in UpdateLessonInput) (*Lesson, error) {
	var l Lesson
	if err := s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/lesson/%d", id), nil, in, &l); err != nil {
		return nil, err
	}
	return &l, nil
}

func (s *LessonsService) Delete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodDelete, fmt.Sprintf("/lesson/%d", id), nil, nil, nil)
}
