package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type StudentsService struct {
	client *Client
}

func (c *Client) Students() *StudentsService { return &StudentsService{client: c} }

type StudentListParams struct {
	Search string
	Page   int
	Limit  int
}

type BlockStudentInput struct {
	Reason string `json:"reason"`
}

// studentsEnvelope accepts both the canonical {data,meta} shape and the
// legacy {students, meta:{total,totalPage}} one still served by this
// endpoint, so callers only ever see the canonical Page.
type studentsEnvelope struct {
	Data     []Student `json:"data"`
	Students []Student `json:"students"`
	Meta     struct {
		Total           int   `json:"total"`
		Page            int   `json:"page"`
		Limit           int   `json:"limit"`
		TotalPages      int   `json:"totalPages"`
		TotalPage       int   `json:"totalPage"`
		HasNextPage     *bool `json:"hasNextPage"`
		HasPreviousPage *bool `json:"hasPreviousPage"`
	} `json:"meta"`
}

func (s *StudentsService) List(ctx context.Context, p StudentListParams) (Page[Student], error) {
	q := url.Values{}
	if p.Search != "" {
		q.Set("search", p.Search)
	}
	page := max(p.Page, 1)
	limit := max(p.Limit, 1)
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))

	var raw json.RawMessage
	if err := s.client.do(ctx, http.MethodGet, "/students", q, nil, &raw); err != nil {
		return Page[Student]{}, err
	}

	var env studentsEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return Page[Student]{}, fmt.Errorf("decode students envelope: %w", err)
	}

	out := Page[Student]{Data: env.Data}
	if out.Data == nil {
		out.Data = env.Students
	}
	if out.Data == nil {
		out.Data = []Student{}
	}

	meta := env.Meta
	switch {
	case meta.TotalPages > 0 && meta.HasNextPage != nil && meta.HasPreviousPage != nil:
		out.Meta = PageMeta{
			Total:           meta.Total,
			Page:            meta.Page,
			Limit:           meta.Limit,
			TotalPages:      meta.TotalPages,
			HasNextPage:     *meta.HasNextPage,
			HasPreviousPage: *meta.HasPreviousPage,
		}
	default:
		// legacy shape: only total and totalPage are trustworthy
		out.Meta = metaFromTotals(meta.Total, page, limit)
	}
	return out, nil
}

func (s *StudentsService) Block(ctx context.Context, id int64, reason string) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/students/%d/block", id), nil, BlockStudentInput{Reason: reason}, nil)
}

func (s *StudentsService) Unblock(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/students/%d/unblock", id), nil, nil, nil)
}

func (s *StudentsService) Restore(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/students/%d/restore", id), nil, nil, nil)
}
