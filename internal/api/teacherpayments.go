package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type TeacherPaymentsService struct {
	client *Client
}

func (c *Client) TeacherPayments() *TeacherPaymentsService {
	return &TeacherPaymentsService{client: c}
}

type TeacherPaymentListParams struct {
	Page  int
	Limit int
}

type CreateTeacherPaymentInput struct {
	TeacherID         int64   `json:"teacherId"`
	LessonID          int64   `json:"lessonId"`
	TotalLessonAmount float64 `json:"totalLessonAmount"`
	PlatformComission float64 `json:"platformComission"`
	PaidBy            string  `json:"paidBy"`
}

type CancelTeacherPaymentInput struct {
	CanceledBy     string `json:"canceledBy"`
	CanceledReason string `json:"canceledReason"`
}

func (s *TeacherPaymentsService) List(ctx context.Context, p TeacherPaymentListParams) (Page[TeacherPayment], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(max(p.Limit, 1)))

	var page Page[TeacherPayment]
	if err := s.client.do(ctx, http.MethodGet, "/teacher-payments", q, nil, &page); err != nil {
		return Page[TeacherPayment]{}, err
	}
	return page, nil
}

func (s *TeacherPaymentsService) Create(ctx context.Context, in CreateTeacherPaymentInput) (*TeacherPayment, error) {
	var tp TeacherPayment
	if err := s.client.do(ctx, http.MethodPost, "/teacher-payments", nil, in, &tp); err != nil {
		return nil, err
	}
	return &tp, nil
}

func (s *TeacherPaymentsService) Cancel(ctx context.Context, id int64, in CancelTeacherPaymentInput) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/teacher-payments/%d/cancel", id), nil, in, nil)
}
