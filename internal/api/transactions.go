package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

type TransactionsService struct {
	client *Client
}

func (c *Client) Transactions() *TransactionsService { return &TransactionsService{client: c} }

type TransactionListParams struct {
	Status string
	Page   int
	Limit  int
}

type CancelTransactionInput struct {
	Reason string `json:"reason"`
}

func (s *TransactionsService) List(ctx context.Context, p TransactionListParams) (Page[Transaction], error) {
	q := url.Values{}
	if p.Status != "" {
		q.Set("status", p.Status)
	}
	q.Set("page", strconv.Itoa(max(p.Page, 1)))
	q.Set("limit", strconv.Itoa(max(p.Limit, 1)))

	var page Page[Transaction]
	if err := s.client.do(ctx, http.MethodGet, "/transactions", q, nil, &page); err != nil {
		return Page[Transaction]{}, err
	}
	return page, nil
}

func (s *TransactionsService) Cancel(ctx context.Context, id int64, reason string) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/transactions/%d/cancel", id), nil, CancelTransactionInput{Reason: reason}, nil)
}

func (s *TransactionsService) Complete(ctx context.Context, id int64) error {
	return s.client.do(ctx, http.MethodPatch, fmt.Sprintf("/transactions/%d/complete", id), nil, nil, nil)
}
