package controller

import (
	"context"

	"github.com/framp/framp-backend/internal/model"
)

type IController interface {
	// CreateOffRampRequest validates and stores a new request as pending.
	CreateOffRampRequest(input CreateOffRampRequestInput) (*CreateOffRampRequestResult, error)

	GetRequest(id string) (*model.OffRampRequest, error)

	// ListRequests joins requests with their users, newest first.
	ListRequests(filter ListRequestsFilter) ([]OffRampRequestItem, error)

	// UpdateStatus is the manual admin edit of the request status.
	UpdateStatus(id string, status string, adminNote *string) (*model.OffRampRequest, error)

	// ApproveRequest pays out a pending or processing request and marks it approved.
	ApproveRequest(ctx context.Context, id string, adminNote string) (*PayoutResult, error)

	// TriggerPayout pays out any request not already marked as successfully disbursed.
	TriggerPayout(ctx context.Context, id string) (*PayoutResult, error)

	Quote(token string, amount float64) (*Quote, error)

	JoinWaitlist(email, name string) (*model.WaitlistEntry, error)
	ListWaitlist(status string) ([]model.WaitlistEntry, error)
	UpdateWaitlistStatus(id string, status string) (*model.WaitlistEntry, error)
}
