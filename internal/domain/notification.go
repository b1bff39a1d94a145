package domain

import (
	"context"
	"time"
)

type NotificationPurpose string

const (
	PurposeBookingConfirmation NotificationPurpose = "booking_confirmation"
	PurposeBookingCancellation NotificationPurpose = "booking_cancellation"
	PurposeWalletTopUp         NotificationPurpose = "wallet_topup"
)

const NotificationMethodInApp = "in-app"

type Notification struct {
	ID        int
	AccountID int
	Purpose   NotificationPurpose
	Message   string
	Method    string
	SentAt    time.Time
}

type NotificationRepository interface {
	Create(ctx context.Context, notification *Notification) error
	GetLatestByAccountId(ctx context.Context, accountId int, limit int) ([]Notification, error)
	Delete(ctx context.Context, id, accountId int) error
	DeleteAllByAccountId(ctx context.Context, accountId int) (int64, error)
}
