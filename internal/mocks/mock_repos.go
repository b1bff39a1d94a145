package mocks

import (
	"context"
	"time"

	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockAccountRepo struct {
	mock.Mock
	domain.AccountRepository
}

func (m *MockAccountRepo) GetById(ctx context.Context, id int) (*domain.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Account), args.Error(1)
}

type MockShowtimeRepo struct {
	mock.Mock
	domain.ShowtimeRepository
}

func (m *MockShowtimeRepo) GetById(ctx context.Context, id int) (*domain.Showtime, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.Showtime), args.Error(1)
}

func (m *MockShowtimeRepo) Create(ctx context.Context, showtime *domain.Showtime) error {
	args := m.Called(ctx, showtime)
	return args.Error(0)
}

func (m *MockShowtimeRepo) Deactivate(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBookingRepo struct {
	mock.Mock
	domain.BookingRepository
}

func (m *MockBookingRepo) GetById(ctx context.Context, id int) (*domain.BookingDetail, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(*domain.BookingDetail), args.Error(1)
}

func (m *MockBookingRepo) GetByAccountId(
	ctx context.Context,
	accountId int,
	pagination domain.Pagination) ([]domain.BookingDetail, *domain.Metadata, error) {

	args := m.Called(ctx, accountId, pagination)
	return args.Get(0).([]domain.BookingDetail), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingRepo) Search(
	ctx context.Context,
	filter domain.BookingFilter) ([]domain.BookingDetail, *domain.Metadata, error) {

	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.BookingDetail), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockBookingRepo) Stats(ctx context.Context, since time.Time) (*domain.BookingStats, error) {
	args := m.Called(ctx, since)
	return args.Get(0).(*domain.BookingStats), args.Error(1)
}

type MockNotificationRepo struct {
	mock.Mock
	domain.NotificationRepository
}

func (m *MockNotificationRepo) Create(ctx context.Context, notification *domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepo) GetLatestByAccountId(
	ctx context.Context,
	accountId int,
	limit int) ([]domain.Notification, error) {

	args := m.Called(ctx, accountId, limit)
	return args.Get(0).([]domain.Notification), args.Error(1)
}

func (m *MockNotificationRepo) Delete(ctx context.Context, id, accountId int) error {
	args := m.Called(ctx, id, accountId)
	return args.Error(0)
}

func (m *MockNotificationRepo) DeleteAllByAccountId(ctx context.Context, accountId int) (int64, error) {
	args := m.Called(ctx, accountId)
	return args.Get(0).(int64), args.Error(1)
}
