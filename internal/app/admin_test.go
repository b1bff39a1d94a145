package app

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/metinatakli/moviemate/api"
	"github.com/metinatakli/moviemate/internal/booking"
	"github.com/metinatakli/moviemate/internal/domain"
	"github.com/metinatakli/moviemate/internal/mocks"
	appvalidator "github.com/metinatakli/moviemate/internal/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AdminHandlerTestSuite struct {
	suite.Suite
	app          *Application
	bookings     *mocks.MockBookingManager
	bookingRepo  *mocks.MockBookingRepo
	showtimeRepo *mocks.MockShowtimeRepo
}

func (s *AdminHandlerTestSuite) SetupTest() {
	s.bookings = new(mocks.MockBookingManager)
	s.bookingRepo = new(mocks.MockBookingRepo)
	s.showtimeRepo = new(mocks.MockShowtimeRepo)

	s.app = newTestApplication(func(a *Application) {
		a.bookings = s.bookings
		a.bookingRepo = s.bookingRepo
		a.showtimeRepo = s.showtimeRepo
	})
}

func TestAdminHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminHandlerTestSuite))
}

func (s *AdminHandlerTestSuite) serve(method, url string, body any) (int, []byte) {
	w, r := executeRequest(s.T(), method, url, body)
	authenticate(s.T(), r, 1, true)

	s.app.Routes().ServeHTTP(w, r)

	return w.Code, w.Body.Bytes()
}

func (s *AdminHandlerTestSuite) TestSearchBookings() {
	day := func(d int) *time.Time {
		t := time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	tests := []struct {
		name           string
		query          string
		setupMock      func()
		wantStatus     int
		wantErrMessage string
		wantTotal      int
	}{
		{
			name:           "should reject an unknown status",
			query:          "?status=refunded",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be one of: all active cancelled",
		},
		{
			name:           "should reject a malformed date",
			query:          "?from=14-03-2026",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "invalid from parameter",
		},
		{
			name:           "should reject a range that ends before it starts",
			query:          "?from=2026-03-15&to=2026-03-14",
			wantStatus:     http.StatusBadRequest,
			wantErrMessage: "from must be on or before to",
		},
		{
			name:           "should reject a page size above the limit",
			query:          "?pageSize=500",
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: "must be at most 100",
		},
		{
			name:  "should search with whole days and defaults",
			query: "?status=cancelled&search=arrival&from=2026-03-01&to=2026-03-01",
			setupMock: func() {
				s.bookingRepo.On("Search", mock.Anything, domain.BookingFilter{
					Status: domain.BookingStatusCancelled,
					From:   day(1),
					To:     day(2),
					Pagination: domain.Pagination{
						Page:     DefaultPage,
						PageSize: DefaultPageSize,
						Term:     "arrival",
					},
				}).Return(
					[]domain.BookingDetail{*ownedBookingDetail(7, false)},
					domain.NewMetadata(1, DefaultPage, DefaultPageSize),
					nil,
				).Once()
			},
			wantStatus: http.StatusOK,
			wantTotal:  1,
		},
		{
			name:  "should fail when the search fails",
			query: "?page=2&pageSize=10",
			setupMock: func() {
				s.bookingRepo.On("Search", mock.Anything, domain.BookingFilter{
					Status:     domain.BookingStatusAll,
					Pagination: domain.Pagination{Page: 2, PageSize: 10},
				}).Return([]domain.BookingDetail(nil), (*domain.Metadata)(nil), errors.New("database error")).Once()
			},
			wantStatus:     http.StatusInternalServerError,
			wantErrMessage: ErrInternalServer,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.bookingRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodGet, "/admin/bookings"+tt.query, nil)
			authenticate(s.T(), r, 1, true)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusOK {
				var response api.BookingsResponse
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")
				s.Len(response.Bookings, tt.wantTotal)
				s.Equal(tt.wantTotal, response.Metadata.TotalRecords)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *AdminHandlerTestSuite) TestGetBookingStats() {
	s.bookingRepo.On("Stats", mock.Anything, mock.MatchedBy(func(since time.Time) bool {
		return since.Equal(time.Now().UTC().Truncate(24 * time.Hour))
	})).Return(&domain.BookingStats{
		TotalBookings:     4,
		ActiveBookings:    3,
		CancelledBookings: 1,
		TotalRevenue:      decimal.RequireFromString("60.00"),
		TodayBookings:     2,
		TopMovies:         []domain.MovieBookingCount{{MovieTitle: "Arrival", BookingCount: 3}},
	}, nil).Once()
	defer s.bookingRepo.AssertExpectations(s.T())

	status, body := s.serve(http.MethodGet, "/admin/bookings/stats", nil)
	s.Equal(http.StatusOK, status)

	var response api.BookingStatsResponse
	s.Require().NoError(json.Unmarshal(body, &response))

	want := api.BookingStatsResponse{
		TotalBookings:     4,
		ActiveBookings:    3,
		CancelledBookings: 1,
		TotalRevenue:      decimal.RequireFromString("60"),
		TodayBookings:     2,
		TopMovies:         []api.MovieBookingCount{{MovieTitle: "Arrival", BookingCount: 3}},
	}

	diff := cmp.Diff(want, response, decimalComparer)
	s.Empty(diff, "Response mismatch (-want +got):\n%s", diff)
}

func (s *AdminHandlerTestSuite) TestAdminCancelBookingSkipsOwnership() {
	s.bookings.On("CancelBooking", mock.Anything, 11).Return(&booking.CancelBookingResult{
		BookingID:      11,
		RefundedAmount: decimal.RequireFromString("20.00"),
		NewBalance:     decimal.RequireFromString("70.00"),
	}, nil).Once()
	defer s.bookings.AssertExpectations(s.T())

	status, body := s.serve(http.MethodPut, "/admin/bookings/11/cancel", nil)
	s.Equal(http.StatusOK, status)

	var response api.CancelBookingResponse
	s.Require().NoError(json.Unmarshal(body, &response))
	s.Equal(11, response.BookingId)
	s.True(response.RefundedAmount.Equal(decimal.RequireFromString("20")))

	s.bookingRepo.AssertNotCalled(s.T(), "GetById", mock.Anything, mock.Anything)
}

func (s *AdminHandlerTestSuite) TestAdminCancelUnknownBooking() {
	s.bookings.On("CancelBooking", mock.Anything, 404).
		Return((*booking.CancelBookingResult)(nil), domain.ErrBookingNotFound).Once()

	status, body := s.serve(http.MethodPut, "/admin/bookings/404/cancel", nil)
	s.Equal(http.StatusNotFound, status)

	var response api.ErrorResponse
	s.Require().NoError(json.Unmarshal(body, &response))
	s.Equal("booking_not_found", response.Code)
}

func (s *AdminHandlerTestSuite) TestCreateShowtime() {
	start := time.Date(2026, 4, 1, 19, 0, 0, 0, time.UTC)

	valid := api.CreateShowtimeRequest{
		MovieId:   1,
		TheaterId: 2,
		FormatId:  3,
		StartTime: start,
		Price:     decimal.RequireFromString("12.50"),
		Capacity:  80,
	}

	tests := []struct {
		name           string
		body           any
		setupMock      func()
		wantStatus     int
		wantErrMessage string
	}{
		{
			name: "should reject a capacity of zero",
			body: api.CreateShowtimeRequest{
				MovieId:   1,
				TheaterId: 2,
				FormatId:  3,
				StartTime: start,
				Price:     decimal.RequireFromString("12.50"),
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrRequired,
		},
		{
			name: "should reject a negative price",
			body: api.CreateShowtimeRequest{
				MovieId:   1,
				TheaterId: 2,
				FormatId:  3,
				StartTime: start,
				Price:     decimal.RequireFromString("-1"),
				Capacity:  80,
			},
			wantStatus:     http.StatusUnprocessableEntity,
			wantErrMessage: appvalidator.ErrMoney,
		},
		{
			name: "should fail when the catalog entries do not exist",
			body: valid,
			setupMock: func() {
				s.showtimeRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrRecordNotFound).Once()
			},
			wantStatus:     http.StatusNotFound,
			wantErrMessage: "movie, theater or format not found",
		},
		{
			name: "should create an open showtime",
			body: valid,
			setupMock: func() {
				s.showtimeRepo.On("Create", mock.Anything, mock.MatchedBy(func(st *domain.Showtime) bool {
					return st.Capacity == 80 && st.BookedSeats == 0 && st.BookingEnabled && st.IsActive
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*domain.Showtime).ID = 9
				}).Return(nil).Once()
			},
			wantStatus: http.StatusCreated,
		},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			s.SetupTest()

			defer s.showtimeRepo.AssertExpectations(s.T())

			if tt.setupMock != nil {
				tt.setupMock()
			}

			w, r := executeRequest(s.T(), http.MethodPost, "/admin/showtimes", tt.body)
			authenticate(s.T(), r, 1, true)

			s.app.Routes().ServeHTTP(w, r)

			s.Equal(tt.wantStatus, w.Code)

			if tt.wantStatus == http.StatusCreated {
				var response api.Showtime
				err := json.NewDecoder(w.Body).Decode(&response)
				s.Require().NoError(err, "Failed to decode response")
				s.Equal(9, response.Id)
				s.Equal(80, response.AvailableSeats)
				s.True(response.BookingEnabled)
				return
			}

			checkErrorResponse(s.T(), w, struct {
				wantStatus     int
				wantErrMessage string
			}{
				wantStatus:     tt.wantStatus,
				wantErrMessage: tt.wantErrMessage,
			})
		})
	}
}

func (s *AdminHandlerTestSuite) TestDeleteShowtime() {
	s.showtimeRepo.On("Deactivate", mock.Anything, 3).Return(nil).Once()
	s.showtimeRepo.On("Deactivate", mock.Anything, 4).Return(domain.ErrRecordNotFound).Once()
	defer s.showtimeRepo.AssertExpectations(s.T())

	status, _ := s.serve(http.MethodDelete, "/admin/showtimes/3", nil)
	s.Equal(http.StatusOK, status)

	status, body := s.serve(http.MethodDelete, "/admin/showtimes/4", nil)
	s.Equal(http.StatusNotFound, status)

	var response api.ErrorResponse
	s.Require().NoError(json.Unmarshal(body, &response))
	s.Equal(domain.ErrShowtimeNotFound.Error(), response.Message)
}
