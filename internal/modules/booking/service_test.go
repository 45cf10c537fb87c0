package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"marketplace/internal/audit"
	"marketplace/internal/domain"
	"marketplace/internal/pkg/apperr"
	"marketplace/internal/pkg/pagination"
	"marketplace/internal/repository"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) CreateWithAddons(ctx context.Context, b *domain.Booking, addons []domain.BookingAddon) error {
	args := m.Called(ctx, b, addons)
	if args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
		b.Addons = addons
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetForCustomer(ctx context.Context, id, customerID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) GetForProvider(ctx context.Context, id, providerID int64) (*domain.Booking, error) {
	args := m.Called(ctx, id, providerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, reason string) error {
	args := m.Called(ctx, id, status, reason)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, f repository.BookingFilter, p pagination.Params) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, f, p)
	return args.Get(0).([]domain.Booking), args.Get(1).(int64), args.Error(2)
}

type MockCatalogReader struct {
	mock.Mock
}

func (m *MockCatalogReader) GetBookable(ctx context.Context, serviceID int64) (*repository.Bookable, error) {
	args := m.Called(ctx, serviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.Bookable), args.Error(1)
}

func (m *MockCatalogReader) AddonsByIDs(ctx context.Context, serviceID int64, ids []int64) ([]domain.ServiceAddon, error) {
	args := m.Called(ctx, serviceID, ids)
	return args.Get(0).([]domain.ServiceAddon), args.Error(1)
}

type MockRecorder struct {
	mock.Mock
}

func (m *MockRecorder) Record(ctx context.Context, e audit.Entry) {
	m.Called(ctx, e)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func bookable(price, rate string) *repository.Bookable {
	return &repository.Bookable{
		ServiceID:      10,
		ProviderID:     20,
		BasePrice:      dec(price),
		Currency:       "USD",
		IsActive:       true,
		ProviderActive: true,
		CommissionRate: dec(rate),
	}
}

func createRequest(addons ...int64) CreateBookingRequest {
	at := time.Now().Add(48 * time.Hour)
	return CreateBookingRequest{ServiceID: 10, ProviderID: 20, ScheduledAt: &at, AddonIDs: addons}
}

func TestService_Create_ComputesCommission(t *testing.T) {
	bookings := new(MockBookingRepository)
	catalog := new(MockCatalogReader)
	rec := new(MockRecorder)

	catalog.On("GetBookable", mock.Anything, int64(10)).Return(bookable("100", "15"), nil)
	catalog.On("AddonsByIDs", mock.Anything, int64(10), []int64{}).Return([]domain.ServiceAddon{}, nil)
	bookings.On("CreateWithAddons", mock.Anything, mock.AnythingOfType("*domain.Booking"), []domain.BookingAddon{}).Return(nil)
	rec.On("Record", mock.Anything, mock.MatchedBy(func(e audit.Entry) bool {
		return e.Action == "customer.booking.create" && e.ResourceID == 999
	})).Return()

	svc := NewService(bookings, catalog, rec)
	b, err := svc.Create(context.Background(), 7, createRequest())
	require.NoError(t, err)

	assert.True(t, b.TotalAmount.Equal(dec("100")))
	assert.True(t, b.CommissionAmount.Equal(dec("15")))
	assert.True(t, b.CommissionRate.Equal(dec("15")))
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, domain.PaymentPending, b.PaymentStatus)
	assert.EqualValues(t, 7, b.CustomerID)

	bookings.AssertExpectations(t)
	rec.AssertExpectations(t)
}

func TestService_Create_AddsAddonsAndRounds(t *testing.T) {
	bookings := new(MockBookingRepository)
	catalog := new(MockCatalogReader)

	addons := []domain.ServiceAddon{
		{ID: 1, ServiceID: 10, Name: "Windows", Price: dec("10.50"), IsActive: true},
		{ID: 2, ServiceID: 10, Name: "Oven", Price: dec("4.25"), IsActive: true},
	}
	catalog.On("GetBookable", mock.Anything, int64(10)).Return(bookable("100", "15"), nil)
	catalog.On("AddonsByIDs", mock.Anything, int64(10), []int64{1, 2}).Return(addons, nil)
	bookings.On("CreateWithAddons", mock.Anything, mock.Anything, mock.MatchedBy(func(a []domain.BookingAddon) bool {
		return len(a) == 2 && a[0].Name == "Windows" && a[1].Price.Equal(dec("4.25"))
	})).Return(nil)

	svc := NewService(bookings, catalog, nil)
	b, err := svc.Create(context.Background(), 7, createRequest(1, 2, 1))
	require.NoError(t, err)

	assert.True(t, b.TotalAmount.Equal(dec("114.75")))
	// 114.75 * 15 / 100 = 17.2125
	assert.True(t, b.CommissionAmount.Equal(dec("17.21")))
	assert.Len(t, b.Addons, 2)
}

func TestService_Create_RejectsForeignAddon(t *testing.T) {
	bookings := new(MockBookingRepository)
	catalog := new(MockCatalogReader)

	catalog.On("GetBookable", mock.Anything, int64(10)).Return(bookable("100", "15"), nil)
	catalog.On("AddonsByIDs", mock.Anything, int64(10), []int64{1, 77}).
		Return([]domain.ServiceAddon{{ID: 1, Price: dec("5")}}, nil)

	svc := NewService(bookings, catalog, nil)
	_, err := svc.Create(context.Background(), 7, createRequest(1, 77))
	assert.ErrorIs(t, err, ErrInvalidAddon)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	bookings.AssertNotCalled(t, "CreateWithAddons", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_Create_ServiceNotBookable(t *testing.T) {
	cases := map[string]*repository.Bookable{
		"inactive service":  func() *repository.Bookable { b := bookable("100", "10"); b.IsActive = false; return b }(),
		"inactive provider": func() *repository.Bookable { b := bookable("100", "10"); b.ProviderActive = false; return b }(),
		"other provider":    func() *repository.Bookable { b := bookable("100", "10"); b.ProviderID = 21; return b }(),
	}
	for name, row := range cases {
		t.Run(name, func(t *testing.T) {
			catalog := new(MockCatalogReader)
			catalog.On("GetBookable", mock.Anything, int64(10)).Return(row, nil)

			svc := NewService(new(MockBookingRepository), catalog, nil)
			_, err := svc.Create(context.Background(), 7, createRequest())
			assert.ErrorIs(t, err, repository.ErrServiceNotFound)
		})
	}
}

func TestService_Cancel(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetForCustomer", mock.Anything, int64(1), int64(7)).
		Return(&domain.Booking{ID: 1, CustomerID: 7, Status: domain.BookingConfirmed}, nil)
	bookings.On("GetForCustomer", mock.Anything, int64(2), int64(7)).
		Return(&domain.Booking{ID: 2, CustomerID: 7, Status: domain.BookingInProgress}, nil)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingCancelled, "sick").Return(nil)

	svc := NewService(bookings, new(MockCatalogReader), nil)

	b, err := svc.Cancel(context.Background(), 7, 1, "sick")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, b.Status)
	assert.Equal(t, "sick", b.CancellationReason)

	_, err = svc.Cancel(context.Background(), 7, 2, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, apperr.KindBusinessRule, apperr.KindOf(err))
	bookings.AssertNumberOfCalls(t, "UpdateStatus", 1)
}

func TestService_CancelRefusesPaidBooking(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetForCustomer", mock.Anything, int64(1), int64(7)).
		Return(&domain.Booking{ID: 1, CustomerID: 7, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid}, nil)
	bookings.On("GetByID", mock.Anything, int64(1)).
		Return(&domain.Booking{ID: 1, CustomerID: 7, Status: domain.BookingConfirmed, PaymentStatus: domain.PaymentPaid}, nil)

	svc := NewService(bookings, new(MockCatalogReader), nil)

	_, err := svc.Cancel(context.Background(), 7, 1, "changed plans")
	assert.ErrorIs(t, err, ErrPaidCancellation)
	assert.Equal(t, apperr.KindBusinessRule, apperr.KindOf(err))

	_, err = svc.AdminUpdateStatus(context.Background(), 1, domain.BookingCancelled, "")
	assert.ErrorIs(t, err, ErrPaidCancellation)
	bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestService_ProviderUpdateStatus(t *testing.T) {
	bookings := new(MockBookingRepository)
	bookings.On("GetForProvider", mock.Anything, int64(1), int64(20)).
		Return(&domain.Booking{ID: 1, ProviderID: 20, Status: domain.BookingPending}, nil)
	bookings.On("GetForProvider", mock.Anything, int64(2), int64(20)).
		Return(&domain.Booking{ID: 2, ProviderID: 20, Status: domain.BookingCompleted}, nil)
	bookings.On("GetForProvider", mock.Anything, int64(3), int64(20)).
		Return(nil, repository.ErrBookingNotFound)
	bookings.On("UpdateStatus", mock.Anything, int64(1), domain.BookingInProgress, "").Return(nil)

	svc := NewService(bookings, new(MockCatalogReader), nil)
	ctx := context.Background()

	b, err := svc.ProviderUpdateStatus(ctx, 20, 1, domain.BookingInProgress, "")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingInProgress, b.Status)

	_, err = svc.ProviderUpdateStatus(ctx, 20, 2, domain.BookingPending, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.ProviderUpdateStatus(ctx, 20, 2, domain.BookingRefunded, "")
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = svc.ProviderUpdateStatus(ctx, 20, 1, domain.BookingStatus("archived"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	_, err = svc.ProviderUpdateStatus(ctx, 20, 3, domain.BookingConfirmed, "")
	assert.ErrorIs(t, err, repository.ErrBookingNotFound)
}

func TestService_ListForCustomerPinsCustomer(t *testing.T) {
	bookings := new(MockBookingRepository)
	p := pagination.Params{Page: 1, Limit: 20}
	bookings.On("List", mock.Anything, repository.BookingFilter{CustomerID: 7, Status: domain.BookingPending}, p).
		Return([]domain.Booking{{ID: 1}}, int64(1), nil)

	svc := NewService(bookings, new(MockCatalogReader), nil)
	items, total, err := svc.ListForCustomer(context.Background(), 7,
		ListQuery{Status: domain.BookingPending, CustomerID: 99, ProviderID: 5}, p)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Len(t, items, 1)
}
