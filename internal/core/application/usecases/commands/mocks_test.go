package commands_test

import (
	"context"
	"testing"
	"time"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/outbox"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/payment"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/core/domain/model/user"
	"zapshift/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) ExistsByTrackingID(ctx context.Context, id tracking.ID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) GetFirstAwaitingPickup(ctx context.Context, districts []string) (*parcel.Parcel, error) {
	args := m.Called(ctx, districts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelRepository) HasOpenForRider(ctx context.Context, riderID kernel.UUID) (bool, error) {
	args := m.Called(ctx, riderID)
	return args.Bool(0), args.Error(1)
}

func (m *MockParcelRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRiderRepository struct{ mock.Mock }

func (m *MockRiderRepository) Add(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Update(ctx context.Context, r *rider.Rider) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockRiderRepository) Get(ctx context.Context, id kernel.UUID) (*rider.Rider, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAllAvailableInDistrict(ctx context.Context, district string) ([]*rider.Rider, error) {
	args := m.Called(ctx, district)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*rider.Rider), args.Error(1)
}

func (m *MockRiderRepository) GetAvailableDistricts(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRiderRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, p *payment.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByTransactionID(ctx context.Context, transactionID string) (*payment.Payment, error) {
	args := m.Called(ctx, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Payment), args.Error(1)
}

type MockTrackingRepository struct{ mock.Mock }

func (m *MockTrackingRepository) Append(ctx context.Context, event *tracking.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

type MockOutboxRepository struct{ mock.Mock }

func (m *MockOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

func (m *MockOutboxRepository) FetchPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*outbox.Message), args.Error(1)
}

func (m *MockOutboxRepository) Update(ctx context.Context, message *outbox.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) RiderRepository() ports.RiderRepository {
	args := m.Called()
	return args.Get(0).(ports.RiderRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

func (m *MockUoW) OutboxRepository() ports.OutboxRepository {
	args := m.Called()
	return args.Get(0).(ports.OutboxRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPaymentGateway struct{ mock.Mock }

func (m *MockPaymentGateway) RetrieveSession(ctx context.Context, reference string) (ports.CheckoutSession, error) {
	args := m.Called(ctx, reference)
	return args.Get(0).(ports.CheckoutSession), args.Error(1)
}

func (m *MockPaymentGateway) CreateCheckoutSession(ctx context.Context, request ports.CheckoutRequest) (ports.CheckoutLink, error) {
	args := m.Called(ctx, request)
	return args.Get(0).(ports.CheckoutLink), args.Error(1)
}

type MockLocker struct{ mock.Mock }

func (m *MockLocker) Lock(ctx context.Context, key string, ttl time.Duration) (ports.UnlockFunc, error) {
	args := m.Called(ctx, key, ttl)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.UnlockFunc), args.Error(1)
}

type MockProducer struct{ mock.Mock }

func (m *MockProducer) SendMessage(ctx context.Context, topic, key string, value []byte) error {
	args := m.Called(ctx, topic, key, value)
	return args.Error(0)
}

func (m *MockProducer) Close() error {
	args := m.Called()
	return args.Error(0)
}

// repos bundles the repository mocks handed out by a MockUoW.
type repos struct {
	parcels  *MockParcelRepository
	riders   *MockRiderRepository
	payments *MockPaymentRepository
	tracking *MockTrackingRepository
	users    *MockUserRepository
	outbox   *MockOutboxRepository
}

// newUoW returns a unit of work whose repository accessors may be called any
// number of times in any order. Transaction calls stay strict per test.
func newUoW() (*MockUoW, repos) {
	r := repos{
		parcels:  new(MockParcelRepository),
		riders:   new(MockRiderRepository),
		payments: new(MockPaymentRepository),
		tracking: new(MockTrackingRepository),
		users:    new(MockUserRepository),
		outbox:   new(MockOutboxRepository),
	}

	uow := new(MockUoW)
	uow.On("ParcelRepository").Return(r.parcels).Maybe()
	uow.On("RiderRepository").Return(r.riders).Maybe()
	uow.On("PaymentRepository").Return(r.payments).Maybe()
	uow.On("TrackingRepository").Return(r.tracking).Maybe()
	uow.On("UserRepository").Return(r.users).Maybe()
	uow.On("OutboxRepository").Return(r.outbox).Maybe()

	return uow, r
}

func (r repos) assert(t *testing.T) {
	t.Helper()
	r.parcels.AssertExpectations(t)
	r.riders.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.tracking.AssertExpectations(t)
	r.users.AssertExpectations(t)
	r.outbox.AssertExpectations(t)
}

var fixedNow = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedClock() time.Time {
	return fixedNow
}

func newMachine() commands.ParcelStateMachine {
	return commands.NewParcelStateMachine(
		parcel.StrictTransitions(),
		parcel.ReleaseUnconditional,
		commands.NewTrackingLedger("", fixedClock),
		fixedClock,
	)
}

func mustEmail(t *testing.T, raw string) kernel.Email {
	t.Helper()
	email, err := kernel.NewEmail(raw)
	require.NoError(t, err)
	return email
}

func mustTrackingID(t *testing.T, raw string) tracking.ID {
	t.Helper()
	id, err := tracking.ParseID(raw)
	require.NoError(t, err)
	return id
}

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()
	money, err := kernel.NewMoney(decimal.RequireFromString(amount), "usd")
	require.NoError(t, err)
	return money
}

func parcelIntake(t *testing.T) commands.NewParcel {
	t.Helper()
	return commands.NewParcel{
		Details: parcel.Details{
			Name:   "Birthday gift",
			Kind:   parcel.KindNonDocument,
			Weight: decimal.RequireFromString("1.5"),
			Cost:   mustMoney(t, "120"),
		},
		Sender: parcel.Sender{
			Name:     "Ayesha Rahman",
			Email:    mustEmail(t, "ayesha@example.com"),
			Phone:    "+8801700000000",
			Region:   "Dhaka",
			District: "Dhaka",
			Address:  "House 12, Road 4, Dhanmondi",
		},
		Receiver: parcel.Receiver{
			Name:     "Karim Uddin",
			Phone:    "+8801800000000",
			Region:   "Chattogram",
			District: "Chattogram",
			Address:  "Agrabad C/A",
		},
	}
}

// newParcelIn restores a parcel in the given lifecycle state. assigned may be nil.
func newParcelIn(
	t *testing.T,
	status parcel.Status,
	paymentStatus parcel.PaymentStatus,
	assigned *parcel.AssignedRider,
) *parcel.Parcel {
	t.Helper()
	in := parcelIntake(t)
	return parcel.RestoreParcel(
		kernel.NewUUID(),
		mustTrackingID(t, "ZAP-AB12CD34EF"),
		in.Details,
		in.Sender,
		in.Receiver,
		status,
		paymentStatus,
		assigned,
		fixedNow.Add(-time.Hour),
	)
}

func newRider(t *testing.T, approval rider.ApprovalStatus, work rider.WorkStatus) *rider.Rider {
	t.Helper()
	return rider.RestoreRider(
		kernel.NewUUID(),
		rider.Profile{
			Name:     "Rafiq Islam",
			Email:    mustEmail(t, "rafiq@example.com"),
			Phone:    "+8801900000000",
			Region:   "Dhaka",
			District: "Dhaka",
		},
		approval,
		work,
		fixedNow.Add(-24*time.Hour),
	)
}

func snapshotOf(r *rider.Rider) *parcel.AssignedRider {
	return &parcel.AssignedRider{ID: r.ID(), Name: r.Name(), Email: r.Email(), Phone: r.Phone()}
}

func refOf(r *rider.Rider) commands.RiderRef {
	return commands.RiderRef{ID: r.ID(), Email: r.Email()}
}

func eventWithStatus(status string) any {
	return mock.MatchedBy(func(e *tracking.Event) bool {
		return e.Status() == status
	})
}
