package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	postgres_adapter "zapshift/internal/adapters/out/postgres"
	"zapshift/internal/adapters/out/postgres/outboxrepo"
	"zapshift/internal/adapters/out/postgres/parcelrepo"
	"zapshift/internal/adapters/out/postgres/paymentrepo"
	"zapshift/internal/adapters/out/postgres/riderrepo"
	"zapshift/internal/adapters/out/postgres/trackingrepo"
	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/parcel"
	"zapshift/internal/core/domain/model/rider"
	"zapshift/internal/core/domain/model/tracking"
	"zapshift/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const trackingTopic = "tracking-events"

// uowFactory narrows the adapter factory to the command layer's UoWFactory.
type uowFactory struct {
	factory *postgres_adapter.GormUnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

// paidGateway confirms every session as paid for one parcel.
type paidGateway struct {
	session ports.CheckoutSession
}

func (g paidGateway) RetrieveSession(_ context.Context, _ string) (ports.CheckoutSession, error) {
	return g.session, nil
}

func (g paidGateway) CreateCheckoutSession(_ context.Context, _ ports.CheckoutRequest) (ports.CheckoutLink, error) {
	return ports.CheckoutLink{}, nil
}

type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   *postgres_adapter.GormUnitOfWorkFactory
	commands  uowFactory
}

func (s *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	s.Require().NoError(err)
	s.db = db

	s.Require().NoError(postgres_adapter.Migrate(db))

	s.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
	s.commands = uowFactory{factory: s.factory}
}

func (s *UnitOfWorkIntegrationTestSuite) SetupTest() {
	s.Require().NoError(s.db.Exec(
		"TRUNCATE TABLE parcels, riders, payments, tracking_events, users, outbox_messages",
	).Error)
}

func (s *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if s.container != nil {
		s.Require().NoError(s.container.Terminate(context.Background()))
	}
}

func (s *UnitOfWorkIntegrationTestSuite) TestFactory_CreatesSeparateInstances() {
	uow1 := s.factory.Create()
	uow2 := s.factory.Create()

	s.NotSame(uow1, uow2)
	s.NotNil(uow1.ParcelRepository())
	s.NotNil(uow1.RiderRepository())
	s.NotNil(uow1.PaymentRepository())
	s.NotNil(uow1.TrackingRepository())
	s.NotNil(uow1.UserRepository())
	s.NotNil(uow1.OutboxRepository())
}

func (s *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := s.T().Context()
	uow := s.factory.Create()

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Begin(ctx), "a second Begin is a no-op")
	s.Require().NoError(uow.Commit(ctx))

	s.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	s.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)

	s.Require().NoError(uow.Begin(ctx))
	s.Require().NoError(uow.Rollback(ctx))
}

func (s *UnitOfWorkIntegrationTestSuite) TestCommit_ParcelEventAndOutboxTogether() {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	p, err := s.machine(parcel.ReleaseUnconditional).Create(ctx, uow, s.intake())
	s.Require().NoError(err)
	s.Require().NoError(uow.Commit(ctx))

	s.assertCount(&parcelrepo.ParcelDTO{}, 1)
	s.assertCount(&outboxrepo.OutboxMessageDTO{}, 1)
	s.Equal([]string{tracking.StatusParcelCreated}, s.statuses(p.TrackingID()))
}

func (s *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsEveryRepository() {
	ctx := s.T().Context()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))

	_, err := s.machine(parcel.ReleaseUnconditional).Create(ctx, uow, s.intake())
	s.Require().NoError(err)
	s.Require().NoError(uow.Rollback(ctx))

	s.assertCount(&parcelrepo.ParcelDTO{}, 0)
	s.assertCount(&trackingrepo.TrackingEventDTO{}, 0)
	s.assertCount(&outboxrepo.OutboxMessageDTO{}, 0)
}

func (s *UnitOfWorkIntegrationTestSuite) TestReconcileTwice_OnePaymentOneParcelPaidEvent() {
	ctx := s.T().Context()
	p := s.createParcel()
	handler := s.reconciler(p, "pi_3Oabc")

	cmd, err := commands.NewReconcilePaymentCommand("cs_test_1")
	s.Require().NoError(err)

	first, err := handler.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(commands.OutcomeApplied, first.Outcome)

	second, err := handler.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(commands.OutcomeAlreadyProcessed, second.Outcome)
	s.Equal("pi_3Oabc", second.Payment.TransactionID())

	s.assertCount(&paymentrepo.PaymentDTO{}, 1)
	s.Equal(
		[]string{tracking.StatusParcelCreated, tracking.StatusParcelPaid},
		s.statuses(p.TrackingID()),
	)

	stored, err := s.factory.Create().ParcelRepository().Get(ctx, p.ID())
	s.Require().NoError(err)
	s.Equal(parcel.PaymentPaid, stored.PaymentStatus())
	s.Equal(parcel.StatusPendingPickup, stored.DeliveryStatus())
}

func (s *UnitOfWorkIntegrationTestSuite) TestReconcileConcurrently_ExactlyOneApplies() {
	ctx := s.T().Context()
	p := s.createParcel()
	handler := s.reconciler(p, "pi_race")

	cmd, err := commands.NewReconcilePaymentCommand("cs_race")
	s.Require().NoError(err)

	const deliveries = 5
	var wg sync.WaitGroup
	outcomes := make(chan commands.ReconciliationOutcome, deliveries)
	failures := make(chan error, deliveries)

	for range deliveries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			result, handleErr := handler.Handle(ctx, cmd)
			if handleErr != nil {
				failures <- handleErr
				return
			}
			outcomes <- result.Outcome
		}()
	}
	wg.Wait()
	close(outcomes)
	close(failures)

	for err := range failures {
		s.Failf("reconcile failed", "%v", err)
	}

	counts := map[commands.ReconciliationOutcome]int{}
	for outcome := range outcomes {
		counts[outcome]++
	}
	s.Equal(1, counts[commands.OutcomeApplied])
	s.Equal(deliveries-1, counts[commands.OutcomeAlreadyProcessed])

	s.assertCount(&paymentrepo.PaymentDTO{}, 1)
	s.Equal(
		[]string{tracking.StatusParcelCreated, tracking.StatusParcelPaid},
		s.statuses(p.TrackingID()),
	)
}

func (s *UnitOfWorkIntegrationTestSuite) TestReconcileSecondCharge_RecordedAsDuplicate() {
	ctx := s.T().Context()
	p := s.createParcel()

	cmd, err := commands.NewReconcilePaymentCommand("cs_test_1")
	s.Require().NoError(err)

	first, err := s.reconciler(p, "pi_first").Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(commands.OutcomeApplied, first.Outcome)

	second, err := s.reconciler(p, "pi_second").Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(commands.OutcomeDuplicateCharge, second.Outcome)
	s.Equal("pi_second", second.Payment.TransactionID())
	s.Nil(second.Parcel)

	s.assertCount(&paymentrepo.PaymentDTO{}, 2)
	s.Equal(
		[]string{tracking.StatusParcelCreated, tracking.StatusParcelPaid},
		s.statuses(p.TrackingID()),
	)
}

func (s *UnitOfWorkIntegrationTestSuite) TestAutoAssign_SkipsDistrictsWithoutRiders() {
	ctx := s.T().Context()
	stranded := s.paidParcelFrom("Sylhet")
	served := s.paidParcelFrom("Dhaka")
	r := s.approvedRider()

	assigned, err := commands.NewAutoAssignRiderCommandHandler(s.commands, s.machine(parcel.ReleaseUnconditional)).
		Handle(ctx, commands.NewAutoAssignRiderCommand())
	s.Require().NoError(err)
	s.True(assigned.ID().IsEqual(served.ID()))
	s.True(assigned.IsAssignedTo(r.ID()))

	left, err := s.factory.Create().ParcelRepository().Get(ctx, stranded.ID())
	s.Require().NoError(err)
	s.Equal(parcel.StatusPendingPickup, left.DeliveryStatus())
	s.Nil(left.Rider())
}

func (s *UnitOfWorkIntegrationTestSuite) TestDeleteRider_RefusedWhileNamedOnOpenParcel() {
	ctx := s.T().Context()
	machine := s.machine(parcel.ReleaseUnconditional)
	p := s.paidParcel()
	r := s.approvedRider()

	assign, err := commands.NewAssignRiderCommand(p.ID(), r.ID())
	s.Require().NoError(err)
	_, err = commands.NewAssignRiderCommandHandler(s.commands, machine).Handle(ctx, assign)
	s.Require().NoError(err)

	arriving, err := commands.NewUpdateParcelStatusCommand(p.ID(), "rider-arriving", r.ID(), r.Email())
	s.Require().NoError(err)
	_, err = commands.NewUpdateParcelStatusCommandHandler(s.commands, machine).Handle(ctx, arriving)
	s.Require().NoError(err)
	s.Equal(rider.WorkAvailable, s.workStatus(r.ID()))

	remove, err := commands.NewDeleteRiderCommand(r.ID())
	s.Require().NoError(err)
	s.Require().ErrorIs(commands.NewDeleteRiderCommandHandler(s.commands).Handle(ctx, remove), commands.ErrRiderIsOnDelivery)

	// A rider row removed behind the handler's back must not strand the parcel.
	s.Require().NoError(s.factory.Create().RiderRepository().Delete(ctx, r.ID()))

	deliver, err := commands.NewUpdateParcelStatusCommand(p.ID(), "delivered", r.ID(), r.Email())
	s.Require().NoError(err)
	delivered, err := commands.NewUpdateParcelStatusCommandHandler(s.commands, machine).Handle(ctx, deliver)
	s.Require().NoError(err)
	s.Equal(parcel.StatusDelivered, delivered.DeliveryStatus())
}

func (s *UnitOfWorkIntegrationTestSuite) TestAssignThenDeliver_RiderCoupling() {
	ctx := s.T().Context()
	machine := s.machine(parcel.ReleaseUnconditional)
	p := s.paidParcel()
	r := s.approvedRider()

	assign, err := commands.NewAssignRiderCommand(p.ID(), r.ID())
	s.Require().NoError(err)
	_, err = commands.NewAssignRiderCommandHandler(s.commands, machine).Handle(ctx, assign)
	s.Require().NoError(err)
	s.Equal(rider.WorkInDelivery, s.workStatus(r.ID()))

	update, err := commands.NewUpdateParcelStatusCommand(p.ID(), "delivered", r.ID(), r.Email())
	s.Require().NoError(err)
	delivered, err := commands.NewUpdateParcelStatusCommandHandler(s.commands, machine).Handle(ctx, update)
	s.Require().NoError(err)
	s.Equal(parcel.StatusDelivered, delivered.DeliveryStatus())
	s.Equal(rider.WorkAvailable, s.workStatus(r.ID()))

	s.Equal([]string{
		tracking.StatusParcelCreated,
		tracking.StatusParcelPaid,
		tracking.StatusDriverAssigned,
		"delivered",
	}, s.statuses(p.TrackingID()))
}

func (s *UnitOfWorkIntegrationTestSuite) TestReleasePolicies_Diverge() {
	ctx := s.T().Context()

	for _, tc := range []struct {
		policy parcel.ReleasePolicy
		want   rider.WorkStatus
	}{
		{policy: parcel.ReleaseUnconditional, want: rider.WorkAvailable},
		{policy: parcel.ReleaseTerminalOnly, want: rider.WorkInDelivery},
	} {
		s.Run(string(tc.policy), func() {
			machine := s.machine(tc.policy)
			p := s.paidParcel()
			r := s.approvedRider()

			assign, err := commands.NewAssignRiderCommand(p.ID(), r.ID())
			s.Require().NoError(err)
			_, err = commands.NewAssignRiderCommandHandler(s.commands, machine).Handle(ctx, assign)
			s.Require().NoError(err)

			update, err := commands.NewUpdateParcelStatusCommand(p.ID(), "rider-arriving", r.ID(), r.Email())
			s.Require().NoError(err)
			_, err = commands.NewUpdateParcelStatusCommandHandler(s.commands, machine).Handle(ctx, update)
			s.Require().NoError(err)

			s.Equal(tc.want, s.workStatus(r.ID()))
		})
	}
}

func (s *UnitOfWorkIntegrationTestSuite) machine(release parcel.ReleasePolicy) commands.ParcelStateMachine {
	return commands.NewParcelStateMachine(
		parcel.StrictTransitions(),
		release,
		commands.NewTrackingLedger(trackingTopic, nil),
		nil,
	)
}

func (s *UnitOfWorkIntegrationTestSuite) reconciler(p *parcel.Parcel, transactionID string) commands.ReconcilePaymentCommandHandler {
	gateway := paidGateway{session: ports.CheckoutSession{
		Reference:     "cs_test",
		TransactionID: transactionID,
		PaymentStatus: ports.GatewayPaid,
		AmountMinor:   p.Details().Cost.MinorUnits(),
		Currency:      p.Details().Cost.Currency(),
		ParcelID:      p.ID().String(),
		ParcelName:    p.Details().Name,
		TrackingID:    p.TrackingID().String(),
		CustomerEmail: p.Sender().Email.String(),
	}}
	return commands.NewReconcilePaymentCommandHandler(
		s.commands, gateway, nil, s.machine(parcel.ReleaseUnconditional), nil)
}

func (s *UnitOfWorkIntegrationTestSuite) createParcel() *parcel.Parcel {
	in := s.intake()
	cmd := commands.NewCreateParcelCommand(in.Details, in.Sender, in.Receiver)
	p, err := commands.NewCreateParcelCommandHandler(s.commands, s.machine(parcel.ReleaseUnconditional)).
		Handle(s.T().Context(), cmd)
	s.Require().NoError(err)
	return p
}

func (s *UnitOfWorkIntegrationTestSuite) paidParcel() *parcel.Parcel {
	return s.paidParcelFrom("Dhaka")
}

func (s *UnitOfWorkIntegrationTestSuite) paidParcelFrom(district string) *parcel.Parcel {
	ctx := s.T().Context()
	in := s.intake()
	in.Sender.District = district
	p, err := commands.NewCreateParcelCommandHandler(s.commands, s.machine(parcel.ReleaseUnconditional)).
		Handle(ctx, commands.NewCreateParcelCommand(in.Details, in.Sender, in.Receiver))
	s.Require().NoError(err)

	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	paid, err := s.machine(parcel.ReleaseUnconditional).MarkPaid(ctx, uow, p.ID(), p.TrackingID())
	s.Require().NoError(err)
	s.Require().NoError(uow.Commit(ctx))
	return paid
}

func (s *UnitOfWorkIntegrationTestSuite) approvedRider() *rider.Rider {
	email, err := kernel.NewEmail(kernel.NewUUID().String() + "@riders.example.com")
	s.Require().NoError(err)

	r, err := rider.NewRider(kernel.NewUUID(), rider.Profile{
		Name:     "Rafiq",
		Email:    email,
		Phone:    "+8801700000000",
		Region:   "Dhaka",
		District: "Dhaka",
	}, time.Now())
	s.Require().NoError(err)
	s.Require().NoError(r.Decide(rider.ApprovalApproved))
	s.Require().NoError(s.factory.Create().RiderRepository().Add(s.T().Context(), r))
	return r
}

func (s *UnitOfWorkIntegrationTestSuite) intake() commands.NewParcel {
	cost, err := kernel.NewMoney(decimal.RequireFromString("150"), kernel.DefaultCurrency)
	s.Require().NoError(err)
	sender, err := kernel.NewEmail("nadia@example.com")
	s.Require().NoError(err)

	return commands.NewParcel{
		Details: parcel.Details{
			Name:   "Documents",
			Kind:   parcel.KindDocument,
			Weight: decimal.RequireFromString("0.5"),
			Cost:   cost,
		},
		Sender: parcel.Sender{
			Name:     "Nadia",
			Email:    sender,
			Phone:    "+8801711111111",
			Region:   "Dhaka",
			District: "Dhaka",
			Address:  "Dhanmondi",
		},
		Receiver: parcel.Receiver{
			Name:     "Karim",
			Phone:    "+8801822222222",
			Region:   "Chattogram",
			District: "Chattogram",
			Address:  "GEC Circle",
		},
	}
}

func (s *UnitOfWorkIntegrationTestSuite) workStatus(id kernel.UUID) rider.WorkStatus {
	var dto riderrepo.RiderDTO
	s.Require().NoError(s.db.Take(&dto, "id = ?", id.Bytes()).Error)
	return rider.WorkStatus(dto.WorkStatus)
}

func (s *UnitOfWorkIntegrationTestSuite) statuses(id tracking.ID) []string {
	var statuses []string
	s.Require().NoError(s.db.
		Model(&trackingrepo.TrackingEventDTO{}).
		Where("tracking_id = ?", id.String()).
		Order("created_at ASC, seq ASC").
		Pluck("status", &statuses).Error)
	return statuses
}

func (s *UnitOfWorkIntegrationTestSuite) assertCount(model any, expected int64) {
	var count int64
	s.Require().NoError(s.db.Model(model).Count(&count).Error)
	s.Equal(expected, count)
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
