package cmd

import (
	"errors"
	"log/slog"

	httpin "zapshift/internal/adapters/in/http"
	"zapshift/internal/adapters/out/jwtauth"
	"zapshift/internal/adapters/out/kafka"
	"zapshift/internal/adapters/out/postgres"
	"zapshift/internal/adapters/out/redislock"
	"zapshift/internal/adapters/out/stripe"
	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/application/usecases/queries"
	"zapshift/internal/core/ports"
	"zapshift/internal/jobs"

	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	logger     *slog.Logger
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory

	gateway  ports.PaymentGateway
	verifier ports.IdentityVerifier
	locker   ports.Locker
	producer ports.Producer
	redis    *goredis.Client
}

// NewCompositionRoot wires adapters for cfg. Redis and Kafka are optional: without
// REDIS_ADDR reconciliation relies on the database constraint alone, and without
// KAFKA_BROKERS outbox messages are written to the log.
func NewCompositionRoot(cfg Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	root := &CompositionRoot{
		cfg:        cfg,
		logger:     logger,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		gateway: stripe.NewGateway(stripe.Config{
			SecretKey:  cfg.StripeSecretKey,
			SuccessURL: cfg.CheckoutSuccessURL,
			CancelURL:  cfg.CheckoutCancelURL,
			BaseURL:    cfg.StripeBaseURL,
		}),
		verifier: jwtauth.NewVerifier(cfg.JWTSecret),
	}

	if cfg.RedisAddr != "" {
		root.redis = goredis.NewClient(&goredis.Options{Addr: cfg.RedisAddr, Password: cfg.RedisPassword})
		root.locker = redislock.NewLocker(root.redis)
	}

	if len(cfg.KafkaBrokers) > 0 {
		root.producer = kafka.NewProducer(cfg.KafkaBrokers)
	} else {
		root.producer = kafka.NewLogProducer(logger.With("component", "outbox"))
	}

	return root
}

func (c *CompositionRoot) Verifier() ports.IdentityVerifier {
	return c.verifier
}

func (c *CompositionRoot) UoWFactory() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) StateMachine() commands.ParcelStateMachine {
	return commands.NewParcelStateMachine(
		c.cfg.StatusTransitions,
		c.cfg.RiderReleasePolicy,
		commands.NewTrackingLedger(c.cfg.KafkaTrackingTopic, commands.SystemClock),
		commands.SystemClock,
	)
}

// Handlers builds every use case served over HTTP.
func (c *CompositionRoot) Handlers() httpin.Handlers {
	uowF := c.UoWFactory()
	machine := c.StateMachine()

	return httpin.Handlers{
		CreateParcel:       commands.NewCreateParcelCommandHandler(uowF, machine),
		DeleteParcel:       commands.NewDeleteParcelCommandHandler(uowF, machine),
		AssignRider:        commands.NewAssignRiderCommandHandler(uowF, machine),
		UpdateParcelStatus: commands.NewUpdateParcelStatusCommandHandler(uowF, machine),
		RejectAssignment:   commands.NewRejectAssignmentCommandHandler(uowF, machine),
		StartCheckout:      commands.NewStartCheckoutCommandHandler(uowF, c.gateway),
		ReconcilePayment: commands.NewReconcilePaymentCommandHandler(
			uowF, c.gateway, c.locker, machine, commands.SystemClock,
		),
		RegisterRider:  commands.NewRegisterRiderCommandHandler(uowF, commands.SystemClock),
		DecideRider:    commands.NewDecideRiderApplicationCommandHandler(uowF, machine.Riders()),
		DeleteRider:    commands.NewDeleteRiderCommandHandler(uowF),
		CreateUser:     commands.NewCreateUserCommandHandler(uowF, commands.SystemClock),
		ChangeUserRole: commands.NewChangeUserRoleCommandHandler(uowF),
		AppendTracking: commands.NewAppendTrackingEventCommandHandler(uowF, machine.Ledger()),

		GetParcel:                queries.NewGetParcelQueryHandler(c.gormDB),
		GetParcels:               queries.NewGetParcelsQueryHandler(c.gormDB),
		GetRiderParcels:          queries.NewGetRiderParcelsQueryHandler(c.gormDB),
		GetDeliveryStatusStats:   queries.NewGetDeliveryStatusStatsQueryHandler(c.gormDB),
		GetPayments:              queries.NewGetPaymentsQueryHandler(c.gormDB),
		GetRiders:                queries.NewGetRidersQueryHandler(c.gormDB),
		GetRiderDeliveriesPerDay: queries.NewGetRiderDeliveriesPerDayQueryHandler(c.gormDB),
		SearchUsers:              queries.NewSearchUsersQueryHandler(c.gormDB),
		GetUserRole:              queries.NewGetUserRoleQueryHandler(c.gormDB),
		ListTrackingEvents:       queries.NewListTrackingEventsQueryHandler(c.gormDB),
	}
}

// JobManager holds the outbox publisher and, when enabled, auto-assignment.
func (c *CompositionRoot) JobManager() *jobs.JobManager {
	uowF := c.UoWFactory()

	scheduled := []jobs.Job{
		jobs.NewOutboxPublisherJob(
			commands.NewPublishOutboxCommandHandler(uowF, c.producer, c.cfg.OutboxMaxAttempts, commands.SystemClock),
			c.cfg.OutboxSchedule,
			c.cfg.OutboxBatchSize,
			c.logger,
		),
	}
	if c.cfg.AutoAssignEnabled {
		scheduled = append(scheduled, jobs.NewAutoAssignJob(
			commands.NewAutoAssignRiderCommandHandler(uowF, c.StateMachine()),
			c.cfg.AutoAssignSchedule,
			c.logger,
		))
	}
	return jobs.NewJobManager(scheduled...)
}

// Close releases broker and cache connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	errList = append(errList, c.producer.Close())
	if c.redis != nil {
		errList = append(errList, c.redis.Close())
	}
	return errors.Join(errList...)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
