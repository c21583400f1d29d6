package commands_test

import (
	"errors"
	"testing"

	"zapshift/internal/core/application/usecases/commands"
	"zapshift/internal/core/domain/model/outbox"
	"zapshift/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newOutboxMessage(t *testing.T, key string) *outbox.Message {
	t.Helper()
	message, err := outbox.NewMessage("tracking-events", key, []byte(`{"status":"parcel-paid"}`), fixedNow)
	require.NoError(t, err)
	return message
}

func TestPublishOutboxCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	delivered := newOutboxMessage(t, "ZAP-AB12CD34EF")
	refused := newOutboxMessage(t, "ZAP-0123456789")

	cmd, err := commands.NewPublishOutboxCommand(10)
	require.NoError(t, err)

	uow, r := newUoW()
	producer := new(MockProducer)
	brokerErr := errors.New("leader not available")

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		r.outbox.On("FetchPending", ctx, 10).Return([]*outbox.Message{delivered, refused}, nil).Once(),
		producer.On("SendMessage", ctx, "tracking-events", "ZAP-AB12CD34EF", delivered.Payload()).Return(nil).Once(),
		r.outbox.On("Update", ctx, delivered).Return(nil).Once(),
		producer.On("SendMessage", ctx, "tracking-events", "ZAP-0123456789", refused.Payload()).Return(brokerErr).Once(),
		r.outbox.On("Update", ctx, refused).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	published, err := commands.NewPublishOutboxCommandHandler(factory, producer, 3, fixedClock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, 1, published)
	assert.Equal(t, outbox.StatusDone, delivered.Status())
	assert.Equal(t, outbox.StatusCreated, refused.Status())
	assert.Equal(t, 1, refused.Attempts())
	assert.Equal(t, "leader not available", refused.LastError())
	producer.AssertExpectations(t)
	r.assert(t)
	uow.AssertExpectations(t)
}

func TestPublishOutboxCommandHandler_Handle_ParksAfterMaxAttempts(t *testing.T) {
	ctx := t.Context()
	message := newOutboxMessage(t, "ZAP-AB12CD34EF")

	cmd, err := commands.NewPublishOutboxCommand(1)
	require.NoError(t, err)

	uow, r := newUoW()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	r.outbox.On("FetchPending", ctx, 1).Return([]*outbox.Message{message}, nil).Once()
	r.outbox.On("Update", ctx, message).Return(nil).Once()

	producer := new(MockProducer)
	producer.On("SendMessage", ctx, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("timeout")).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	published, err := commands.NewPublishOutboxCommandHandler(factory, producer, 1, fixedClock).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Zero(t, published)
	assert.Equal(t, outbox.StatusFailed, message.Status())
}

func TestNewPublishOutboxCommand_BatchSize(t *testing.T) {
	_, err := commands.NewPublishOutboxCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}
