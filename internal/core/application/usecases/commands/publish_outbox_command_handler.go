package commands

import (
	"context"

	"zapshift/internal/core/ports"
	"zapshift/internal/pkg/metrics"
)

// PublishOutboxCommandHandler moves committed outbox messages to the broker. A
// message is marked done only after the broker accepted it, so delivery is at
// least once; consumers deduplicate on the event ID in the payload.
type PublishOutboxCommandHandler struct {
	uowFactory  UoWFactory
	producer    ports.Producer
	maxAttempts int
	clock       Clock
}

func NewPublishOutboxCommandHandler(
	uowFactory UoWFactory,
	producer ports.Producer,
	maxAttempts int,
	clock Clock,
) PublishOutboxCommandHandler {
	if clock == nil {
		clock = SystemClock
	}
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	return PublishOutboxCommandHandler{
		uowFactory:  uowFactory,
		producer:    producer,
		maxAttempts: maxAttempts,
		clock:       clock,
	}
}

// Handle returns how many messages the broker accepted. Failed sends are counted on
// the message and retried by a later run; they do not fail the batch.
func (h PublishOutboxCommandHandler) Handle(ctx context.Context, cmd PublishOutboxCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	messages := uow.OutboxRepository()

	pending, err := messages.FetchPending(ctx, cmd.BatchSize())
	if err != nil {
		return 0, err
	}

	published := 0
	for _, message := range pending {
		sendErr := h.producer.SendMessage(ctx, message.Topic(), message.Key(), message.Payload())
		if sendErr != nil {
			message.RecordFailure(sendErr, h.maxAttempts, h.clock())
			metrics.OutboxFailuresTotal.Inc()
		} else {
			message.MarkDone(h.clock())
			published++
		}

		if err = messages.Update(ctx, message); err != nil {
			return 0, err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	metrics.OutboxPublishedTotal.Add(float64(published))
	return published, nil
}
