// Package outbox models messages written in the same transaction as the state change
// they announce and delivered to the broker later, at least once.
package outbox

import (
	"errors"
	"strings"
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New("Message must be created via NewMessage or RestoreMessage constructor")

type Status string

const (
	StatusCreated Status = "created"
	StatusDone    Status = "done"
	StatusFailed  Status = "failed"
)

type Message struct {
	id            kernel.UUID
	topic         string
	key           string
	payload       []byte
	status        Status
	attempts      int
	lastError     string
	createdAt     time.Time
	updatedAt     time.Time
	isConstructed bool
}

func NewMessage(topic, key string, payload []byte, createdAt time.Time) (*Message, error) {
	topic = strings.TrimSpace(topic)

	var errList []error
	if topic == "" {
		errList = append(errList, errs.NewValueIsRequiredError("topic"))
	}
	if len(payload) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("payload"))
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &Message{
		id:            kernel.NewUUID(),
		topic:         topic,
		key:           key,
		payload:       payload,
		status:        StatusCreated,
		createdAt:     createdAt.UTC(),
		updatedAt:     createdAt.UTC(),
		isConstructed: true,
	}, nil
}

func RestoreMessage(
	id kernel.UUID,
	topic, key string,
	payload []byte,
	status Status,
	attempts int,
	lastError string,
	createdAt, updatedAt time.Time,
) *Message {
	return &Message{
		id:            id,
		topic:         topic,
		key:           key,
		payload:       payload,
		status:        status,
		attempts:      attempts,
		lastError:     lastError,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
		isConstructed: true,
	}
}

func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID {
	return m.id
}

func (m *Message) Topic() string {
	return m.topic
}

func (m *Message) Key() string {
	return m.key
}

func (m *Message) Payload() []byte {
	return m.payload
}

func (m *Message) Status() Status {
	return m.status
}

func (m *Message) Attempts() int {
	return m.attempts
}

func (m *Message) LastError() string {
	return m.lastError
}

func (m *Message) CreatedAt() time.Time {
	return m.createdAt
}

func (m *Message) UpdatedAt() time.Time {
	return m.updatedAt
}

// MarkDone records a successful delivery.
func (m *Message) MarkDone(now time.Time) {
	m.attempts++
	m.status = StatusDone
	m.lastError = ""
	m.updatedAt = now.UTC()
}

// RecordFailure counts a failed delivery. After maxAttempts the message is parked
// as failed and no longer picked up.
func (m *Message) RecordFailure(cause error, maxAttempts int, now time.Time) {
	m.attempts++
	if cause != nil {
		m.lastError = cause.Error()
	}
	if m.attempts >= maxAttempts {
		m.status = StatusFailed
	}
	m.updatedAt = now.UTC()
}
