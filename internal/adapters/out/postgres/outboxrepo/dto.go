// Package outboxrepo stores messages waiting for the broker.
package outboxrepo

import (
	"time"

	"zapshift/internal/core/domain/model/kernel"
	"zapshift/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// OutboxMessageDTO keeps updated_at under domain control: gorm must not stamp it.
type OutboxMessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Topic     string    `gorm:"type:varchar(255);not null"`
	Key       string    `gorm:"type:varchar(255)"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	Status    string    `gorm:"type:varchar(16);not null;index:idx_outbox_messages_status_created,priority:1"`
	Attempts  int       `gorm:"not null;default:0"`
	LastError string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;index:idx_outbox_messages_status_created,priority:2"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (OutboxMessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(m *outbox.Message) OutboxMessageDTO {
	return OutboxMessageDTO{
		ID:        m.ID().Bytes(),
		Topic:     m.Topic(),
		Key:       m.Key(),
		Payload:   m.Payload(),
		Status:    string(m.Status()),
		Attempts:  m.Attempts(),
		LastError: m.LastError(),
		CreatedAt: m.CreatedAt(),
		UpdatedAt: m.UpdatedAt(),
	}
}

func toDomain(dto OutboxMessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		dto.Topic,
		dto.Key,
		dto.Payload,
		outbox.Status(dto.Status),
		dto.Attempts,
		dto.LastError,
		dto.CreatedAt.UTC(),
		dto.UpdatedAt.UTC(),
	), nil
}
