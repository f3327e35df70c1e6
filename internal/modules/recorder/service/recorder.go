package service

import (
	"context"

	"delta_bot/internal/models"
)

// Recorder — best-effort лог тиков. Ошибки записи не останавливают
// семплирование: драйвер их только логирует.
type Recorder interface {
	Record(ctx context.Context, row models.TickRow) error
	Close() error
}

// Nop — бэкенд "off".
type Nop struct{}

func (Nop) Record(context.Context, models.TickRow) error { return nil }
func (Nop) Close() error                                 { return nil }
