package models

import "time"

// BookSnapshot — топ стакана одного рынка в один момент времени.
// Создаётся один раз за шаг семплирования и дальше не мутируется.
type BookSnapshot struct {
	InstID   string
	BidPrice float64
	BidSize  float64
	AskPrice float64
	AskSize  float64
	Ts       time.Time
}

// Delta — дисбаланс объёма на верхнем уровне: bid size − ask size.
func (b BookSnapshot) Delta() float64 { return b.BidSize - b.AskSize }

// TickRow — одна строка best-effort лога (CSV/Postgres).
// Формат полей повторяет заголовок лог-файла.
type TickRow struct {
	Ts           time.Time
	SpotBidPrice float64
	SpotAskPrice float64
	SpotBidSize  float64
	SpotAskSize  float64
	PerpBidPrice float64
	PerpAskPrice float64
	PerpBidSize  float64
	PerpAskSize  float64
}
