package service

import (
	"fmt"
	"sync"
	"time"

	"delta_bot/internal/models"
)

// BookSource — примитив выборки топа книги одного рынка.
// Пустой/кривой стакан — ошибка, и тогда шаг пропускается целиком.
type BookSource interface {
	TopOfBook() (models.BookSnapshot, error)
}

type marketSeries struct {
	bidPrice *Series[float64]
	askPrice *Series[float64]
	bidSize  *Series[float64]
	askSize  *Series[float64]
	delta    *Series[float64]
}

func newMarketSeries(capacity int) marketSeries {
	return marketSeries{
		bidPrice: NewSeries[float64](capacity),
		askPrice: NewSeries[float64](capacity),
		bidSize:  NewSeries[float64](capacity),
		askSize:  NewSeries[float64](capacity),
		delta:    NewSeries[float64](capacity),
	}
}

func (m *marketSeries) append(b models.BookSnapshot) {
	m.bidPrice.Append(b.BidPrice)
	m.askPrice.Append(b.AskPrice)
	m.bidSize.Append(b.BidSize)
	m.askSize.Append(b.AskSize)
	m.delta.Append(b.Delta())
}

func (m *marketSeries) slice() models.MarketSlice {
	return models.MarketSlice{
		BidPrice: m.bidPrice.Values(),
		AskPrice: m.askPrice.Values(),
		BidSize:  m.bidSize.Values(),
		AskSize:  m.askSize.Values(),
		Delta:    m.delta.Values(),
	}
}

// Aggregator владеет всеми сериями и двумя источниками книг. Пишет в
// серии только драйвер (один поток); читатели получают копии под RLock,
// поэтому снимок никогда не пересекается с текущим append.
type Aggregator struct {
	spot BookSource
	perp BookSource

	mu    sync.RWMutex
	ts    *Series[time.Time]
	spotS marketSeries
	perpS marketSeries
	evals *Series[models.Evaluation]
}

func New(spot, perp BookSource, capacity int) *Aggregator {
	return &Aggregator{
		spot:  spot,
		perp:  perp,
		ts:    NewSeries[time.Time](capacity),
		spotS: newMarketSeries(capacity),
		perpS: newMarketSeries(capacity),
		evals: NewSeries[models.Evaluation](capacity),
	}
}

// Sample — один шаг семплирования: сначала выбираем оба стакана, потом
// append всего разом. Любая ошибка выборки — шаг пропущен целиком,
// ни одна серия не растёт. Это центральное правило выровненности.
func (a *Aggregator) Sample() (spot, perp models.BookSnapshot, err error) {
	spot, err = a.spot.TopOfBook()
	if err != nil {
		return models.BookSnapshot{}, models.BookSnapshot{}, fmt.Errorf("spot: %w", err)
	}
	perp, err = a.perp.TopOfBook()
	if err != nil {
		return models.BookSnapshot{}, models.BookSnapshot{}, fmt.Errorf("perp: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.ts.Append(time.Now().UTC())
	a.spotS.append(spot)
	a.perpS.append(perp)
	return spot, perp, nil
}

// AppendEval дописывает результат стратегии за непропущенный шаг —
// сигнальная серия растёт в такт остальным.
func (a *Aggregator) AppendEval(ev models.Evaluation) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.evals.Append(ev)
}

// Deltas — копии выровненных дельта-серий, вход стратегии.
func (a *Aggregator) Deltas() models.DeltaSeries {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return models.DeltaSeries{
		Spot: a.spotS.delta.Values(),
		Perp: a.perpS.delta.Values(),
	}
}

// Snapshot — read-only снимок всех серий для презентационного слоя.
func (a *Aggregator) Snapshot() models.SeriesSnapshot {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return models.SeriesSnapshot{
		Timestamps: a.ts.Values(),
		Spot:       a.spotS.slice(),
		Perp:       a.perpS.slice(),
		Evals:      a.evals.Values(),
	}
}

// LastEval — последний сигнал (если был хоть один непропущенный шаг).
func (a *Aggregator) LastEval() (models.Evaluation, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.evals.Last()
}

// Len — текущая длина серий (у всех одинаковая).
func (a *Aggregator) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.ts.Len()
}
