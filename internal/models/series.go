package models

import "time"

// MarketSlice — копии серий одного рынка для отдачи наружу.
type MarketSlice struct {
	BidPrice []float64 `json:"bidPrice"`
	AskPrice []float64 `json:"askPrice"`
	BidSize  []float64 `json:"bidSize"`
	AskSize  []float64 `json:"askSize"`
	Delta    []float64 `json:"delta"`
}

// SeriesSnapshot — read-only снимок всех серий агрегатора на момент вызова.
// Слайсы — копии, писатель их больше не трогает.
type SeriesSnapshot struct {
	Timestamps []time.Time  `json:"timestamps"`
	Spot       MarketSlice  `json:"spot"`
	Perp       MarketSlice  `json:"perp"`
	Evals      []Evaluation `json:"evals"`
}
