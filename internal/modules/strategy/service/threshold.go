package service

import (
	"fmt"

	"delta_bot/internal/models"
)

// Threshold — простейший вариант движка: последняя суммарная дельта за
// пределами ±limit. Полосы в Evaluation — сами пороги, mean не считается.
type Threshold struct {
	limit float64
}

func NewThreshold(limit float64) (*Threshold, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("threshold: limit must be positive, got %v", limit)
	}
	return &Threshold{limit: limit}, nil
}

func (t *Threshold) Name() string { return "delta_threshold" }

func (t *Threshold) Describe() string {
	return fmt.Sprintf("Delta Sum Threshold Strategy (±%g)", t.limit)
}

func (t *Threshold) Evaluate(s models.DeltaSeries) models.Evaluation {
	n := len(s.Spot)
	if len(s.Perp) != n {
		panic(fmt.Sprintf("strategy: misaligned delta series %d/%d", n, len(s.Perp)))
	}
	if n == 0 {
		return models.Evaluation{Signal: models.SignalFlat}
	}

	last := s.Spot[n-1] + s.Perp[n-1]
	sig := models.SignalFlat
	switch {
	case last > t.limit:
		sig = models.SignalShort
	case last < -t.limit:
		sig = models.SignalLong
	}

	return models.Evaluation{
		Signal: sig,
		Upper:  t.limit,
		Lower:  -t.limit,
		Ready:  true,
	}
}
