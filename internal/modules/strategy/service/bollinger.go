package service

import (
	"fmt"
	"math"

	"delta_bot/internal/models"
)

// Bollinger — полосы Боллинджера по сумме дельт двух рынков.
// combined[i] = spotDelta[i] + perpDelta[i]; SMA и выборочное стандартное
// отклонение по последним window точкам; пробой верхней полосы — SHORT,
// нижней — LONG, внутри полос и на самой полосе — FLAT.
type Bollinger struct {
	window  int
	stdMult float64
}

func NewBollinger(window int, stdMult float64) (*Bollinger, error) {
	if window < 2 {
		return nil, fmt.Errorf("bollinger: window must be >= 2, got %d", window)
	}
	if stdMult <= 0 {
		return nil, fmt.Errorf("bollinger: std multiplier must be positive, got %v", stdMult)
	}
	return &Bollinger{window: window, stdMult: stdMult}, nil
}

func (b *Bollinger) Name() string { return "bollinger_delta" }

func (b *Bollinger) Describe() string {
	return fmt.Sprintf("Delta Sum Bollinger Band Strategy (%d, %g)", b.window, b.stdMult)
}

func (b *Bollinger) Evaluate(s models.DeltaSeries) models.Evaluation {
	n := len(s.Spot)
	if len(s.Perp) != n {
		// выровненность серий — инвариант агрегатора, рассинхрон фатален
		panic(fmt.Sprintf("strategy: misaligned delta series %d/%d", n, len(s.Perp)))
	}
	if n < b.window {
		// мало точек — сигнал ещё не считается
		return models.Evaluation{Signal: models.SignalFlat}
	}

	combined := make([]float64, b.window)
	for i := range combined {
		j := n - b.window + i
		combined[i] = s.Spot[j] + s.Perp[j]
	}

	mean := meanOf(combined)
	std := sampleStdDev(combined, mean)
	upper := mean + b.stdMult*std
	lower := mean - b.stdMult*std

	last := combined[b.window-1]
	sig := models.SignalFlat
	switch {
	case last > upper:
		sig = models.SignalShort
	case last < lower:
		sig = models.SignalLong
	}

	return models.Evaluation{
		Signal: sig,
		Mean:   mean,
		Upper:  upper,
		Lower:  lower,
		Ready:  true,
	}
}

func meanOf(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// выборочное отклонение (делитель n-1), как в pandas
func sampleStdDev(xs []float64, mean float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
