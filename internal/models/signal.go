package models

// SignalState — дискретная позиция стратегии на текущем шаге.
type SignalState int

const (
	SignalFlat  SignalState = 0
	SignalLong  SignalState = 1
	SignalShort SignalState = -1
)

func (s SignalState) String() string {
	switch s {
	case SignalLong:
		return "LONG"
	case SignalShort:
		return "SHORT"
	default:
		return "FLAT"
	}
}

// DeltaSeries — выровненные дельта-серии двух рынков, вход стратегии.
// Индексы совпадают: [i] обоих слайсов относится к одному шагу.
type DeltaSeries struct {
	Spot []float64
	Perp []float64
}

// Evaluation — результат одного вызова стратегии плюс промежуточные
// полосы, чтобы презентационный слой не пересчитывал их заново.
type Evaluation struct {
	Signal SignalState `json:"signal"`
	Mean   float64     `json:"mean"`
	Upper  float64     `json:"upper"`
	Lower  float64     `json:"lower"`
	// Ready=false пока накоплено меньше window точек — сигнал не считается.
	Ready bool `json:"ready"`
}
