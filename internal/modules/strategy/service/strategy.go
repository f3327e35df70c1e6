package service

import "delta_bot/internal/models"

// Engine — контракт стратегии. Драйвер и агрегатор не знают конкретный
// вариант: только Evaluate/Describe. Evaluate не держит состояния между
// вызовами — на одном окне результат всегда один и тот же.
type Engine interface {
	Evaluate(s models.DeltaSeries) models.Evaluation
	// Describe — человекочитаемая строка для подписи/оверлея
	Describe() string
	Name() string
}
