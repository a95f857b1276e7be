package aco

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration — конфигурация отклонена до начала прогона.
	ErrConfiguration = errors.New("aco: invalid configuration")

	// ErrDimensionMismatch — размеры матриц не совпадают. Частный случай ErrConfiguration.
	ErrDimensionMismatch = fmt.Errorf("%w: matrix dimension mismatch", ErrConfiguration)

	// ErrStrategyShape — стратегия обновления феромона вернула nil или матрицу
	// другого размера. Прогон прерывается.
	ErrStrategyShape = errors.New("aco: pheromone update returned a matrix of wrong shape")

	// ErrFinished — повторный вызов Run на уже отработавшем движке.
	ErrFinished = errors.New("aco: engine has already run")

	ErrNilRNG = errors.New("генератор случайных чисел не инициализирован (nil)")
)
