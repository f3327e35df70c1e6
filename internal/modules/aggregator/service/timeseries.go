package service

// Series — кольцевой буфер фиксированной ёмкости. Append при заполнении
// вытесняет ровно один самый старый элемент; порядок вставки —
// единственный осмысленный порядок.
type Series[T any] struct {
	buf  []T
	head int
	size int
}

func NewSeries[T any](capacity int) *Series[T] {
	if capacity <= 0 {
		panic("series: capacity must be positive")
	}
	return &Series[T]{buf: make([]T, capacity)}
}

func (s *Series[T]) Append(v T) {
	if s.size < len(s.buf) {
		s.buf[(s.head+s.size)%len(s.buf)] = v
		s.size++
		return
	}
	// полный буфер: пишем поверх самого старого
	s.buf[s.head] = v
	s.head = (s.head + 1) % len(s.buf)
}

func (s *Series[T]) Len() int { return s.size }

func (s *Series[T]) Cap() int { return len(s.buf) }

// Values возвращает копию в порядке вставки: читатели никогда не
// алиасятся с буфером, в который пишет драйвер.
func (s *Series[T]) Values() []T {
	out := make([]T, s.size)
	for i := 0; i < s.size; i++ {
		out[i] = s.buf[(s.head+i)%len(s.buf)]
	}
	return out
}

func (s *Series[T]) Last() (T, bool) {
	var zero T
	if s.size == 0 {
		return zero, false
	}
	return s.buf[(s.head+s.size-1)%len(s.buf)], true
}
