package lsystem

// BufferPool double-buffers derivation generations so successive
// rewrites reuse the same two backing arrays instead of allocating a
// fresh word per generation.
type BufferPool struct {
	active   Word
	inactive Word
	swap     bool
}

func NewBufferPool(capacity int) *BufferPool {
	return &BufferPool{
		active:   make(Word, 0, capacity),
		inactive: make(Word, 0, capacity),
	}
}

func (m *BufferPool) Reset() {
	m.active = m.active[:0]
	m.inactive = m.inactive[:0]
	m.swap = false
}

func (m *BufferPool) current() *Word {
	if m.swap {
		return &m.inactive
	}
	return &m.active
}

// Load replaces the current generation.
func (m *BufferPool) Load(w Word) {
	cur := m.current()
	*cur = append((*cur)[:0], w...)
}

// Current returns the live generation. The slice is valid until the
// pool is written to again after the next Swap.
func (m *BufferPool) Current() Word {
	return *m.current()
}

func (m *BufferPool) Len() int {
	return len(*m.current())
}

// Swap flips which buffer is the write target; the previous
// generation stays readable in the other buffer.
func (m *BufferPool) Swap() {
	m.swap = !m.swap
}

func (m *BufferPool) ResetWritingHead() {
	cur := m.current()
	*cur = (*cur)[:0]
}

func (m *BufferPool) Append(syms ...Symbol) {
	cur := m.current()
	*cur = append(*cur, syms...)
}

// ReadAll copies the current generation out of the pool.
func (m *BufferPool) ReadAll() Word {
	cur := *m.current()
	out := make(Word, len(cur))
	copy(out, cur)
	return out
}
