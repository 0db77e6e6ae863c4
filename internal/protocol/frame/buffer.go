package frame

// Buffer accumulates bytes from a stream and yields complete frames.
// It is not safe for concurrent use.
type Buffer struct {
	limits  Limits
	pending []byte
}

func NewBuffer(limits Limits) *Buffer {
	return &Buffer{limits: limits}
}

// Write appends p to the pending bytes. It never fails.
func (b *Buffer) Write(p []byte) (int, error) {
	b.pending = append(b.pending, p...)
	return len(p), nil
}

// Next returns the next complete frame, or ErrIncompleteFrame when more bytes
// are needed. Pending bytes are left untouched on any error.
func (b *Buffer) Next() (Frame, error) {
	f, n, err := Split(b.pending, b.limits)
	if err != nil {
		return Frame{}, err
	}
	rest := copy(b.pending, b.pending[n:])
	b.pending = b.pending[:rest]
	return f, nil
}

// Len reports the number of buffered bytes not yet returned as frames.
func (b *Buffer) Len() int {
	return len(b.pending)
}
