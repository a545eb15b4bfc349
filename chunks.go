package yamlstream

// unit is the element width of an output encoding.
type unit interface {
	~byte | ~uint16
}

type chunk[T unit] struct {
	next *chunk[T]
	data []T
}

// chunkList collects emitter output as a FIFO list of immutable chunks and
// concatenates it once. A non-zero limit caps the total number of units.
type chunkList[T unit] struct {
	head, tail *chunk[T]
	total      int
	count      int
	limit      int
}

func (c *chunkList[T]) push(p []T) error {
	if len(p) == 0 {
		return nil
	}
	if c.limit > 0 && c.total+len(p) > c.limit {
		return &Error{Kind: MemoryError}
	}
	data := make([]T, len(p))
	copy(data, p)
	ch := &chunk[T]{data: data}
	if c.head == nil {
		c.head = ch
	} else {
		c.tail.next = ch
	}
	c.tail = ch
	c.total += len(p)
	c.count++
	return nil
}

func (c *chunkList[T]) len() int { return c.total }

// finalize returns every pushed unit in one buffer and releases the chunks.
// It must be called at most once.
func (c *chunkList[T]) finalize() []T {
	out := make([]T, c.total)
	pos := 0
	for ch := c.head; ch != nil; {
		pos += copy(out[pos:], ch.data)
		next := ch.next
		ch.next, ch.data = nil, nil
		ch = next
	}
	c.head, c.tail = nil, nil
	c.count = 0
	return out[:pos]
}

// reset drops every chunk without concatenating.
func (c *chunkList[T]) reset() {
	for ch := c.head; ch != nil; {
		next := ch.next
		ch.next, ch.data = nil, nil
		ch = next
	}
	c.head, c.tail = nil, nil
	c.total, c.count = 0, 0
}
