package wire

// RingSize is the capacity of the transmit and receive queues.
// It must be a power of two.
const RingSize = 256

// Ring is a fixed-capacity FIFO byte queue.
//
// It backs both the transmit and receive sides of a [Controller] and is
// designed for zero heap allocation: storage is a fixed array embedded in
// the struct. A full queue rejects further bytes rather than overwriting
// (callers observe this through Store's return value), and an empty queue
// reads as -1.
type Ring struct {
	buf   [RingSize]byte
	head  int // index of the oldest stored byte
	tail  int // index of the next free slot
	count int
}

// Clear resets the queue to empty, discarding its contents.
func (r *Ring) Clear() {
	r.head, r.tail, r.count = 0, 0, 0
}

// Store appends one byte. It returns false if the queue is full,
// leaving the queue unchanged.
func (r *Ring) Store(b byte) bool {
	if r.count == RingSize {
		return false
	}
	r.buf[r.tail] = b
	r.tail = (r.tail + 1) & (RingSize - 1)
	r.count++
	return true
}

// Read removes and returns the oldest byte, or -1 if the queue is empty.
func (r *Ring) Read() int {
	if r.count == 0 {
		return -1
	}
	b := r.buf[r.head]
	r.head = (r.head + 1) & (RingSize - 1)
	r.count--
	return int(b)
}

// Peek returns the oldest byte without removing it, or -1 if the queue
// is empty.
func (r *Ring) Peek() int {
	if r.count == 0 {
		return -1
	}
	return int(r.buf[r.head])
}

// Available returns the number of stored bytes.
func (r *Ring) Available() int {
	return r.count
}

// Full reports whether the queue is at capacity.
func (r *Ring) Full() bool {
	return r.count == RingSize
}
