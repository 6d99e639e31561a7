package trace

// The arena hands out hit records for the duration of one ray. Records are
// recycled through a free list instead of being returned to the runtime, so
// after the first few rays a render allocates nothing per ray; the arena
// grows monotonically to the high-water mark of hits seen in one callback.
//
// An *allocation is the stable handle named by the freeAllExcept contract:
// the survivor keeps its record and payload bytes untouched while every
// other handle becomes reusable.

type allocation struct {
	context fullHitContext
	payload []byte
	next    *allocation
}

type hitArena struct {
	allocated *allocation
	free      *allocation
}

// allocate returns a record with a payload slice of exactly payloadSize
// bytes. Payload capacity is retained across reuse and only ever grows.
func (a *hitArena) allocate(payloadSize int) *allocation {
	node := a.free
	if node != nil {
		a.free = node.next
	} else {
		node = new(allocation)
	}

	if cap(node.payload) < payloadSize {
		node.payload = make([]byte, payloadSize)
	}
	node.payload = node.payload[:payloadSize]

	node.context = fullHitContext{allocation: node}
	node.next = a.allocated
	a.allocated = node

	return node
}

// freeAllExcept recycles every record except keep, which remains valid with
// its payload bytes intact.
func (a *hitArena) freeAllExcept(keep *allocation) {
	node := a.allocated
	for node != nil {
		next := node.next
		if node != keep {
			node.next = a.free
			a.free = node
		}
		node = next
	}

	keep.next = nil
	a.allocated = keep
}

// freeAll recycles every record. No memory is returned to the runtime.
func (a *hitArena) freeAll() {
	node := a.allocated
	for node != nil {
		next := node.next
		node.next = a.free
		a.free = node
		node = next
	}
	a.allocated = nil
}
