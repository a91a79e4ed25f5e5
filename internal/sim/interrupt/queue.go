package interrupt

// Queue holds pending interrupts. They resolve strictly in the order queued.
type Queue struct {
	pending []*Interrupt
}

func (q *Queue) Push(in *Interrupt) { q.pending = append(q.pending, in) }

func (q *Queue) Len() int { return len(q.pending) }

func (q *Queue) Peek() (*Interrupt, bool) {
	if len(q.pending) == 0 {
		return nil, false
	}
	return q.pending[0], true
}

func (q *Queue) Pending() []*Interrupt {
	return append([]*Interrupt(nil), q.pending...)
}

// Resolve answers the head interrupt. A rejected answer leaves it in place.
// Interrupts queued by the resume closure run after those already waiting.
func (q *Queue) Resolve(r Response) error {
	head, ok := q.Peek()
	if !ok {
		return ErrEmpty
	}
	q.pending = q.pending[1:]
	if err := head.resume(r); err != nil {
		q.pending = append([]*Interrupt{head}, q.pending...)
		return err
	}
	return nil
}

// Drain resolves every pending interrupt, asking choose for each answer.
func (q *Queue) Drain(choose func(*Interrupt) Response) error {
	for q.Len() > 0 {
		head, _ := q.Peek()
		if err := q.Resolve(choose(head)); err != nil {
			return err
		}
	}
	return nil
}
