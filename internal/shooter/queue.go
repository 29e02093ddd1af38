package shooter

import "github.com/tomz197/vocabshooter/internal/vocab"

// Queue is the ordered backlog of quiz items waiting to become targets.
type Queue struct {
	items []vocab.QuizItem
}

// NewQueue creates a queue holding a copy of items.
func NewQueue(items []vocab.QuizItem) *Queue {
	q := &Queue{items: make([]vocab.QuizItem, len(items))}
	copy(q.items, items)
	return q
}

// PushBack appends item at the tail.
func (q *Queue) PushBack(item vocab.QuizItem) {
	q.items = append(q.items, item)
}

// PopFront removes and returns the head.
func (q *Queue) PopFront() (vocab.QuizItem, bool) {
	if len(q.items) == 0 {
		return vocab.QuizItem{}, false
	}
	item := q.items[0]
	q.items[0] = vocab.QuizItem{}
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (q *Queue) Len() int {
	return len(q.items)
}

// Items returns a snapshot in queue order.
func (q *Queue) Items() []vocab.QuizItem {
	out := make([]vocab.QuizItem, len(q.items))
	copy(out, q.items)
	return out
}

// Count returns how many queued items have the given id.
func (q *Queue) Count(id string) int {
	n := 0
	for _, it := range q.items {
		if it.ID == id {
			n++
		}
	}
	return n
}
