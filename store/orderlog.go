package store

import (
	"storefront/model"
)

type logNode struct {
	order models.Order
	next  *logNode
}

// OrderLog is an append-only, insertion-ordered sequence of completed orders.
// A tail pointer keeps appends O(1).
type OrderLog struct {
	head *logNode
	tail *logNode
	size int
}

// NewOrderLog returns an empty log.
func NewOrderLog() *OrderLog {
	return &OrderLog{}
}

// Append adds o to the end of the log.
func (l *OrderLog) Append(o models.Order) {
	n := &logNode{order: o}
	if l.head == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.size++
}

// All returns the orders in insertion order.
func (l *OrderLog) All() []models.Order {
	out := make([]models.Order, 0, l.size)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.order)
	}
	return out
}

// Remove deletes the first entry structurally equal to o, scanning from the
// head. Removing from an empty log or removing an absent order is a no-op.
func (l *OrderLog) Remove(o models.Order) {
	var prev *logNode
	for n := l.head; n != nil; n = n.next {
		if n.order.Equal(o) {
			if prev == nil {
				l.head = n.next
			} else {
				prev.next = n.next
			}
			if n == l.tail {
				l.tail = prev
			}
			l.size--
			return
		}
		prev = n
	}
}

// Len returns the number of logged orders.
func (l *OrderLog) Len() int {
	return l.size
}
