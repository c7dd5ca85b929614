package index

import "sync"

type listNode[V any] struct {
	key   int64
	value V
	next  *listNode[V]
}

// List is a singly linked list with head and tail pointers. Traversal order is first-insertion order;
// replacing a value keeps its position. A key to node map makes Find and Upsert constant time.
// Safe for concurrent use.
type List[V any] struct {
	mu    sync.RWMutex
	head  *listNode[V]
	tail  *listNode[V]
	nodes map[int64]*listNode[V]
	key   KeyFunc[V]
}

func NewList[V any](key KeyFunc[V]) *List[V] {
	return &List[V]{key: key, nodes: make(map[int64]*listNode[V])}
}

// Upsert replaces the value stored under v's key in place, or appends v at the tail.
// Reports true when a new node was appended.
func (l *List[V]) Upsert(v V) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := l.key(v)
	if n, ok := l.nodes[k]; ok {
		n.value = v
		return false
	}
	n := &listNode[V]{key: k, value: v}
	if l.tail == nil {
		l.head = n
	} else {
		l.tail.next = n
	}
	l.tail = n
	l.nodes[k] = n
	return true
}

func (l *List[V]) Find(id int64) (V, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n, ok := l.nodes[id]; ok {
		return n.value, true
	}
	var zero V
	return zero, false
}

// All returns a snapshot of every value in list order.
func (l *List[V]) All() []V {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]V, 0, len(l.nodes))
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.value)
	}
	return out
}

// Remove unlinks the node stored under id. Reports whether a node was removed.
func (l *List[V]) Remove(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.nodes[id]; !ok {
		return false
	}
	var prev *listNode[V]
	for cur := l.head; cur != nil; prev, cur = cur, cur.next {
		if cur.key != id {
			continue
		}
		if prev == nil {
			l.head = cur.next
		} else {
			prev.next = cur.next
		}
		if l.tail == cur {
			l.tail = prev
		}
		delete(l.nodes, id)
		return true
	}
	return false
}

func (l *List[V]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.nodes)
}

// IsEmpty reports whether the list has no nodes.
func (l *List[V]) IsEmpty() bool {
	return l.Len() == 0
}
