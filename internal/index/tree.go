// Package index holds the in-memory structures the cache coordinator serves reads from:
// an unbalanced binary search tree for products and an insertion-ordered list for orders.
package index

import "sync"

// KeyFunc extracts the integer key a value is indexed by.
type KeyFunc[V any] func(V) int64

type treeNode[V any] struct {
	key         int64
	value       V
	left, right *treeNode[V]
}

// Tree is an unbalanced binary search tree. Keys lower than a node go left, everything else goes right.
// Nodes are never removed. Safe for concurrent use.
type Tree[V any] struct {
	mu   sync.RWMutex
	root *treeNode[V]
	size int
	key  KeyFunc[V]
}

func NewTree[V any](key KeyFunc[V]) *Tree[V] {
	return &Tree[V]{key: key}
}

// Insert adds v without checking for an existing node with the same key.
func (t *Tree[V]) Insert(v V) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.insert(v)
}

// InsertIfAbsent adds v unless its key is already present. Reports whether v was added.
func (t *Tree[V]) InsertIfAbsent(v V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.find(t.key(v)); ok {
		return false
	}
	t.insert(v)
	return true
}

// Find returns the first node on the search path whose key equals id.
func (t *Tree[V]) Find(id int64) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.find(id)
}

func (t *Tree[V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.size
}

func (t *Tree[V]) insert(v V) {
	n := &treeNode[V]{key: t.key(v), value: v}
	t.size++
	if t.root == nil {
		t.root = n
		return
	}
	cur := t.root
	for {
		if n.key < cur.key {
			if cur.left == nil {
				cur.left = n
				return
			}
			cur = cur.left
		} else {
			if cur.right == nil {
				cur.right = n
				return
			}
			cur = cur.right
		}
	}
}

func (t *Tree[V]) find(id int64) (V, bool) {
	cur := t.root
	for cur != nil {
		switch {
		case id == cur.key:
			return cur.value, true
		case id < cur.key:
			cur = cur.left
		default:
			cur = cur.right
		}
	}
	var zero V
	return zero, false
}
