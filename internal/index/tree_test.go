package index

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	id   int64
	name string
}

func itemKey(i item) int64 { return i.id }

func TestTree_FindOnEmpty(t *testing.T) {
	tree := NewTree(itemKey)

	_, ok := tree.Find(1)

	assert.False(t, ok)
	assert.Equal(t, 0, tree.Len())
}

func TestTree_InsertAndFind(t *testing.T) {
	testCases := []struct {
		name  string
		order []int64
	}{
		{name: "balanced", order: []int64{50, 30, 70, 20, 40, 60, 80}},
		{name: "ascending chain", order: []int64{1, 2, 3, 4, 5, 6, 7}},
		{name: "descending chain", order: []int64{7, 6, 5, 4, 3, 2, 1}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// given
			tree := NewTree(itemKey)
			for _, id := range tc.order {
				tree.Insert(item{id: id})
			}

			// then
			assert.Equal(t, len(tc.order), tree.Len())
			for _, id := range tc.order {
				got, ok := tree.Find(id)
				require.True(t, ok, "id %d", id)
				assert.Equal(t, id, got.id)
			}
			_, ok := tree.Find(1000)
			assert.False(t, ok)
		})
	}
}

func TestTree_DuplicateKeysFirstWins(t *testing.T) {
	// given
	tree := NewTree(itemKey)
	tree.Insert(item{id: 5, name: "first"})
	tree.Insert(item{id: 5, name: "second"})

	// when
	got, ok := tree.Find(5)

	// then
	require.True(t, ok)
	assert.Equal(t, "first", got.name)
	assert.Equal(t, 2, tree.Len())
}

func TestTree_InsertIfAbsent(t *testing.T) {
	tree := NewTree(itemKey)

	assert.True(t, tree.InsertIfAbsent(item{id: 3, name: "a"}))
	assert.False(t, tree.InsertIfAbsent(item{id: 3, name: "b"}))

	got, _ := tree.Find(3)
	assert.Equal(t, "a", got.name)
	assert.Equal(t, 1, tree.Len())
}

func TestTree_ConcurrentInsertIfAbsent(t *testing.T) {
	tree := NewTree(itemKey)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for id := int64(1); id <= 200; id++ {
				tree.InsertIfAbsent(item{id: id})
				tree.Find(id)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, tree.Len())
}
