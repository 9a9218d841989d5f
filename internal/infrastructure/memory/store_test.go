package memory_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
)

type item struct {
	Name string
	Tags []string
}

func cloneItem(i item) item {
	i.Tags = append([]string(nil), i.Tags...)
	return i
}

func TestStore_ConservaOrdenDeInsercion(t *testing.T) {
	s := memory.NewStore[int, item](nil)
	for _, k := range []int{3, 1, 2} {
		require.NoError(t, s.Insert(k, item{Name: string(rune('a' + k))}))
	}

	vals := s.Values(nil)
	require.Len(t, vals, 3)
	assert.Equal(t, "d", vals[0].Name)
	assert.Equal(t, "b", vals[1].Name)
	assert.Equal(t, "c", vals[2].Name)
}

func TestStore_InsertDuplicado(t *testing.T) {
	s := memory.NewStore[string, item](nil)
	require.NoError(t, s.Insert("x", item{}))

	assert.ErrorIs(t, s.Insert("x", item{}), domain.ErrDuplicate)
	assert.Equal(t, 1, s.Len())
}

func TestStore_CopiasAisladas(t *testing.T) {
	s := memory.NewStore[string, item](cloneItem)
	orig := item{Name: "a", Tags: []string{"uno"}}
	require.NoError(t, s.Insert("a", orig))

	orig.Tags[0] = "mutado"
	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "uno", got.Tags[0], "el store no debe compartir memoria con el llamador")

	got.Tags[0] = "otra"
	again, _ := s.Get("a")
	assert.Equal(t, "uno", again.Tags[0])
}

func TestStore_ModifyConErrorNoMuta(t *testing.T) {
	s := memory.NewStore[string, item](nil)
	require.NoError(t, s.Insert("a", item{Name: "a"}))

	err := s.Modify("a", func(v *item) error {
		v.Name = "b"
		return domain.ErrInvalidInput
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, _ := s.Get("a")
	assert.Equal(t, "a", got.Name)
}

func TestStore_ReplaceYDeleteInexistente(t *testing.T) {
	s := memory.NewStore[string, item](nil)

	assert.ErrorIs(t, s.Replace("nada", item{}), domain.ErrNotFound)
	assert.ErrorIs(t, s.Delete("nada"), domain.ErrNotFound)
	assert.ErrorIs(t, s.Modify("nada", func(*item) error { return nil }), domain.ErrNotFound)
}

func TestStore_DeleteQuitaDelOrden(t *testing.T) {
	s := memory.NewStore[int, item](nil)
	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Insert(i, item{Name: string(rune('0' + i))}))
	}
	require.NoError(t, s.Delete(2))

	vals := s.Values(nil)
	require.Len(t, vals, 2)
	assert.Equal(t, "1", vals[0].Name)
	assert.Equal(t, "3", vals[1].Name)
}

func TestStore_ValuesFiltra(t *testing.T) {
	s := memory.NewStore[int, item](nil)
	require.NoError(t, s.Insert(1, item{Name: "si"}))
	require.NoError(t, s.Insert(2, item{Name: "no"}))

	vals := s.Values(func(i item) bool { return i.Name == "si" })
	require.Len(t, vals, 1)
	assert.Equal(t, "si", vals[0].Name)
}

func TestSequence_MonotonaYConcurrente(t *testing.T) {
	var seq memory.Sequence
	const n = 100

	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids <- seq.Next()
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "ID repetido %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
	assert.Equal(t, int64(n+1), seq.Next())
}
