// Package memory implementa los puertos de persistencia sobre colecciones en memoria.
// No hay durabilidad: todo se pierde al reiniciar el proceso.
package memory

import (
	"sync"
	"sync/atomic"

	"github.com/jhoicas/crm-api/internal/domain"
)

// Store colección con clave, que conserva el orden de inserción.
// El mutex solo protege los mapas frente al acceso concurrente de los handlers;
// operaciones de varios pasos (leer, modificar, guardar) no son atómicas.
type Store[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
	clone func(V) V
}

// NewStore crea una colección vacía. clone puede ser nil si V no contiene punteros.
func NewStore[K comparable, V any](clone func(V) V) *Store[K, V] {
	if clone == nil {
		clone = func(v V) V { return v }
	}
	return &Store[K, V]{items: make(map[K]V), clone: clone}
}

// Insert agrega un elemento nuevo; ErrDuplicate si la clave ya existe.
func (s *Store[K, V]) Insert(key K, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; ok {
		return domain.ErrDuplicate
	}
	s.items[key] = s.clone(v)
	s.order = append(s.order, key)
	return nil
}

// Get devuelve una copia del elemento.
func (s *Store[K, V]) Get(key K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	return s.clone(v), true
}

// Replace sustituye un elemento existente conservando su posición; ErrNotFound si no existe.
func (s *Store[K, V]) Replace(key K, v V) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return domain.ErrNotFound
	}
	s.items[key] = s.clone(v)
	return nil
}

// Modify aplica fn sobre el elemento bajo el lock de escritura.
// Si fn devuelve error el elemento queda intacto.
func (s *Store[K, V]) Modify(key K, fn func(*V) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.items[key]
	if !ok {
		return domain.ErrNotFound
	}
	next := s.clone(cur)
	if err := fn(&next); err != nil {
		return err
	}
	s.items[key] = next
	return nil
}

// Delete elimina el elemento; ErrNotFound si no existe.
func (s *Store[K, V]) Delete(key K) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[key]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, key)
	for i, k := range s.order {
		if k == key {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Values devuelve copias de los elementos que cumplen match (todos si match es nil),
// en orden de inserción.
func (s *Store[K, V]) Values(match func(V) bool) []V {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]V, 0, len(s.order))
	for _, k := range s.order {
		v := s.items[k]
		if match != nil && !match(v) {
			continue
		}
		out = append(out, s.clone(v))
	}
	return out
}

// Len número de elementos.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sequence contador monótono de IDs. Los IDs nunca se reutilizan tras un borrado.
type Sequence struct {
	last atomic.Int64
}

// Next devuelve el siguiente ID (empieza en 1).
func (s *Sequence) Next() int64 { return s.last.Add(1) }
