// ABOUTME: Persistence binding that mirrors one value to one store key.
// ABOUTME: Loads or defaults on bind, then writes JSON on every change.

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Binding mirrors a value of type T to a single key in a Store. Stored
// data is trusted: there is no schema version and no validation beyond
// JSON decoding.
type Binding[T any] struct {
	store Store
	key   string
	value T
}

// Bind loads key from store. When the key is absent the value comes from
// initial and is written straight away, so the key exists after Bind.
func Bind[T any](store Store, key string, initial func() T) (*Binding[T], error) {
	b := &Binding[T]{store: store, key: key}

	data, err := store.Get(key)
	switch {
	case errors.Is(err, ErrNotFound):
		b.value = initial()
		if err := b.write(); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, fmt.Errorf("read %s: %w", key, err)
	default:
		if err := json.Unmarshal(data, &b.value); err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
	}
	return b, nil
}

func (b *Binding[T]) Key() string {
	return b.key
}

func (b *Binding[T]) Get() T {
	return b.value
}

// Set replaces the value and persists it. The in-memory value only
// changes once the write succeeds.
func (b *Binding[T]) Set(v T) error {
	prev := b.value
	b.value = v
	if err := b.write(); err != nil {
		b.value = prev
		return err
	}
	return nil
}

// Update applies fn to the current value and persists the result.
func (b *Binding[T]) Update(fn func(T) T) error {
	return b.Set(fn(b.value))
}

// Encoded returns the value as it is written to the store.
func (b *Binding[T]) Encoded() ([]byte, error) {
	return json.Marshal(b.value)
}

func (b *Binding[T]) write() error {
	data, err := b.Encoded()
	if err != nil {
		return fmt.Errorf("encode %s: %w", b.key, err)
	}
	if err := b.store.Set(b.key, data); err != nil {
		return fmt.Errorf("write %s: %w", b.key, err)
	}
	return nil
}
