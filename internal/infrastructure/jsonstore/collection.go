package jsonstore

// Collection is a typed view over one named document.
type Collection[T any] struct {
	store *Store
	name  string
	def   func() T
}

// NewCollection binds name to T; def builds the value written on first access.
func NewCollection[T any](s *Store, name string, def func() T) *Collection[T] {
	return &Collection[T]{store: s, name: name, def: def}
}

func (c *Collection[T]) Name() string { return c.name }

func (c *Collection[T]) defAny() any { return c.def() }

// Load returns the whole document.
func (c *Collection[T]) Load() (T, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	var v T
	err := c.store.load(c.name, &v, c.defAny)
	return v, err
}

// Save overwrites the whole document.
func (c *Collection[T]) Save(v T) error {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()
	return c.store.save(c.name, v)
}

// Update loads, applies fn and saves while holding the collection lock, so
// concurrent mutations in this process cannot overwrite each other. If fn
// returns an error nothing is written and the error is returned as is.
func (c *Collection[T]) Update(fn func(*T) error) (T, error) {
	l := c.store.lock(c.name)
	l.Lock()
	defer l.Unlock()

	var v T
	if err := c.store.load(c.name, &v, c.defAny); err != nil {
		return v, err
	}
	if err := fn(&v); err != nil {
		return v, err
	}
	if err := c.store.save(c.name, v); err != nil {
		return v, err
	}
	return v, nil
}
