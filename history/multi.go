package history

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"
)

type multiStore struct {
	stores []Store
}

// Multi appends to every store concurrently and lists from the first one.
func Multi(stores ...Store) Store {
	return &multiStore{stores: stores}
}

func (m *multiStore) Name() string {
	return "multi"
}

func (m *multiStore) Append(ctx context.Context, entry Entry) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, store := range m.stores {
		store := store
		g.Go(func() error {
			return store.Append(ctx, entry)
		})
	}
	return g.Wait()
}

func (m *multiStore) List(ctx context.Context, limit int) ([]Entry, error) {
	if len(m.stores) == 0 {
		return nil, nil
	}
	return m.stores[0].List(ctx, limit)
}

func (m *multiStore) Close() error {
	var errs []error
	for _, store := range m.stores {
		errs = append(errs, store.Close())
	}
	return errors.Join(errs...)
}
