package usecase_test

import (
	"context"
	"sort"
	"sync"

	"github.com/bnema/newtab/internal/logging"
)

func testContext() context.Context {
	logger := logging.NewFromConfigValues("debug", "console")
	return logging.WithContext(context.Background(), logger)
}

// memoryRepo is an in-memory KeyValueRepository used for restart round trips.
type memoryRepo struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{data: make(map[string]string)}
}

func (r *memoryRepo) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.data[key]
	return v, ok, nil
}

func (r *memoryRepo) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = value
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.data, key)
	return nil
}

func (r *memoryRepo) Keys(_ context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
