package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/newtab/internal/domain/repository"
	"github.com/bnema/newtab/internal/logging"
)

// LazyDB opens the database on first access, so commands that never touch
// storage (suggest, search) skip the WASM compilation and migrations.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

// NewLazyDB creates a new lazy database provider.
// The actual connection is not established until DB() is called.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it if necessary.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := Open(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()

		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		err := l.db.Close()
		l.db = nil
		return err
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

type lazyKVRepo struct {
	lazy *LazyDB
}

// NewLazyKeyValueRepository returns a key-value repository that opens the
// database on its first call.
func NewLazyKeyValueRepository(lazy *LazyDB) repository.KeyValueRepository {
	return &lazyKVRepo{lazy: lazy}
}

func (r *lazyKVRepo) repo(ctx context.Context) (repository.KeyValueRepository, error) {
	db, err := r.lazy.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewKeyValueRepository(db), nil
}

func (r *lazyKVRepo) Get(ctx context.Context, key string) (string, bool, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return "", false, err
	}
	return repo.Get(ctx, key)
}

func (r *lazyKVRepo) Set(ctx context.Context, key, value string) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Set(ctx, key, value)
}

func (r *lazyKVRepo) Delete(ctx context.Context, key string) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.Delete(ctx, key)
}

func (r *lazyKVRepo) Keys(ctx context.Context) ([]string, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.Keys(ctx)
}
