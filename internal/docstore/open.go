package docstore

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Disconnected is the store used when no database is configured or the
// connection failed at startup. Every operation reports ErrNotConnected.
type Disconnected struct{}

func (Disconnected) Insert(context.Context, string, any) (ID, error) { return ID{}, ErrNotConnected }
func (Disconnected) Get(context.Context, string, ID, any) error      { return ErrNotConnected }
func (Disconnected) Find(context.Context, string, Query) ([]Record, error) {
	return nil, ErrNotConnected
}
func (Disconnected) Count(context.Context, string, Filter) (int64, error) {
	return 0, ErrNotConnected
}
func (Disconnected) Update(context.Context, string, ID, map[string]any) error {
	return ErrNotConnected
}
func (Disconnected) CompareAndSet(context.Context, string, ID, Filter, map[string]any) error {
	return ErrNotConnected
}
func (Disconnected) Collections(context.Context, int) ([]string, error) { return nil, ErrNotConnected }
func (Disconnected) Ping(context.Context) error                         { return ErrNotConnected }
func (Disconnected) Close(context.Context) error                        { return nil }

// IsConnected reports whether s is backed by a real database.
func IsConnected(s Store) bool {
	_, disconnected := s.(Disconnected)
	return s != nil && !disconnected
}

// Open picks a backend from the URL scheme. An empty URL yields Disconnected.
func Open(ctx context.Context, rawURL, dbName string) (Store, error) {
	if strings.TrimSpace(rawURL) == "" {
		return Disconnected{}, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}

	switch strings.ToLower(u.Scheme) {
	case "memory":
		return NewMemory(), nil
	case "postgres", "postgresql":
		pg, err := OpenPostgres(ctx, rawURL)
		if err != nil {
			return nil, err
		}
		return pg, nil
	case "mongodb", "mongodb+srv":
		m, err := OpenMongo(ctx, rawURL, dbName)
		if err != nil {
			return nil, err
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", u.Scheme)
	}
}
