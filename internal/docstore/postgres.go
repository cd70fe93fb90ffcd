package docstore

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"literasi-backend/internal/database"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Postgres stores every collection in one JSONB table; seq keeps insertion
// order stable.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// OpenPostgres connects, applies the embedded migrations and returns the store.
func OpenPostgres(ctx context.Context, databaseURL string) (*Postgres, error) {
	pool, err := database.NewPostgresPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	migrations, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		pool.Close()
		return nil, err
	}
	if err := database.RunMigrations(ctx, pool, migrations); err != nil {
		pool.Close()
		return nil, err
	}
	return NewPostgres(pool), nil
}

func (p *Postgres) Insert(ctx context.Context, collection string, doc any) (ID, error) {
	body, err := toBody(doc)
	if err != nil {
		return ID{}, err
	}
	data, err := json.Marshal(body)
	if err != nil {
		return ID{}, err
	}

	id := NewID()
	_, err = p.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, data) VALUES ($1, $2, $3::jsonb)`,
		collection, id.UUID(), string(data),
	)
	if err != nil {
		return ID{}, fmt.Errorf("failed to insert into %s: %w", collection, err)
	}
	return id, nil
}

func (p *Postgres) Get(ctx context.Context, collection string, id ID, out any) error {
	var data []byte
	err := p.pool.QueryRow(ctx,
		`SELECT data FROM documents WHERE collection = $1 AND id = $2`,
		collection, id.UUID(),
	).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to get %s/%s: %w", collection, id, err)
	}
	return json.Unmarshal(data, out)
}

func (p *Postgres) Find(ctx context.Context, collection string, q Query) ([]Record, error) {
	where, args, err := buildWhere(collection, q.Filter)
	if err != nil {
		return nil, err
	}

	order := "ASC"
	if q.Newest {
		order = "DESC"
	}
	sql := fmt.Sprintf(`SELECT id, data FROM documents WHERE %s ORDER BY seq %s`, where, order)
	if q.Limit > 0 {
		args = append(args, q.Limit)
		sql += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", collection, err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		var (
			u    uuid.UUID
			data []byte
		)
		if err := rows.Scan(&u, &data); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", collection, err)
		}
		records = append(records, Record{ID: ID{u: u}, Data: data})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", collection, err)
	}
	return records, nil
}

func (p *Postgres) Count(ctx context.Context, collection string, filter Filter) (int64, error) {
	where, args, err := buildWhere(collection, filter)
	if err != nil {
		return 0, err
	}
	var count int64
	if err := p.pool.QueryRow(ctx, `SELECT COUNT(*) FROM documents WHERE `+where, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", collection, err)
	}
	return count, nil
}

func (p *Postgres) Update(ctx context.Context, collection string, id ID, set map[string]any) error {
	data, err := json.Marshal(normalizeSet(set))
	if err != nil {
		return err
	}
	tag, err := p.pool.Exec(ctx,
		`UPDATE documents SET data = data || $3::jsonb WHERE collection = $1 AND id = $2`,
		collection, id.UUID(), string(data),
	)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (p *Postgres) CompareAndSet(ctx context.Context, collection string, id ID, expect Filter, set map[string]any) error {
	data, err := json.Marshal(normalizeSet(set))
	if err != nil {
		return err
	}
	where, args, err := buildWhere(collection, expect)
	if err != nil {
		return err
	}
	args = append(args, id.UUID(), string(data))
	sql := fmt.Sprintf(
		`UPDATE documents SET data = data || $%d::jsonb WHERE %s AND id = $%d`,
		len(args), where, len(args)-1,
	)

	tag, err := p.pool.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("failed to update %s/%s: %w", collection, id, err)
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = p.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM documents WHERE collection = $1 AND id = $2)`,
		collection, id.UUID(),
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check %s/%s: %w", collection, id, err)
	}
	if !exists {
		return ErrNotFound
	}
	return ErrConflict
}

func (p *Postgres) Collections(ctx context.Context, limit int) ([]string, error) {
	sql := `SELECT DISTINCT collection FROM documents ORDER BY collection`
	var args []any
	if limit > 0 {
		sql += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

func (p *Postgres) Ping(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

func (p *Postgres) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

// buildWhere renders filter as SQL over the documents table. Equality
// conditions use JSONB containment so the GIN index applies; membership
// conditions test the field against a JSON array.
func buildWhere(collection string, filter Filter) (string, []any, error) {
	conds := []string{"collection = $1"}
	args := []any{collection}

	eq, in := filter.split()
	if len(eq) > 0 {
		b, err := json.Marshal(eq)
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		args = append(args, string(b))
		conds = append(conds, fmt.Sprintf("data @> $%d::jsonb", len(args)))
	}

	fields := make([]string, 0, len(in))
	for field := range in {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		b, err := json.Marshal(in[field])
		if err != nil {
			return "", nil, fmt.Errorf("failed to encode filter: %w", err)
		}
		args = append(args, field, string(b))
		conds = append(conds, fmt.Sprintf("$%d::jsonb @> (data -> $%d::text)", len(args), len(args)-1))
	}

	return strings.Join(conds, " AND "), args, nil
}
