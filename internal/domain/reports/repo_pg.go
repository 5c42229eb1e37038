package reports

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/icsr/icsr/internal/platform/e2b"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

// NewRepoPG returns a Repository backed by PostgreSQL.
func NewRepoPG(pool *pgxpool.Pool) Repository { return &repoPG{pool: pool} }

func (r *repoPG) conn(context.Context) queryable { return r.pool }

const reportCols = `id, title, owner_id, filename, encryption_key, metadata, created_at, updated_at`

func scanReport(row pgx.Row) (*Report, error) {
	var rep Report
	var metadata []byte
	err := row.Scan(&rep.ID, &rep.Title, &rep.OwnerID, &rep.Filename, &rep.EncryptionKey,
		&metadata, &rep.CreatedAt, &rep.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(metadata) > 0 {
		var data e2b.CaseData
		if err := json.Unmarshal(metadata, &data); err != nil {
			return nil, fmt.Errorf("reports: decode metadata: %w", err)
		}
		rep.Metadata = &data
	}
	return &rep, nil
}

func encodeMetadata(data *e2b.CaseData) ([]byte, error) {
	if data == nil {
		return nil, nil
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("reports: encode metadata: %w", err)
	}
	return raw, nil
}

func (r *repoPG) Create(ctx context.Context, rep *Report) error {
	rep.ID = uuid.New()
	metadata, err := encodeMetadata(rep.Metadata)
	if err != nil {
		return err
	}
	row := r.conn(ctx).QueryRow(ctx, `
		INSERT INTO reports (id, title, owner_id, filename, encryption_key, metadata)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING created_at, updated_at`,
		rep.ID, rep.Title, rep.OwnerID, rep.Filename, rep.EncryptionKey, metadata)
	return row.Scan(&rep.CreatedAt, &rep.UpdatedAt)
}

func (r *repoPG) GetByID(ctx context.Context, id uuid.UUID, ownerID string) (*Report, error) {
	rep, err := scanReport(r.conn(ctx).QueryRow(ctx,
		`SELECT `+reportCols+` FROM reports WHERE id = $1 AND owner_id = $2`, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return rep, err
}

func (r *repoPG) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Report, int, error) {
	var total int
	if err := r.conn(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM reports WHERE owner_id = $1`, ownerID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.conn(ctx).Query(ctx,
		`SELECT `+reportCols+` FROM reports WHERE owner_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		ownerID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var items []*Report
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, rep)
	}
	return items, total, rows.Err()
}

func (r *repoPG) Update(ctx context.Context, rep *Report) error {
	metadata, err := encodeMetadata(rep.Metadata)
	if err != nil {
		return err
	}
	row := r.conn(ctx).QueryRow(ctx, `
		UPDATE reports SET title=$2, metadata=$3, updated_at=NOW()
		WHERE id = $1
		RETURNING updated_at`,
		rep.ID, rep.Title, metadata)
	if err := row.Scan(&rep.UpdatedAt); errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	} else if err != nil {
		return err
	}
	return nil
}

func (r *repoPG) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.conn(ctx).Exec(ctx, `DELETE FROM reports WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
