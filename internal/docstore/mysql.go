package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// DocumentsSchema creates the single table the MySQL driver writes to.
const DocumentsSchema = `CREATE TABLE IF NOT EXISTS documents (
	collection VARCHAR(64)  NOT NULL,
	id         VARCHAR(64)  NOT NULL,
	body       JSON         NOT NULL,
	PRIMARY KEY (collection, id)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`

// MySQL stores documents as JSON rows in a shared documents table.
type MySQL struct{ db *sql.DB }

// NewMySQL wraps an open connection pool. Call EnsureSchema once at startup.
func NewMySQL(db *sql.DB) *MySQL { return &MySQL{db: db} }

// EnsureSchema creates the documents table when missing.
func (m *MySQL) EnsureSchema(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, DocumentsSchema)
	return err
}

func (m *MySQL) Get(ctx context.Context, collection, id string) (Document, error) {
	var body []byte
	err := m.db.QueryRowContext(ctx,
		"SELECT body FROM documents WHERE collection=? AND id=? LIMIT 1",
		collection, id).Scan(&body)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return decodeJSON(body)
}

func (m *MySQL) Find(ctx context.Context, collection string, filter Filter) ([]Document, error) {
	q, args := findQuery(collection, filter)
	rows, err := m.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Document
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		doc, err := decodeJSON(body)
		if err != nil {
			return nil, err
		}
		// JSON_EXTRACT narrows; Match keeps the comparison identical to the other drivers.
		if Match(doc, filter) {
			out = append(out, doc)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// findQuery builds the filtered SELECT. Fields are sorted so the statement
// text is stable for a given filter.
func findQuery(collection string, filter Filter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT body FROM documents WHERE collection=?")
	args := []any{collection}

	fields := make([]string, 0, len(filter))
	for f := range filter {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	for _, f := range fields {
		b.WriteString(" AND JSON_UNQUOTE(JSON_EXTRACT(body, ?)) = ?")
		args = append(args, jsonPath(f), Canonical(filter[f]))
	}
	return b.String(), args
}

func jsonPath(field string) string {
	return `$."` + strings.ReplaceAll(field, `"`, `\"`) + `"`
}

func (m *MySQL) Put(ctx context.Context, collection, id string, doc Document) error {
	body, err := json.Marshal(withID(doc, id))
	if err != nil {
		return err
	}
	_, err = m.db.ExecContext(ctx,
		"INSERT INTO documents (collection, id, body) VALUES (?,?,?) ON DUPLICATE KEY UPDATE body=VALUES(body)",
		collection, id, string(body))
	return err
}

func (m *MySQL) Delete(ctx context.Context, collection, id string) error {
	res, err := m.db.ExecContext(ctx,
		"DELETE FROM documents WHERE collection=? AND id=?", collection, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (m *MySQL) Close() error { return m.db.Close() }
