package gazetteer

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// DEFAULT_SQLITE_LIMIT is the default maximum number of rows returned by a search.
const DEFAULT_SQLITE_LIMIT int = 20

const sqlite_schema string = `
CREATE TABLE IF NOT EXISTS places (
	id INTEGER NOT NULL,
	name TEXT NOT NULL,
	normalized_name TEXT NOT NULL,
	placetype TEXT,
	country TEXT,
	region TEXT,
	importance REAL,
	min_x REAL,
	min_y REAL,
	max_x REAL,
	max_y REAL,
	PRIMARY KEY (id, normalized_name)
);

CREATE INDEX IF NOT EXISTS places_by_name ON places (normalized_name, importance);
`

// type SQLiteGazetteer implements the `Gazetteer` interface for places stored in a SQLite database.
type SQLiteGazetteer struct {
	Gazetteer
	db    *sql.DB
	limit int
}

func init() {

	ctx := context.Background()

	err := RegisterGazetteer(ctx, "sqlite", NewSQLiteGazetteer)

	if err != nil {
		panic(err)
	}
}

// NewSQLiteGazetteer returns a new `SQLiteGazetteer` instance. 'uri' takes the form of:
//
//	sqlite://{PATH}?limit={INT}
//
// Where {PATH} is the path to the database file, which is created (along with the places table) if
// it does not exist, and 'limit' is the optional maximum number of rows a search returns.
func NewSQLiteGazetteer(ctx context.Context, uri string) (Gazetteer, error) {

	u, err := url.Parse(uri)

	if err != nil {
		return nil, fmt.Errorf("Failed to parse URI, %w", err)
	}

	db_path := u.Path

	if u.Host != "" {
		db_path = filepath.Join(u.Host, u.Path)
	}

	if db_path == "" {
		return nil, fmt.Errorf("Missing database path, %w", ErrUnavailable)
	}

	limit := DEFAULT_SQLITE_LIMIT

	str_limit := u.Query().Get("limit")

	if str_limit != "" {

		v, err := strconv.Atoi(str_limit)

		if err != nil {
			return nil, fmt.Errorf("Failed to parse ?limit= parameter, %w", err)
		}

		limit = v
	}

	dir := filepath.Dir(db_path)

	if dir != "." && dir != "" {

		err := os.MkdirAll(dir, 0755)

		if err != nil {
			return nil, fmt.Errorf("Failed to create database directory, %w", err)
		}
	}

	db, err := sql.Open("sqlite3", db_path+"?_journal_mode=WAL&_busy_timeout=30000")

	if err != nil {
		return nil, fmt.Errorf("Failed to open database, %w", err)
	}

	err = db.PingContext(ctx)

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to ping database, %w: %w", ErrUnavailable, err)
	}

	_, err = db.ExecContext(ctx, sqlite_schema)

	if err != nil {
		db.Close()
		return nil, fmt.Errorf("Failed to create schema, %w", err)
	}

	g := &SQLiteGazetteer{
		db:    db,
		limit: limit,
	}

	return g, nil
}

// Add inserts (or replaces) 'candidates' in a single transaction.
func (g *SQLiteGazetteer) Add(ctx context.Context, candidates ...*GazetteerCandidate) error {

	tx, err := g.db.BeginTx(ctx, nil)

	if err != nil {
		return fmt.Errorf("Failed to start transaction, %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO places (id, name, normalized_name, placetype, country, region, importance,
			min_x, min_y, max_x, max_y)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)

	if err != nil {
		tx.Rollback()
		return fmt.Errorf("Failed to prepare statement, %w", err)
	}

	defer stmt.Close()

	for _, c := range candidates {

		_, err := stmt.ExecContext(ctx, c.Id, c.Name, NormalizeName(c.Name), c.Placetype, c.Country, c.Region,
			c.Importance, c.West, c.South, c.East, c.North)

		if err != nil {
			tx.Rollback()
			return fmt.Errorf("Failed to insert %d, %w", c.Id, err)
		}
	}

	err = tx.Commit()

	if err != nil {
		return fmt.Errorf("Failed to commit transaction, %w", err)
	}

	return nil
}

// Search returns the places whose normalized name equals (or, if 'fuzzy' is true, begins with) the
// normalized form of 'name', ordered by descending importance.
func (g *SQLiteGazetteer) Search(ctx context.Context, name string, fuzzy bool) ([]*GazetteerCandidate, error) {

	q := NormalizeName(name)
	results := make([]*GazetteerCandidate, 0)

	if q == "" {
		return results, nil
	}

	query := `SELECT id, name, placetype, country, region, importance, min_x, min_y, max_x, max_y
		FROM places WHERE normalized_name = ?`

	args := []any{q}

	if fuzzy {
		query = query + ` OR normalized_name LIKE ? ESCAPE '\'`
		args = append(args, escapeLike(q)+"%")
	}

	query = query + ` ORDER BY importance DESC, id ASC LIMIT ?`
	args = append(args, g.limit)

	rows, err := g.db.QueryContext(ctx, query, args...)

	if err != nil {
		return nil, fmt.Errorf("Failed to query places, %w: %w", ErrUnavailable, err)
	}

	defer rows.Close()

	seen := make(map[int64]bool)

	for rows.Next() {

		var c GazetteerCandidate
		var placetype, country, region sql.NullString

		err := rows.Scan(&c.Id, &c.Name, &placetype, &country, &region, &c.Importance,
			&c.West, &c.South, &c.East, &c.North)

		if err != nil {
			return nil, fmt.Errorf("Failed to scan row, %w", err)
		}

		if seen[c.Id] {
			continue
		}

		seen[c.Id] = true

		c.Placetype = placetype.String
		c.Country = country.String
		c.Region = region.String

		results = append(results, &c)
	}

	err = rows.Err()

	if err != nil {
		return nil, fmt.Errorf("Failed to iterate rows, %w", err)
	}

	return rankCandidates(results), nil
}

func (g *SQLiteGazetteer) Close() error {
	return g.db.Close()
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
