package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// Store wraps the raw_materials_stock table. One Store is opened at startup
// and closed on quit; every mutating call commits immediately.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens (creating if needed) the database at path and ensures the stock
// table exists. The parent directory is created when missing.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(createStock); err != nil {
		db.Close()
		return nil, fmt.Errorf("create stock table: %w", err)
	}

	log.Debug().Str("path", path).Msg("store opened")
	return &Store{db: db, path: path}, nil
}

// Close releases the database connection. Idempotent.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// Reset drops the stock table and recreates it empty. Idempotent; a missing
// table is not an error. All records are destroyed at once and the
// autoincrement counter starts over.
func (s *Store) Reset() error {
	if _, err := s.db.Exec(dropStock); err != nil {
		return fmt.Errorf("drop stock table: %w", err)
	}
	// AUTOINCREMENT tracks assigned ids in sqlite_sequence; clear it so a
	// reseeded table numbers from 1 again. The table does not exist before
	// the first insert, hence the ignored error.
	_, _ = s.db.Exec(`DELETE FROM sqlite_sequence WHERE name = ?`, tableName)
	if _, err := s.db.Exec(createStock); err != nil {
		return fmt.Errorf("recreate stock table: %w", err)
	}
	log.Debug().Msg("store reset")
	return nil
}

// Insert creates one record. The caller supplies the review date (today, by
// the clock it owns); the id is assigned by the store.
func (s *Store) Insert(m types.Material) error {
	_, err := s.db.Exec(
		`INSERT INTO raw_materials_stock
		 (sku_description, sku_id, current_stock_kg, price, last_review_date, responsible_employee)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		m.SKUDescription, m.SKUID, m.CurrentStockKg, m.Price,
		m.LastReview.Format(types.DateLayout), m.ResponsibleEmployee,
	)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// BulkInsert inserts all records in one transaction. Either every record is
// inserted or none are.
func (s *Store) BulkInsert(materials []types.Material) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin bulk insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT INTO raw_materials_stock
		 (sku_description, sku_id, current_stock_kg, price, last_review_date, responsible_employee)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	)
	if err != nil {
		return fmt.Errorf("prepare bulk insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range materials {
		if _, err := stmt.Exec(
			m.SKUDescription, m.SKUID, m.CurrentStockKg, m.Price,
			m.LastReview.Format(types.DateLayout), m.ResponsibleEmployee,
		); err != nil {
			return fmt.Errorf("insert material sku %d: %w", m.SKUID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit bulk insert: %w", err)
	}
	return nil
}

// SelectAll returns every record in insertion order.
func (s *Store) SelectAll() ([]types.Material, error) {
	rows, err := s.db.Query(
		`SELECT ` + selectColumns + ` FROM raw_materials_stock ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("select materials: %w", err)
	}
	defer rows.Close()

	var materials []types.Material
	for rows.Next() {
		m, err := scanMaterial(rows)
		if err != nil {
			return nil, err
		}
		materials = append(materials, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate materials: %w", err)
	}
	return materials, nil
}

// SelectBySKU returns the record with the given SKU, or ErrNotFound. When
// duplicate SKUs exist the lowest id wins.
func (s *Store) SelectBySKU(sku int64) (types.Material, error) {
	row := s.db.QueryRow(
		`SELECT `+selectColumns+` FROM raw_materials_stock WHERE sku_id = ? ORDER BY id LIMIT 1`,
		sku,
	)
	m, err := scanMaterial(row)
	if err == sql.ErrNoRows {
		return types.Material{}, fmt.Errorf("sku %d: %w", sku, types.ErrNotFound)
	}
	if err != nil {
		return types.Material{}, err
	}
	return m, nil
}

// UpdateStock sets the stock quantity and review date of the record with the
// given SKU in a single statement. Both fields change together or not at all.
// Returns ErrNotFound when no record matches; the lowest id wins on duplicate
// SKUs.
func (s *Store) UpdateStock(sku int64, quantity decimal.Decimal, reviewDate time.Time) error {
	res, err := s.db.Exec(
		`UPDATE raw_materials_stock SET current_stock_kg = ?, last_review_date = ?
		 WHERE id = (SELECT MIN(id) FROM raw_materials_stock WHERE sku_id = ?)`,
		quantity, reviewDate.Format(types.DateLayout), sku,
	)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update stock rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("sku %d: %w", sku, types.ErrNotFound)
	}
	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanMaterial(sc scanner) (types.Material, error) {
	var (
		m       types.Material
		dateStr string
	)
	err := sc.Scan(
		&m.ID, &m.SKUDescription, &m.SKUID, &m.CurrentStockKg,
		&m.Price, &dateStr, &m.ResponsibleEmployee,
	)
	if err != nil {
		return types.Material{}, err
	}
	m.LastReview, err = time.Parse(types.DateLayout, dateStr)
	if err != nil {
		return types.Material{}, fmt.Errorf("parse review date %q: %w", dateStr, err)
	}
	return m, nil
}
