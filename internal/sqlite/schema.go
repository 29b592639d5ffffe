// Package sqlite implements the SQLite store for raw-material stock records.
package sqlite

// The one table this program owns. The id is an autoincrement surrogate key;
// sku_id is the lookup key for stock changes but carries no uniqueness
// constraint, so duplicate SKUs are resolved by lowest id.
const (
	tableName = "raw_materials_stock"

	createStock = `CREATE TABLE IF NOT EXISTS raw_materials_stock (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    sku_description TEXT,
    sku_id INTEGER,
    current_stock_kg NUMERIC,
    price NUMERIC,
    last_review_date DATE,
    responsible_employee TEXT
);`

	dropStock = `DROP TABLE IF EXISTS raw_materials_stock;`

	selectColumns = `id, sku_description, sku_id, current_stock_kg, price, last_review_date, responsible_employee`
)
