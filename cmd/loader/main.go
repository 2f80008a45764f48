package main

import (
	"database/sql"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/lib/pq"

	"github.com/orderdesk/order-api/internal/config"
)

type copyTarget struct {
	table   string
	file    string
	columns []string
}

// load order follows the foreign keys: parents before children.
var copyTargets = []copyTarget{
	{"users", "users.csv", []string{"full_name", "email", "created_at"}},
	{"categories", "categories.csv", []string{"name"}},
	{"products", "products.csv", []string{"category_id", "name", "sku", "price", "in_stock", "created_at"}},
	{"orders", "orders.csv", []string{"user_id", "order_date", "status"}},
	{"order_items", "order_items.csv", []string{"order_id", "product_id", "quantity", "unit_price"}},
}

func assertDataFiles(dir string) error {
	var missing []string
	for _, t := range copyTargets {
		if _, err := os.Stat(filepath.Join(dir, t.file)); err != nil {
			missing = append(missing, t.file)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing CSV files: %v (run datagen first)", missing)
	}
	return nil
}

func truncateTables(db *sql.DB) error {
	_, err := db.Exec("TRUNCATE TABLE order_items, orders, products, categories, users RESTART IDENTITY CASCADE")
	return err
}

func copyTable(db *sql.DB, dir string, t copyTarget) (int64, error) {
	f, err := os.Open(filepath.Join(dir, t.file))
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("%s: read header: %w", t.file, err)
	}
	if len(header) != len(t.columns) {
		return 0, fmt.Errorf("%s: expected %d columns, got %d", t.file, len(t.columns), len(header))
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(pq.CopyIn(t.table, t.columns...))
	if err != nil {
		tx.Rollback()
		return 0, err
	}

	var count int64
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("%s: read row: %w", t.file, err)
		}

		args := make([]any, len(record))
		for i, v := range record {
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("%s: copy row: %w", t.file, err)
		}
		count++
	}

	// flush the COPY buffer
	if _, err := stmt.Exec(); err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("%s: flush copy: %w", t.file, err)
	}
	if err := stmt.Close(); err != nil {
		tx.Rollback()
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return count, nil
}

func main() {
	dir := flag.String("data", "data", "directory holding the generated CSV files")
	flag.Parse()

	configuration, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	config.MustNonEmpty(configuration.DatabaseURL, "DATABASE_URL")

	if err := assertDataFiles(*dir); err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open("postgres", configuration.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to open PostgreSQL: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		log.Fatalf("failed to connect to PostgreSQL: %v", err)
	}

	if err := truncateTables(db); err != nil {
		log.Fatalf("truncate error: %v", err)
	}

	for _, t := range copyTargets {
		count, err := copyTable(db, *dir, t)
		if err != nil {
			log.Fatalf("load %s error: %v", t.table, err)
		}
		log.Printf("loaded %d rows into %s", count, t.table)
	}

	if _, err := db.Exec("REFRESH MATERIALIZED VIEW daily_sales_totals"); err != nil {
		log.Fatalf("refresh daily_sales_totals error: %v", err)
	}

	log.Println("data load complete")
}
