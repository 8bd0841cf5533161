package database

import (
	"context"
	"crm/utils"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

const (
	MYSQL_CONN_MAX_LIFETIME = 5 * time.Minute
	MYSQL_MAX_OPEN_CONNS    = 10
	MYSQL_MAX_IDLE_CONNS    = 10
)

// OpenLegacyMySQL opens the pool for the legacy sales database. It returns
// nil when MYSQL_URI is not configured.
func OpenLegacyMySQL(ctx context.Context) (*sql.DB, error) {
	mysqlURI := os.Getenv(utils.MYSQL_URI)
	if mysqlURI == "" {
		return nil, nil
	}

	db, err := sql.Open("mysql", mysqlURI)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MySQL: %w", err)
	}
	db.SetConnMaxLifetime(MYSQL_CONN_MAX_LIFETIME)
	db.SetMaxOpenConns(MYSQL_MAX_OPEN_CONNS)
	db.SetMaxIdleConns(MYSQL_MAX_IDLE_CONNS)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}
	return db, nil
}

type LegacySale struct {
	SellerID uint64
	Count    int64
	Total    float64
}

// LegacySalesBySeller sums the legacy sales of each seller in [from, until).
func LegacySalesBySeller(ctx context.Context, db *sql.DB, sellerIDs []uint64, from, until time.Time) (map[uint64]LegacySale, error) {
	sales := map[uint64]LegacySale{}
	if db == nil || len(sellerIDs) == 0 {
		return sales, nil
	}

	placeholders := make([]string, len(sellerIDs))
	args := make([]any, 0, len(sellerIDs)+2)
	for i, id := range sellerIDs {
		placeholders[i] = "?"
		args = append(args, id)
	}
	args = append(args, from, until)

	query := fmt.Sprintf(
		"SELECT vendedor_id, COUNT(*), COALESCE(SUM(valor_total), 0) FROM vendas_legado WHERE vendedor_id IN (%s) AND data_venda >= ? AND data_venda < ? GROUP BY vendedor_id",
		strings.Join(placeholders, ","),
	)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query legacy sales from MySQL: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		sale := LegacySale{}
		if err := rows.Scan(&sale.SellerID, &sale.Count, &sale.Total); err != nil {
			return nil, fmt.Errorf("failed to scan legacy sale row: %w", err)
		}
		sales[sale.SellerID] = sale
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating legacy sale rows: %w", err)
	}

	return sales, nil
}
