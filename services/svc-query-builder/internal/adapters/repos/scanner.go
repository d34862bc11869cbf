package repos

import (
	"github.com/Shubhamshah007/nse-query-builder/services/svc-query-builder/internal/domain/model"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type (
	// Scanner maps a pgx result set onto label keyed rows.
	Scanner interface {
		ScanRows(rows pgx.Rows) ([]model.Row, error)
	}

	PgxScanner struct{}
)

func NewPgxScanner() *PgxScanner {
	return &PgxScanner{}
}

// ScanRows reads every row and closes rows. NUMERIC columns come back as float64.
func (s *PgxScanner) ScanRows(rows pgx.Rows) ([]model.Row, error) {
	records := make([]map[string]any, 0)
	if err := pgxscan.ScanAll(&records, rows); err != nil {
		return nil, err
	}

	result := make([]model.Row, 0, len(records))
	for _, record := range records {
		for label, value := range record {
			record[label] = normalizePgValue(value)
		}

		result = append(result, model.NewRow(record))
	}

	return result, nil
}

func normalizePgValue(value any) any {
	switch v := value.(type) {
	case pgtype.Numeric:
		f, err := v.Float64Value()
		if err != nil || !f.Valid {
			return nil
		}

		return f.Float64
	case *pgtype.Numeric:
		if v == nil {
			return nil
		}

		return normalizePgValue(*v)
	default:
		return value
	}
}
