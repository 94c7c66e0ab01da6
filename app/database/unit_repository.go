package database

import (
	"context"
	"fmt"
)

var _ UnitRepository = (*SQLUnitRepository)(nil)

// SQLUnitRepository reads the organizational unit reference data
type SQLUnitRepository struct {
	db *DB
}

func NewUnitRepository(db *DB) *SQLUnitRepository {
	return &SQLUnitRepository{db: db}
}

func (r *SQLUnitRepository) GetAllUnits(ctx context.Context) ([]Unit, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, normalized_name, region_id, region_code
		FROM units
		ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to get units: %w", err)
	}
	defer rows.Close()

	var units []Unit
	for rows.Next() {
		var unit Unit
		err := rows.Scan(&unit.ID, &unit.Name, &unit.NormalizedName, &unit.RegionID, &unit.RegionCode)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unit row: %w", err)
		}
		units = append(units, unit)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating unit rows: %w", err)
	}

	return units, nil
}

func (r *SQLUnitRepository) GetUnitCount(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM units").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to get unit count: %w", err)
	}
	return count, nil
}
