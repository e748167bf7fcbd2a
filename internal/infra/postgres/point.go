package postgres

import (
	"database/sql/driver"
	"fmt"
)

// Point maps to the native PostgreSQL point type. Postgres stores points as
// (x, y), so x carries longitude and y latitude. The column exists so the
// position is queryable as a geometric value alongside the plain scalar
// columns.
type Point struct {
	Lng float64
	Lat float64
}

// GormDataType returns the column type for GORM migrations.
func (Point) GormDataType() string {
	return "point"
}

// Value implements driver.Valuer.
func (p Point) Value() (driver.Value, error) {
	return fmt.Sprintf("(%v,%v)", p.Lng, p.Lat), nil
}

// Scan implements sql.Scanner. Postgres renders points as "(x,y)".
func (p *Point) Scan(src interface{}) error {
	var raw string
	switch v := src.(type) {
	case nil:
		*p = Point{}
		return nil
	case []byte:
		raw = string(v)
	case string:
		raw = v
	default:
		return fmt.Errorf("unsupported point source type %T", src)
	}

	if _, err := fmt.Sscanf(raw, "(%f,%f)", &p.Lng, &p.Lat); err != nil {
		return fmt.Errorf("parsing point %q: %w", raw, err)
	}

	return nil
}
