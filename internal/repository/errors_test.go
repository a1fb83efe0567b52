package repository

import (
	"errors"
	"testing"

	"dienstplan/internal/roster"

	"gorm.io/gorm"
)

func TestMapStoreError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"missing table", errors.New("no such table: shift_schedule"), roster.ErrSchemaMissing},
		{"missing column", errors.New("no such column: diensthund"), roster.ErrSchemaMissing},
		{"unique", errors.New("UNIQUE constraint failed: wunschfrei_requests.user_id"), roster.ErrConstraintViolation},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), roster.ErrConstraintViolation},
		{"locked", errors.New("database is locked"), roster.ErrStoreUnavailable},
		{"unopenable", errors.New("unable to open database file"), roster.ErrStoreUnavailable},
		{"invalid db", gorm.ErrInvalidDB, roster.ErrStoreUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := mapStoreError(tt.in)
			if tt.want == nil {
				if got != nil {
					t.Errorf("mapStoreError(nil) = %v", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("mapStoreError(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	// Unrecognized errors pass through unchanged.
	plain := errors.New("something else")
	if got := mapStoreError(plain); got != plain {
		t.Errorf("mapStoreError passthrough = %v", got)
	}
}
