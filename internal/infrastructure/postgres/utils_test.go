package postgres

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/zone-laptop/zone-store/internal/domain"
)

func TestTranslate_Reintentables(t *testing.T) {
	transient := []error{
		context.DeadlineExceeded,
		&pgconn.PgError{Code: "40001"},
		&pgconn.PgError{Code: "40P01"},
		&pgconn.PgError{Code: "08006"},
		&pgconn.PgError{Code: "57P01"},
		fmt.Errorf("query: %w", &pgconn.PgError{Code: "40001"}),
	}
	for _, err := range transient {
		got := translate(err)
		assert.ErrorIs(t, got, domain.ErrTransient, "%v", err)
		assert.ErrorIs(t, got, err, "conserva el error original")
	}
}

func TestTranslate_NoReintentables(t *testing.T) {
	for _, err := range []error{
		&pgconn.PgError{Code: "23505"},
		&pgconn.PgError{Code: "23514"},
		errors.New("cualquier otra cosa"),
	} {
		assert.NotErrorIs(t, translate(err), domain.ErrTransient, "%v", err)
	}
	assert.NoError(t, translate(nil))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("x")))
}
