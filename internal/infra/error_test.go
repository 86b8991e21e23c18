//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"cinema-seat-hold/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestWrapRepoErr(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		kind     []infra.RepositoryErrorKind
		wantKind infra.RepositoryErrorKind
	}{
		{name: "pgx no rows", err: pgx.ErrNoRows, wantKind: infra.KindNotFound},
		{name: "redis nil", err: redis.Nil, wantKind: infra.KindNotFound},
		{name: "unique violation", err: &pgconn.PgError{Code: "23505"}, wantKind: infra.KindDuplicateKey},
		{name: "foreign key violation", err: &pgconn.PgError{Code: "23503"}, wantKind: infra.KindForeignKeyViolated},
		{name: "anything else", err: errors.New("conn refused"), wantKind: infra.KindDBFailure},
		{name: "explicit kind wins", err: errors.New("timeout"), kind: []infra.RepositoryErrorKind{infra.KindCacheFailure}, wantKind: infra.KindCacheFailure},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := infra.WrapRepoErr("op", tc.err, tc.kind...)
			assert.True(t, infra.IsKind(err, tc.wantKind), "got %v", err)
			assert.ErrorIs(t, err, tc.err)
		})
	}
}
