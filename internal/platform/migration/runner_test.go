// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/inkwell/internal/platform/migration"
)

/*
TestPgxDSN verifies the scheme rewrite for golang-migrate.
*/
func TestPgxDSN(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"postgres://u:p@db:5432/inkwell?sslmode=disable", "pgx5://u:p@db:5432/inkwell?sslmode=disable"},
		{"postgresql://u@db/inkwell", "pgx5://u@db/inkwell"},
		{"pgx5://u@db/inkwell", "pgx5://u@db/inkwell"},
		{"host=db user=u dbname=inkwell", "host=db user=u dbname=inkwell"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, migration.PgxDSN(tt.in))
		})
	}
}
