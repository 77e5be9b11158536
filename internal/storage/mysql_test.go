package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name    string
		dsn     string
		wantErr bool
	}{
		{
			name: "tcp dsn",
			dsn:  "root:@tcp(127.0.0.1:3306)/test_results",
		},
		{
			name: "unix socket dsn with params",
			dsn:  "ci@unix(/run/mysqld/mysqld.sock)/results?charset=utf8mb4",
		},
		{
			name:    "missing database name",
			dsn:     "root:@tcp(127.0.0.1:3306)/",
			wantErr: true,
		},
		{
			name:    "not a dsn",
			dsn:     "results",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := parseDSN(tt.dsn)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, cfg.ParseTime, "ParseTime must be forced on")
			assert.Equal(t, time.UTC, cfg.Loc)
		})
	}
}

func TestNewMySQLStorage_InvalidDSN(t *testing.T) {
	_, err := NewMySQLStorage("results")
	assert.ErrorContains(t, err, "invalid results DSN")
}
