package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hostel-desk/config"
	"hostel-desk/internal/model"
)

func TestDialector(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost/hostel", "postgres"},
		{"postgresql://u:p@localhost/hostel", "postgres"},
		{"host=localhost user=u dbname=hostel", "postgres"},
		{"mysql://u:p@tcp(localhost:3306)/hostel", "mysql"},
		{"file:hostel.db", "sqlite"},
		{"hostel.db", "sqlite"},
	}
	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, Dialector(tt.dsn).Name())
		})
	}
}

func TestInit_SQLiteMemory(t *testing.T) {
	db, err := Init(&config.StoreConfig{DSN: "file:dbtest?mode=memory&cache=shared", MaxOpenConns: 1})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&model.Record{}))
}
