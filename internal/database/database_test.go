package database

import (
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"

	"staylix/internal/domain"
)

func TestDialector(t *testing.T) {
	assert.Equal(t, "postgres", Dialector("postgres://u:p@localhost:5432/staylix").Name())
	assert.Equal(t, "postgres", Dialector("postgresql://u:p@localhost/staylix").Name())
	assert.Equal(t, "sqlite", Dialector("staylix.db").Name())
	assert.Equal(t, "sqlite", Dialector("file::memory:?cache=shared").Name())
}

func TestOpen_PostgresWithMock(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := Open(postgres.New(postgres.Config{Conn: sqlDB}), Options{})
	require.NoError(t, err)
	assert.Equal(t, "postgres", db.Dialector.Name())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConnectAndMigrate_SQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:db_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := Connect(dsn, Options{})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)

	for _, model := range []any{&domain.User{}, &domain.Hotel{}, &domain.Room{}, &domain.Discount{}, &domain.Booking{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasColumn(&domain.Booking{}, "payment_order_id"))
}
