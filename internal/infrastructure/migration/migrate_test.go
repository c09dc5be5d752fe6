package migration

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockMigrator — мок для интерфейса Migrator
type MockMigrator struct {
	mock.Mock
}

func (m *MockMigrator) Up() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockMigrator) Close() (error, error) {
	args := m.Called()
	return args.Error(0), args.Error(1)
}

var testFS = fstest.MapFS{
	"migrations/000001_init.up.sql":   {Data: []byte("CREATE TABLE t (id INTEGER);")},
	"migrations/000001_init.down.sql": {Data: []byte("DROP TABLE t;")},
}

func engineFor(m Migrator, gotURL *string) MigrationEngine {
	return func(_ source.Driver, databaseURL string) (Migrator, error) {
		if gotURL != nil {
			*gotURL = databaseURL
		}
		return m, nil
	}
}

func TestMigration_Up_Success(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(nil)
	mockM.On("Close").Return(nil, nil)

	var url string
	mg := NewMigration(testFS, "migrations", SQLiteURL("/tmp/pressroom.db"), engineFor(mockM, &url))
	err := mg.Up()

	assert.NoError(t, err)
	assert.Equal(t, "sqlite3:///tmp/pressroom.db", url)
	mockM.AssertExpectations(t)
}

func TestMigration_Up_NoChange(t *testing.T) {
	mockM := new(MockMigrator)

	// ErrNoChange не должна считаться ошибкой в методе Up()
	mockM.On("Up").Return(migrate.ErrNoChange)
	mockM.On("Close").Return(nil, nil)

	mg := NewMigration(testFS, "migrations", "", engineFor(mockM, nil))
	assert.NoError(t, mg.Up())
}

func TestMigration_Up_EngineError(t *testing.T) {
	// Ошибка на этапе создания мигратора (например, неверный драйвер)
	engine := func(source.Driver, string) (Migrator, error) {
		return nil, errors.New("init error")
	}

	mg := NewMigration(testFS, "migrations", "", engine)
	assert.EqualError(t, mg.Up(), "init error")
}

func TestMigration_Up_MissingSource(t *testing.T) {
	mockM := new(MockMigrator)
	mg := NewMigration(fstest.MapFS{}, "migrations", "", engineFor(mockM, nil))

	assert.Error(t, mg.Up())
	mockM.AssertNotCalled(t, "Up")
}

func TestMigration_Up_UpAndCloseErrors(t *testing.T) {
	mockM := new(MockMigrator)
	mockM.On("Up").Return(errors.New("dirty"))
	mockM.On("Close").Return(nil, errors.New("db closed"))

	mg := NewMigration(testFS, "migrations", "", engineFor(mockM, nil))
	err := mg.Up()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "dirty")
	assert.Contains(t, err.Error(), "db closed")
}
