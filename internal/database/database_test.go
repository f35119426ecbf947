package database

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/franciscosanchezn/gin-recipe-catalog/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestDSN(t *testing.T) {
	t.Run("mysql", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "mysql", Host: "db", Port: "3306", User: "studb162", Password: "abc123", Name: "db162"}
		dsn := cfg.DSN()
		assert.Contains(t, dsn, "studb162:abc123@tcp(db:3306)/db162?")
		assert.Contains(t, dsn, "parseTime=true")
		assert.Contains(t, dsn, "collation=utf8mb4_hungarian_ci")
	})

	t.Run("postgres", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
		assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable", cfg.DSN())
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "sqlite", Path: "x.sqlite"}
		assert.Equal(t, "x.sqlite", cfg.DSN())
	})

	t.Run("unknown", func(t *testing.T) {
		cfg := DatabaseConfig{Driver: "oracle"}
		assert.Empty(t, cfg.DSN())
	})
}

func TestStringMasksPassword(t *testing.T) {
	cfg := DatabaseConfig{Driver: "mysql", Password: "abc123"}
	assert.NotContains(t, cfg.String(), "abc123")
}

func TestInitDatabaseUnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestInitMigrateAndSeed(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:?_foreign_keys=on", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	require.NoError(t, Seed(db))
	var categories int64
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(3), categories)

	// second run is a no-op
	require.NoError(t, Seed(db))
	require.NoError(t, db.Model(&models.Category{}).Count(&categories).Error)
	assert.Equal(t, int64(3), categories)
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	db, err := InitDatabase(DatabaseConfig{Driver: "sqlite", Path: ":memory:?_foreign_keys=on", MaxRetries: 1})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(logrus.InfoLevel)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	var user models.User
	err = db.Where("email = ?", "senki@example.com").First(&user).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	assert.NotContains(t, buf.String(), "record not found")

	// real SQL errors still reach the JSON log
	err = db.Table("nincs_ilyen_tabla").First(&user).Error
	assert.Error(t, err)
	assert.Contains(t, buf.String(), "nincs_ilyen_tabla")
	assert.Contains(t, buf.String(), `"level":"info"`)
}
