package repository

import (
	"os"
	"testing"

	"github.com/adilemreee/sevgilim-sub001/database"
	"github.com/adilemreee/sevgilim-sub001/utils"
	"gorm.io/gorm"
)

// testDB connects to the throwaway postgres the CI compose file brings
// up and recreates the schema. Tests needing it are skipped when the
// database is not around.
func testDB(t *testing.T) *gorm.DB {
	if os.Getenv("DB_MOCK_HOST") == "" {
		t.Skip("DB_MOCK_HOST not set, skipping database test")
	}
	os.Setenv("MOCK_REDIS", "true")
	t.Cleanup(func() {
		os.Unsetenv("MOCK_REDIS")
	})
	mockDb, err := database.NewConnection(&database.Config{
		Host:     os.Getenv("DB_MOCK_HOST"),
		Port:     os.Getenv("DB_MOCK_PORT"),
		Password: os.Getenv("DB_MOCK_PASS"),
		User:     os.Getenv("DB_MOCK_USER"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
		DBName:   "testing",
	})
	utils.AssertEqual(t, nil, err)
	err = database.DropAndCreateTables(mockDb)
	utils.AssertEqual(t, nil, err)
	return mockDb
}
