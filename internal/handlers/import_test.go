package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/officekit/office-planning-api/internal/models"
	"github.com/officekit/office-planning-api/internal/repository"
	"github.com/officekit/office-planning-api/internal/services"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupImportTestEnv(t *testing.T) (*gorm.DB, *ImportHandler) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.PlanEntry{},
	)
	require.NoError(t, err)

	importService := services.NewImportService(
		repository.NewUserRepository(db),
		repository.NewLocationRepository(db),
		repository.NewEntryRepository(db),
	)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, NewImportHandler(importService)
}

func TestImportHandler_MixedRows(t *testing.T) {
	db, handler := setupImportTestEnv(t)

	db.Create(&models.User{
		Email:        "amy@example.com",
		PasswordHash: "hashedpassword",
		Surname:      "Archer",
		Forenames:    "Amy",
	})
	db.Create(&models.Location{
		Name:       "Headquarters",
		ShortLabel: "HQ",
		Slug:       "hq",
		IsPhysical: true,
	})

	payload := map[string]interface{}{
		"rows": [][]string{
			{"email", "date", "location", "note", "availability"},
			{"amy@example.com", "09/06/2025", "hq", "front desk", "O"},
			{"nobody@example.com", "09/06/2025", "hq", "", "O"},
		},
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/entries/import", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.ImportEntries(c)

	require.Equal(t, http.StatusOK, w.Code)

	var result services.ImportResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, 1, result.Imported)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 3, result.Errors[0].Row)
}

func TestImportHandler_MissingRows(t *testing.T) {
	_, handler := setupImportTestEnv(t)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/entries/import", bytes.NewReader([]byte(`{}`)))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.ImportEntries(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}
