package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tanu42012/zap-shift-server/internal/models"
)

func patchJSON(r http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest("PATCH", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateRiderStartsPending(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/riders", map[string]interface{}{
		"name":     "Karim",
		"email":    "karim@example.com",
		"phone":    "01811111111",
		"district": "Pabna",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var rider models.Rider
	require.NoError(t, db.Where("email = ?", "karim@example.com").First(&rider).Error)
	assert.Equal(t, models.RiderStatusPending, rider.Status)
	assert.False(t, rider.AppliedAt.IsZero())
	assert.Zero(t, rider.ActiveParcels)
}

func TestCreateRiderValidation(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	w := postJSON(r, "/riders", map[string]interface{}{"name": "No District", "email": "x@example.com"})
	assert.Equal(t, 400, w.Code)
}

func TestAvailableRidersByDistrict(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	seedRider(t, db, nil) // active, Pabna
	seedRider(t, db, func(rd *models.Rider) {
		rd.Name = "Pending Pabna"
		rd.Status = models.RiderStatusPending
	})
	seedRider(t, db, func(rd *models.Rider) {
		rd.Name = "Active Dhaka"
		rd.District = "Dhaka"
	})

	req := httptest.NewRequest("GET", "/riders/available?district=Pabna", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)

	var riders []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &riders))
	require.Len(t, riders, 1)
	assert.Equal(t, "Rahim", riders[0]["name"])

	// district is mandatory
	req = httptest.NewRequest("GET", "/riders/available", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, 400, w.Code)
}

func TestPendingAndApprovedLists(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	seedRider(t, db, func(rd *models.Rider) {
		rd.Name = "Pending One"
		rd.Status = models.RiderStatusPending
	})
	seedRider(t, db, func(rd *models.Rider) {
		rd.Name = "Active One"
	})
	seedRider(t, db, func(rd *models.Rider) {
		rd.Name = "Rejected One"
		rd.Status = models.RiderStatusRejected
	})

	req := httptest.NewRequest("GET", "/riders/pending", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	var riders []models.Rider
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &riders))
	require.Len(t, riders, 1)
	assert.Equal(t, "Pending One", riders[0].Name)

	req = httptest.NewRequest("GET", "/riders/approved", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, 200, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &riders))
	require.Len(t, riders, 1)
	assert.Equal(t, "Active One", riders[0].Name)
}

func TestApproveRiderPromotesMatchingUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	user := models.User{Email: "rahim@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)

	rider := seedRider(t, db, func(rd *models.Rider) {
		rd.Status = models.RiderStatusPending
	})

	w := patchJSON(r, "/riders/"+rider.ID.String(), map[string]string{
		"status": models.RiderStatusActive,
		"email":  "rahim@example.com",
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated models.Rider
	require.NoError(t, db.First(&updated, "id = ?", rider.ID).Error)
	assert.Equal(t, models.RiderStatusActive, updated.Status)

	var promoted models.User
	require.NoError(t, db.Where("email = ?", "rahim@example.com").First(&promoted).Error)
	assert.Equal(t, models.RoleRider, promoted.Role)
}

// The rider update is authoritative; a missing user account only skips the
// role promotion.
func TestApproveRiderWithoutMatchingUser(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	rider := seedRider(t, db, func(rd *models.Rider) {
		rd.Status = models.RiderStatusPending
		rd.Email = "nobody@example.com"
	})

	w := patchJSON(r, "/riders/"+rider.ID.String(), map[string]string{
		"status": models.RiderStatusActive,
	})
	require.Equal(t, 200, w.Code, w.Body.String())

	var updated models.Rider
	require.NoError(t, db.First(&updated, "id = ?", rider.ID).Error)
	assert.Equal(t, models.RiderStatusActive, updated.Status)
}

func TestRejectRider(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	rider := seedRider(t, db, func(rd *models.Rider) {
		rd.Status = models.RiderStatusPending
	})

	w := patchJSON(r, "/riders/"+rider.ID.String(), map[string]string{
		"status": models.RiderStatusRejected,
	})
	require.Equal(t, 200, w.Code)

	var updated models.Rider
	require.NoError(t, db.First(&updated, "id = ?", rider.ID).Error)
	assert.Equal(t, models.RiderStatusRejected, updated.Status)
}

func TestRiderStatusTransitions(t *testing.T) {
	db := setupTestDB(t)
	r := setupRouter(db)

	active := seedRider(t, db, nil)

	// terminal states cannot transition
	w := patchJSON(r, "/riders/"+active.ID.String(), map[string]string{
		"status": models.RiderStatusRejected,
	})
	assert.Equal(t, 400, w.Code)

	// unknown status value
	pending := seedRider(t, db, func(rd *models.Rider) {
		rd.Status = models.RiderStatusPending
	})
	w = patchJSON(r, "/riders/"+pending.ID.String(), map[string]string{"status": "pending"})
	assert.Equal(t, 400, w.Code)

	// malformed and missing ids
	w = patchJSON(r, "/riders/not-a-uuid", map[string]string{"status": models.RiderStatusActive})
	assert.Equal(t, 400, w.Code)

	w = patchJSON(r, "/riders/00000000-0000-0000-0000-000000000000", map[string]string{"status": models.RiderStatusActive})
	assert.Equal(t, 404, w.Code)
}
