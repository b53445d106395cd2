package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"food-donation-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterValidation(t *testing.T) {
	r := setupAPI(t)

	// Role must be donor or ngo
	body := `{"fullName":"Eve","email":"eve@test.local","password":"secret123","role":"admin"}`
	w := doRequest(r, http.MethodPost, "/api/users/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Password too short
	body = `{"fullName":"Eve","email":"eve@test.local","password":"abc","role":"donor"}`
	w = doRequest(r, http.MethodPost, "/api/users/register", body, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Duplicate email
	registerUser(t, r, "Alice Donor", "alice@test.local", models.RoleDonor)
	body = `{"fullName":"Alice Again","email":"alice@test.local","password":"secret123","role":"ngo"}`
	w = doRequest(r, http.MethodPost, "/api/users/register", body, "")
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestLogin(t *testing.T) {
	r := setupAPI(t)
	registered := registerUser(t, r, "Alice Donor", "alice@test.local", models.RoleDonor)

	w := doRequest(r, http.MethodPost, "/api/users/login", `{"email":"alice@test.local","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, registered.User.ID, resp.User.ID)
	assert.Equal(t, models.RoleDonor, resp.User.Role)

	// Wrong password and unknown user come back as the same 401
	w = doRequest(r, http.MethodPost, "/api/users/login", `{"email":"alice@test.local","password":"wrongpass"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = doRequest(r, http.MethodPost, "/api/users/login", `{"email":"nobody@test.local","password":"secret123"}`, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProfile(t *testing.T) {
	r := setupAPI(t)
	donor := registerUser(t, r, "Alice Donor", "alice@test.local", models.RoleDonor)

	w := doRequest(r, http.MethodGet, "/api/users/me", "", donor.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "Alice Donor", me.User.FullName)
	assert.NotContains(t, w.Body.String(), "password")

	// Update mutable fields; email and role stay fixed
	update := `{"fullName":"Alice D.","phone":"555-0199","address":"99 Side St","role":"ngo","email":"new@test.local"}`
	w = doRequest(r, http.MethodPut, "/api/users/profile", update, donor.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(r, http.MethodGet, "/api/users/me", "", donor.Token)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &me))
	assert.Equal(t, "Alice D.", me.User.FullName)
	assert.Equal(t, "555-0199", me.User.Phone)
	assert.Equal(t, "99 Side St", me.User.Address)
	assert.Equal(t, "alice@test.local", me.User.Email)
	assert.Equal(t, models.RoleDonor, me.User.Role)
}

func TestListNGOs(t *testing.T) {
	r := setupAPI(t)
	donor := registerUser(t, r, "Alice Donor", "alice@test.local", models.RoleDonor)
	registerUser(t, r, "NGO Bravo", "bravo@test.local", models.RoleNGO)
	registerUser(t, r, "NGO Charlie", "charlie@test.local", models.RoleNGO)

	w := doRequest(r, http.MethodGet, "/api/users/ngos", "", donor.Token)
	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Count int           `json:"count"`
		NGOs  []models.User `json:"ngos"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Count)
	for _, u := range resp.NGOs {
		assert.Equal(t, models.RoleNGO, u.Role)
	}
	assert.NotContains(t, w.Body.String(), "password")
}

func TestStateMachineInfo(t *testing.T) {
	r := setupAPI(t)
	w := doRequest(r, http.MethodGet, "/api/state-machine", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "available")
	assert.Contains(t, w.Body.String(), `"completed"`)
}
