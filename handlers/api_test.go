package handlers_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"food-donation-api/config"
	"food-donation-api/models"
	"food-donation-api/routes"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupAPI wires a fresh in-memory database and a real router for one test.
// The shared-cache DSN keeps the database alive across pooled connections.
func setupAPI(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Donation{},
		&models.DonationStatusHistory{},
	))
	config.DB = db

	r := gin.New()
	routes.SetupRoutes(r)
	return r
}

func doRequest(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type authResponse struct {
	Token string `json:"token"`
	User  struct {
		ID       uint            `json:"id"`
		FullName string          `json:"fullName"`
		Email    string          `json:"email"`
		Role     models.UserRole `json:"role"`
	} `json:"user"`
}

func registerUser(t *testing.T, r *gin.Engine, fullName, email string, role models.UserRole) authResponse {
	t.Helper()
	body := fmt.Sprintf(`{"fullName":%q,"email":%q,"password":"secret123","role":%q,"phone":"555-0100","address":"12 Main St"}`,
		fullName, email, role)
	w := doRequest(r, http.MethodPost, "/api/users/register", body, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp authResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp
}

func donationBody(foodName string) string {
	expiry := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	return fmt.Sprintf(`{
		"food_name": %q,
		"quantity": "5 kg",
		"description": "Cooked, still warm",
		"expiry_date": %q,
		"pickup_address": "12 Main St",
		"pickup_time": "after 6pm"
	}`, foodName, expiry)
}

type donationJSON struct {
	ID            uint                `json:"id"`
	DonorID       uint                `json:"donor_id"`
	FoodName      string              `json:"food_name"`
	Quantity      string              `json:"quantity"`
	Description   string              `json:"description"`
	PickupAddress string              `json:"pickup_address"`
	PickupTime    string              `json:"pickup_time"`
	Status        string              `json:"status"`
	ClaimedByID   *uint               `json:"claimed_by_id"`
	Donor         *models.UserSummary `json:"donor"`
	ClaimedBy     *models.UserSummary `json:"claimed_by"`
}

func createDonation(t *testing.T, r *gin.Engine, token, foodName string) donationJSON {
	t.Helper()
	w := doRequest(r, http.MethodPost, "/api/donations", donationBody(foodName), token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Donation donationJSON `json:"donation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.Donation.ID)
	return resp.Donation
}

func listDonations(t *testing.T, r *gin.Engine, path, token string) []donationJSON {
	t.Helper()
	w := doRequest(r, http.MethodGet, path, "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Count     int            `json:"count"`
		Donations []donationJSON `json:"donations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, resp.Count, len(resp.Donations))
	return resp.Donations
}

func getDetail(t *testing.T, r *gin.Engine, id uint, token string) (donationJSON, []models.DonationStatusHistory) {
	t.Helper()
	w := doRequest(r, http.MethodGet, fmt.Sprintf("/api/donations/%d", id), "", token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Donation      donationJSON                   `json:"donation"`
		StatusHistory []models.DonationStatusHistory `json:"status_history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Donation, resp.StatusHistory
}
