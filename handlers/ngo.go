package handlers

import (
	"net/http"

	"food-donation-api/config"
	"food-donation-api/middleware"
	"food-donation-api/models"
	"food-donation-api/statemachine"

	"github.com/gin-gonic/gin"
)

// GetClaimedDonations returns donations claimed by the logged-in NGO,
// both pending pickup and completed
func GetClaimedDonations(c *gin.Context) {
	ngoID := middleware.GetUserID(c)

	var donations []models.Donation
	if err := config.DB.
		Where("claimed_by_id = ? AND status IN ?", ngoID, []models.DonationStatus{models.StatusClaimed, models.StatusCompleted}).
		Order("created_at desc, id desc").
		Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch claimed donations"})
		return
	}

	enriched, err := enrichWithDonors(donations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load donor info"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(enriched), "donations": enriched})
}

// ClaimDonation reserves an available donation for the logged-in NGO,
// transitioning available → claimed. Two NGOs racing for the same donation
// is the one contended path in the system: the transition is a single
// conditional UPDATE guarded by the current status, so exactly one wins.
func ClaimDonation(c *gin.Context) {
	ngoID := middleware.GetUserID(c)
	donationID := c.Param("id")

	var donation models.Donation
	if err := config.DB.First(&donation, donationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if err := statemachine.CanTransition(donation.Status, models.StatusClaimed, models.RoleNGO); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "This donation is not available for claiming",
			"current_status":    donation.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(donation.Status),
		})
		return
	}

	res := config.DB.Model(&models.Donation{}).
		Where("id = ? AND status = ?", donation.ID, models.StatusAvailable).
		Updates(map[string]interface{}{
			"status":        models.StatusClaimed,
			"claimed_by_id": ngoID,
		})
	if res.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to claim donation"})
		return
	}
	if res.RowsAffected == 0 {
		// Lost the race — another NGO claimed it between our read and write.
		// Re-read for the actual status; it may even be completed already.
		config.DB.First(&donation, donation.ID)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "This donation is not available for claiming",
			"current_status": donation.Status,
		})
		return
	}

	history := models.DonationStatusHistory{
		DonationID: donation.ID,
		FromStatus: models.StatusAvailable,
		ToStatus:   models.StatusClaimed,
		ChangedBy:  ngoID,
		Note:       "Donation claimed by NGO",
	}
	config.DB.Create(&history)

	config.DB.First(&donation, donation.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation claimed successfully",
		"donation": donation,
	})
}

// CompleteDonation transitions claimed → completed. Only the NGO recorded
// in claimed_by may confirm the pickup.
func CompleteDonation(c *gin.Context) {
	ngoID := middleware.GetUserID(c)
	donationID := c.Param("id")

	var donation models.Donation
	if err := config.DB.First(&donation, donationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	if err := statemachine.CanTransition(donation.Status, models.StatusCompleted, models.RoleNGO); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":             "Only claimed donations can be marked as completed",
			"current_status":    donation.Status,
			"reason":            err.Error(),
			"valid_next_states": statemachine.ValidTransitionsFrom(donation.Status),
		})
		return
	}

	if donation.ClaimedByID == nil || *donation.ClaimedByID != ngoID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not the NGO that claimed this donation"})
		return
	}

	if err := config.DB.Model(&donation).Update("status", models.StatusCompleted).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete donation"})
		return
	}

	history := models.DonationStatusHistory{
		DonationID: donation.ID,
		FromStatus: models.StatusClaimed,
		ToStatus:   models.StatusCompleted,
		ChangedBy:  ngoID,
		Note:       "Pickup confirmed by NGO",
	}
	config.DB.Create(&history)

	config.DB.First(&donation, donation.ID)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Donation completed successfully",
		"donation": donation,
	})
}
