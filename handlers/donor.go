package handlers

import (
	"net/http"
	"time"

	"food-donation-api/config"
	"food-donation-api/middleware"
	"food-donation-api/models"

	"github.com/gin-gonic/gin"
)

type DonationRequest struct {
	FoodName      string    `json:"food_name" binding:"required"`
	Quantity      string    `json:"quantity" binding:"required"`
	Description   string    `json:"description" binding:"required"`
	ExpiryDate    time.Time `json:"expiry_date" binding:"required"`
	PickupAddress string    `json:"pickup_address" binding:"required"`
	PickupTime    string    `json:"pickup_time" binding:"required"`
}

// CreateDonation lists a new donation (donor only)
func CreateDonation(c *gin.Context) {
	donorID := middleware.GetUserID(c)

	var req DonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	donation := models.Donation{
		DonorID:       donorID,
		FoodName:      req.FoodName,
		Quantity:      req.Quantity,
		Description:   req.Description,
		ExpiryDate:    req.ExpiryDate,
		PickupAddress: req.PickupAddress,
		PickupTime:    req.PickupTime,
		Status:        models.StatusAvailable,
	}

	if err := config.DB.Create(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create donation"})
		return
	}

	// Record initial status history
	history := models.DonationStatusHistory{
		DonationID: donation.ID,
		ToStatus:   models.StatusAvailable,
		ChangedBy:  donorID,
		Note:       "Donation listed by donor",
	}
	config.DB.Create(&history)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Donation created successfully",
		"donation": donation,
	})
}

// UpdateDonationRequest allows partial updates of the content fields
type UpdateDonationRequest struct {
	FoodName      *string    `json:"food_name,omitempty"`
	Quantity      *string    `json:"quantity,omitempty"`
	Description   *string    `json:"description,omitempty"`
	ExpiryDate    *time.Time `json:"expiry_date,omitempty"`
	PickupAddress *string    `json:"pickup_address,omitempty"`
	PickupTime    *string    `json:"pickup_time,omitempty"`
}

// UpdateDonation overwrites the supplied content fields of a donation. Only
// the owning donor may update, and only while the donation is still
// available — once an NGO has claimed it the listing is frozen.
func UpdateDonation(c *gin.Context) {
	donorID := middleware.GetUserID(c)
	donationID := c.Param("id")

	var donation models.Donation
	if err := config.DB.First(&donation, donationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}
	if donation.DonorID != donorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This donation does not belong to you"})
		return
	}
	if donation.Status != models.StatusAvailable {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Cannot update a claimed donation",
			"current_status": donation.Status,
		})
		return
	}

	var req UpdateDonationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Content fields only — status and claimed_by are never touched here
	update := map[string]interface{}{}
	if req.FoodName != nil {
		update["food_name"] = *req.FoodName
	}
	if req.Quantity != nil {
		update["quantity"] = *req.Quantity
	}
	if req.Description != nil {
		update["description"] = *req.Description
	}
	if req.ExpiryDate != nil {
		update["expiry_date"] = *req.ExpiryDate
	}
	if req.PickupAddress != nil {
		update["pickup_address"] = *req.PickupAddress
	}
	if req.PickupTime != nil {
		update["pickup_time"] = *req.PickupTime
	}

	if len(update) > 0 {
		if err := config.DB.Model(&donation).Updates(update).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donation"})
			return
		}
	}

	config.DB.First(&donation, donation.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Donation updated", "donation": donation})
}

// DeleteDonation removes a donation permanently. Same ownership and status
// rules as UpdateDonation.
func DeleteDonation(c *gin.Context) {
	donorID := middleware.GetUserID(c)
	donationID := c.Param("id")

	var donation models.Donation
	if err := config.DB.First(&donation, donationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}
	if donation.DonorID != donorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "This donation does not belong to you"})
		return
	}
	if donation.Status != models.StatusAvailable {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Cannot delete a claimed donation",
			"current_status": donation.Status,
		})
		return
	}

	if err := config.DB.Delete(&donation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete donation"})
		return
	}
	config.DB.Where("donation_id = ?", donation.ID).Delete(&models.DonationStatusHistory{})

	c.JSON(http.StatusOK, gin.H{"message": "Donation removed", "donation_id": donation.ID})
}
