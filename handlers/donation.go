package handlers

import (
	"net/http"

	"food-donation-api/config"
	"food-donation-api/middleware"
	"food-donation-api/models"

	"github.com/gin-gonic/gin"
)

// EnrichedDonation is a donation decorated with contact summaries resolved
// from the user directory
type EnrichedDonation struct {
	models.Donation
	Donor     *models.UserSummary `json:"donor,omitempty"`
	ClaimedBy *models.UserSummary `json:"claimed_by,omitempty"`
}

// userSummaries batch-resolves a set of user ids into contact summaries with
// a single query, instead of one lookup per donation
func userSummaries(ids []uint) (map[uint]models.UserSummary, error) {
	m := make(map[uint]models.UserSummary, len(ids))
	if len(ids) == 0 {
		return m, nil
	}
	var users []models.UserSummary
	if err := config.DB.Model(&models.User{}).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		m[u.ID] = u
	}
	return m, nil
}

// enrichWithDonors attaches a donor summary to every donation in the slice
func enrichWithDonors(donations []models.Donation) ([]EnrichedDonation, error) {
	ids := make([]uint, 0, len(donations))
	seen := map[uint]bool{}
	for _, d := range donations {
		if !seen[d.DonorID] {
			ids = append(ids, d.DonorID)
			seen[d.DonorID] = true
		}
	}

	donors, err := userSummaries(ids)
	if err != nil {
		return nil, err
	}

	enriched := make([]EnrichedDonation, 0, len(donations))
	for _, d := range donations {
		e := EnrichedDonation{Donation: d}
		if donor, ok := donors[d.DonorID]; ok {
			e.Donor = &donor
		}
		enriched = append(enriched, e)
	}
	return enriched, nil
}

// ListDonations returns the role-scoped donation list: donors see their own
// listings, NGOs see everything still available. Newest first.
func ListDonations(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	query := config.DB.Order("created_at desc, id desc")
	if role == models.RoleDonor {
		query = query.Where("donor_id = ?", userID)
	} else {
		query = query.Where("status = ?", models.StatusAvailable)
	}

	var donations []models.Donation
	if err := query.Find(&donations).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donations"})
		return
	}

	enriched, err := enrichWithDonors(donations)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load donor info"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(enriched), "donations": enriched})
}

// GetDonationDetail returns a single donation with donor and claimant
// summaries plus its status history. Any authenticated user may view any
// donation's detail.
func GetDonationDetail(c *gin.Context) {
	donationID := c.Param("id")

	var donation models.Donation
	if err := config.DB.First(&donation, donationID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Donation not found"})
		return
	}

	ids := []uint{donation.DonorID}
	if donation.ClaimedByID != nil {
		ids = append(ids, *donation.ClaimedByID)
	}
	summaries, err := userSummaries(ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load user info"})
		return
	}

	enriched := EnrichedDonation{Donation: donation}
	if donor, ok := summaries[donation.DonorID]; ok {
		enriched.Donor = &donor
	}
	if donation.ClaimedByID != nil {
		if claimant, ok := summaries[*donation.ClaimedByID]; ok {
			enriched.ClaimedBy = &claimant
		}
	}

	var history []models.DonationStatusHistory
	config.DB.Where("donation_id = ?", donation.ID).Order("created_at asc, id asc").Find(&history)

	c.JSON(http.StatusOK, gin.H{
		"donation":       enriched,
		"status_history": history,
	})
}
