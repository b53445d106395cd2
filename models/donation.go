package models

import "time"

// DonationStatus represents all possible states of a donation listing
type DonationStatus string

const (
	StatusAvailable DonationStatus = "available"
	StatusClaimed   DonationStatus = "claimed"
	StatusCompleted DonationStatus = "completed"
)

type Donation struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	DonorID       uint           `json:"donor_id" gorm:"not null;index"`
	FoodName      string         `json:"food_name" gorm:"not null"`
	Quantity      string         `json:"quantity" gorm:"not null"` // free-text magnitude, e.g. "5 kg"
	Description   string         `json:"description" gorm:"not null"`
	ExpiryDate    time.Time      `json:"expiry_date" gorm:"not null"`
	PickupAddress string         `json:"pickup_address" gorm:"not null"`
	PickupTime    string         `json:"pickup_time" gorm:"not null"` // free-text, e.g. "after 6pm"
	Status        DonationStatus `json:"status" gorm:"not null;default:'available';index"`
	ClaimedByID   *uint          `json:"claimed_by_id,omitempty" gorm:"index"` // set iff status != available
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// DonationStatusHistory tracks every status change — audit trail
type DonationStatusHistory struct {
	ID         uint           `json:"id" gorm:"primaryKey"`
	DonationID uint           `json:"donation_id" gorm:"not null;index"`
	FromStatus DonationStatus `json:"from_status"`
	ToStatus   DonationStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint           `json:"changed_by"` // user ID who triggered the transition
	Note       string         `json:"note"`
	CreatedAt  time.Time      `json:"created_at"`
}
