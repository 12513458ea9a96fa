package model

import "time"

type DonationStatus string

const (
	DonationPending   DonationStatus = "pending"
	DonationCompleted DonationStatus = "completed"
	DonationFailed    DonationStatus = "failed"
	DonationCancelled DonationStatus = "cancelled"
)

// Terminal reports whether no further transition is permitted.
func (s DonationStatus) Terminal() bool {
	switch s {
	case DonationCompleted, DonationFailed, DonationCancelled:
		return true
	}
	return false
}

type Donation struct {
	// ID is also the merchant reference sent to Pesapal and echoed back on
	// the payment callback.
	ID         string         `gorm:"primaryKey;size:64;not null" json:"id"`
	DonorName  string         `gorm:"size:128;not null" json:"donor_name"`
	DonorEmail string         `gorm:"size:128;index;not null" json:"donor_email"`
	DonorPhone string         `gorm:"size:32" json:"donor_phone,omitempty"`
	Message    string         `gorm:"size:512" json:"message,omitempty"`
	Amount     int64          `gorm:"not null" json:"amount"` // minor units
	Currency   string         `gorm:"size:8;not null" json:"currency"`
	Status     DonationStatus `gorm:"size:32;index;not null" json:"status"`
	TrackingID string         `gorm:"size:64;index" json:"tracking_id,omitempty"` // pesapal order tracking id
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type PrayerStatus string

const (
	PrayerPending PrayerStatus = "pending"
	PrayerPrayed  PrayerStatus = "prayed"
)

type PrayerRequest struct {
	ID          string       `gorm:"primaryKey;size:64;not null" json:"id"`
	Name        string       `gorm:"size:128;not null" json:"name"`
	Email       string       `gorm:"size:128;not null" json:"email"`
	Phone       string       `gorm:"size:32" json:"phone,omitempty"`
	Request     string       `gorm:"type:text;not null" json:"request"`
	IsAnonymous bool         `gorm:"not null" json:"is_anonymous"`
	Status      PrayerStatus `gorm:"size:16;index;not null" json:"status"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type GalleryItem struct {
	ID          string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Title       string    `gorm:"size:256;not null" json:"title"`
	Description string    `gorm:"size:512" json:"description,omitempty"`
	ImageURL    string    `gorm:"size:512;not null" json:"image_url"`
	Category    string    `gorm:"size:64;index" json:"category"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Devotion struct {
	ID        string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Title     string    `gorm:"size:256;not null" json:"title"`
	Scripture string    `gorm:"size:256;not null" json:"scripture"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	Author    string    `gorm:"size:128;not null" json:"author"`
	CreatedAt time.Time `json:"created_at"`
}

type ResourceType string

const (
	ResourceVideo ResourceType = "video"
	ResourceAudio ResourceType = "audio"
)

type Resource struct {
	ID        string       `gorm:"primaryKey;size:64;not null" json:"id"`
	Title     string       `gorm:"size:256;not null" json:"title"`
	Type      ResourceType `gorm:"size:16;index;not null" json:"type"`
	URL       string       `gorm:"size:512;not null" json:"url"`
	Category  string       `gorm:"size:64;index" json:"category"`
	CreatedAt time.Time    `json:"created_at"`
}

type Admin struct {
	ID           string    `gorm:"primaryKey;size:64;not null" json:"id"`
	Email        string    `gorm:"size:128;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:128;not null" json:"-"`
	Name         string    `gorm:"size:128" json:"name"`
	Role         string    `gorm:"size:32;not null" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
