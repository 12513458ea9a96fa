package dto

import "church-site-backend/internal/model"

type DonateRequest struct {
	DonorName string `json:"donor_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Amount    int64  `json:"amount"`
	Message   string `json:"message"`
}

type DonateResponse struct {
	DonationID      string `json:"donation_id"`
	OrderTrackingID string `json:"order_tracking_id"`
	RedirectURL     string `json:"redirect_url"`
}

// CallbackResult is what the payment callback page renders from.
type CallbackResult struct {
	// Status is the UI state: success, failed, cancelled or pending.
	Status   string          `json:"status"`
	Donation *model.Donation `json:"donation,omitempty"`
}

type PrayerRequestCreate struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Request     string `json:"request"`
	IsAnonymous bool   `json:"is_anonymous"`
}

type PrayerStatusUpdate struct {
	Status string `json:"status"`
}

type DevotionCreate struct {
	Title     string `json:"title"`
	Scripture string `json:"scripture"`
	Content   string `json:"content"`
	Author    string `json:"author"`
}

type ResourceCreate struct {
	Title    string `json:"title"`
	Type     string `json:"type"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type GalleryItemCreate struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}
