package model

type PesapalError struct {
	Type        string `json:"type"`
	Code        string `json:"code"`
	Message     string `json:"message"`
	Description string `json:"description"`
}

type PesapalAuthRequest struct {
	ConsumerKey    string `json:"consumer_key"`
	ConsumerSecret string `json:"consumer_secret"`
}

type PesapalAuthResponse struct {
	Token      string        `json:"token"`
	ExpiryDate string        `json:"expiryDate"`
	Error      *PesapalError `json:"error"`
}

type BillingAddress struct {
	EmailAddress string `json:"email_address"`
	PhoneNumber  string `json:"phone_number,omitempty"`
	CountryCode  string `json:"country_code"`
	FirstName    string `json:"first_name"`
	MiddleName   string `json:"middle_name,omitempty"`
	LastName     string `json:"last_name"`
	Line1        string `json:"line_1,omitempty"`
	Line2        string `json:"line_2,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	PostalCode   string `json:"postal_code,omitempty"`
	ZipCode      string `json:"zip_code,omitempty"`
}

type SubmitOrderRequest struct {
	ID             string         `json:"id"`
	Currency       string         `json:"currency"`
	Amount         int64          `json:"amount"`
	Description    string         `json:"description"`
	CallbackURL    string         `json:"callback_url"`
	NotificationID string         `json:"notification_id"`
	BillingAddress BillingAddress `json:"billing_address"`
}

type SubmitOrderResponse struct {
	OrderTrackingID   string        `json:"order_tracking_id"`
	MerchantReference string        `json:"merchant_reference"`
	RedirectURL       string        `json:"redirect_url"`
	Error             *PesapalError `json:"error"`
}

type TransactionStatus struct {
	PaymentMethod            string        `json:"payment_method"`
	Amount                   float64       `json:"amount"`
	CreatedDate              string        `json:"created_date"`
	ConfirmationCode         string        `json:"confirmation_code"`
	PaymentStatusDescription string        `json:"payment_status_description"`
	Description              string        `json:"description"`
	PaymentAccount           string        `json:"payment_account"`
	MerchantReference        string        `json:"merchant_reference"`
	Currency                 string        `json:"currency"`
	Error                    *PesapalError `json:"error"`
}
