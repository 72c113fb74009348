package models

// GatewayCardDetails represents the card fields collected by the pay page.
type GatewayCardDetails struct {
	CardNumber  string `json:"cardNumber" binding:"required"`
	CardHolder  string `json:"cardHolder"`
	ExpiryMonth string `json:"expiryMonth" binding:"required"`
	ExpiryYear  string `json:"expiryYear" binding:"required"`
	CVV         string `json:"cvv" binding:"required"`
}

// GatewayWalletDetails represents a digital wallet payment source
// (STC Pay, Alipay, Tamara).
type GatewayWalletDetails struct {
	PhoneNumber string `json:"phoneNumber"`
	WalletID    string `json:"walletId"`
}

type GatewayPaymentRequest struct {
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
	OrderID       string  `json:"orderId"`
	CustomerEmail string  `json:"customerEmail,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	CallbackURL   string  `json:"callbackUrl,omitempty"`
	ReturnURL     string  `json:"returnUrl,omitempty"`
}

type GatewayPaymentResponse struct {
	Success         bool    `json:"success"`
	TransactionID   string  `json:"transactionId"`
	OrderID         string  `json:"orderId"`
	PaymentIntentID string  `json:"paymentIntentId"`
	ResponseCode    string  `json:"responseCode"`
	ResponseMessage string  `json:"responseMessage"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Status          string  `json:"status"`
	Timestamp       string  `json:"timestamp"`
}

// ProcessPaymentRequest is what the pay page posts to charge one split.
type ProcessPaymentRequest struct {
	PaymentID     string                `json:"paymentId"`
	OrderID       string                `json:"orderId"`
	Amount        float64               `json:"amount" binding:"required,gt=0"`
	Currency      string                `json:"currency"`
	PaymentMethod string                `json:"paymentMethod"`
	TransactionID string                `json:"transactionId"`
	Card          *GatewayCardDetails   `json:"cardDetails,omitempty"`
	Wallet        *GatewayWalletDetails `json:"walletDetails,omitempty"`
	WalletType    string                `json:"walletType,omitempty"`
}

type CardValidationRequest struct {
	Card *GatewayCardDetails `json:"card" binding:"required"`
}

type CardValidationResponse struct {
	Valid   bool   `json:"valid"`
	Message string `json:"message,omitempty"`
	Last4   string `json:"last4,omitempty"`
}
