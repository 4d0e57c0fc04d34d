package domain

import "errors"

var (
	MessageSuccessCreatePayment = "payment created successfully"
	MessageSuccessNotification  = "notification processed"

	MessageFailedCreatePayment = "failed to create payment"
	MessageFailedNotification  = "failed to process notification"

	ErrPaymentFailed          = errors.New("payment processing failed")
	ErrTransactionNotFound    = errors.New("membership transaction not found")
	ErrAlreadyPremium         = errors.New("user already has premium membership")
	ErrNotificationIncomplete = errors.New("notification payload incomplete")
)

// Price of the premium membership, in IDR.
const PremiumMembershipPrice int64 = 49000

type (
	CreateMembershipPaymentRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	CreateMembershipPaymentResponse struct {
		OrderID    string `json:"order_id"`
		InvoiceURL string `json:"invoice_url"`
	}

	MidtransNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		PaymentType       string `json:"payment_type"`
	}
)
