package membership

import (
	"context"
	"errors"
	"fmt"

	"recipehub/domain"
	"recipehub/entities"
	"recipehub/internal/utils"
	"recipehub/pkg/user"

	"github.com/google/uuid"
	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"gorm.io/gorm"
)

type (
	MembershipService interface {
		CreatePayment(ctx context.Context, req domain.CreateMembershipPaymentRequest, userID string) (*domain.CreateMembershipPaymentResponse, error)
		HandleNotification(ctx context.Context, payload domain.MidtransNotification) error
	}

	membershipService struct {
		membershipRepository MembershipRepository
		userRepository       user.UserRepository
		snapClient           snap.Client
	}
)

func NewMembershipService(membershipRepository MembershipRepository, userRepository user.UserRepository) MembershipService {
	environment := midtrans.Sandbox
	if utils.GetConfig("IsProd") == "true" {
		environment = midtrans.Production
	}

	var client snap.Client
	client.New(utils.GetConfig("SERVER_KEY"), environment)

	return &membershipService{
		membershipRepository: membershipRepository,
		userRepository:       userRepository,
		snapClient:           client,
	}
}

func (s *membershipService) CreatePayment(ctx context.Context, req domain.CreateMembershipPaymentRequest, userID string) (*domain.CreateMembershipPaymentResponse, error) {
	account, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	if account.IsPremium {
		return nil, domain.ErrAlreadyPremium
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	orderID := fmt.Sprintf("membership-%s", uuid.New().String())
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  orderID,
			GrossAmt: domain.PremiumMembershipPrice,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			Email: req.Email,
		},
	}

	snapResp, snapErr := s.snapClient.CreateTransaction(snapReq)
	if snapErr != nil {
		return nil, domain.ErrPaymentFailed
	}

	transaction := &entities.MembershipTransaction{
		ID:      uuid.New(),
		UserID:  userUUID,
		OrderID: orderID,
		Amount:  domain.PremiumMembershipPrice,
		Status:  "Pending",
	}
	if err := s.membershipRepository.CreateTransaction(ctx, transaction); err != nil {
		return nil, err
	}

	return &domain.CreateMembershipPaymentResponse{
		OrderID:    orderID,
		InvoiceURL: snapResp.RedirectURL,
	}, nil
}

// HandleNotification applies a Midtrans webhook callback: a settled payment
// flips the user's premium flag, anything terminal marks the transaction.
func (s *membershipService) HandleNotification(ctx context.Context, payload domain.MidtransNotification) error {
	if payload.OrderID == "" || payload.TransactionStatus == "" {
		return domain.ErrNotificationIncomplete
	}

	transaction, err := s.membershipRepository.GetTransactionByOrderID(ctx, payload.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		return err
	}

	transaction.PaymentType = payload.PaymentType

	switch payload.TransactionStatus {
	case "settlement":
		transaction.Status = "Settlement"
	case "capture":
		if payload.FraudStatus == "accept" {
			transaction.Status = "Settlement"
		}
	case "expire":
		transaction.Status = "Expired"
	case "cancel", "deny":
		transaction.Status = "Cancelled"
	}

	if err := s.membershipRepository.UpdateTransaction(ctx, transaction); err != nil {
		return err
	}

	if transaction.Status != "Settlement" {
		return nil
	}

	account, err := s.userRepository.GetUserByID(ctx, transaction.UserID.String())
	if err != nil {
		return err
	}
	account.IsPremium = true
	return s.userRepository.UpdateUser(ctx, account)
}
