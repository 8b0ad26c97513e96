package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/nazhanhafiz/psikometrik/internal/dto"
	"github.com/nazhanhafiz/psikometrik/internal/model"
	"github.com/nazhanhafiz/psikometrik/internal/repository"
	"github.com/rs/zerolog/log"
)

// Plan is one purchasable subscription tier.
type Plan struct {
	Code      string
	Name      string
	AmountSen int
	Days      int
}

// plans is the fixed catalogue; amounts are in sen (MYR).
var plans = map[string]Plan{
	"asas":    {Code: "asas", Name: "Pelan Asas (30 hari)", AmountSen: 1900, Days: 30},
	"pro":     {Code: "pro", Name: "Pelan Pro (30 hari)", AmountSen: 3900, Days: 30},
	"tahunan": {Code: "tahunan", Name: "Pelan Tahunan (365 hari)", AmountSen: 19900, Days: 365},
}

// SubscriptionService handles plan checkout through the payment gateway and
// applies paid plans to user accounts.
type SubscriptionService interface {
	Checkout(ctx context.Context, req dto.CheckoutDTO, redirectURL, callbackURL string) (*dto.CheckoutResponseDTO, error)
	HandleRedirect(params map[string]string, signature string) (*dto.TransactionDTO, error)
	ListTransactions() ([]dto.TransactionDTO, error)
	ListUserTransactions(userID uint) ([]dto.TransactionDTO, error)
}

type subscriptionService struct {
	userRepo repository.UserRepository
	txnRepo  repository.TransactionRepository
	billplz  BillplzService
}

func NewSubscriptionService(userRepo repository.UserRepository, txnRepo repository.TransactionRepository, billplz BillplzService) SubscriptionService {
	return &subscriptionService{userRepo: userRepo, txnRepo: txnRepo, billplz: billplz}
}

func (s *subscriptionService) Checkout(ctx context.Context, req dto.CheckoutDTO, redirectURL, callbackURL string) (*dto.CheckoutResponseDTO, error) {
	plan, ok := plans[req.Plan]
	if !ok {
		return nil, fmt.Errorf("unknown plan %q", req.Plan)
	}
	user, err := s.userRepo.FindByID(req.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found with ID %d: %w", req.UserID, err)
	}

	reference := uuid.NewString()
	bill, err := s.billplz.CreateBill(ctx, BillRequest{
		Email:       user.Email,
		Name:        user.Name,
		Description: plan.Name,
		Reference:   reference,
		AmountSen:   plan.AmountSen,
		RedirectURL: redirectURL,
		CallbackURL: callbackURL,
	})
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Str("plan", plan.Code).Msg("Checkout: bill creation failed")
		return nil, fmt.Errorf("failed to create payment bill: %w", err)
	}

	txn := model.Transaction{
		UserID:    user.ID,
		Plan:      plan.Code,
		AmountSen: plan.AmountSen,
		Reference: reference,
		BillID:    bill.ID,
		Status:    model.TransactionPending,
	}
	if err := s.txnRepo.Create(&txn); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}

	return &dto.CheckoutResponseDTO{
		Reference:  reference,
		BillID:     bill.ID,
		PaymentURL: bill.URL,
		AmountSen:  plan.AmountSen,
	}, nil
}

// HandleRedirect processes the browser redirect back from the gateway. The
// signature is verified before any state changes; a failed payment marks the
// transaction failed but never touches the user's plan.
func (s *subscriptionService) HandleRedirect(params map[string]string, signature string) (*dto.TransactionDTO, error) {
	if !s.billplz.VerifyRedirect(params, signature) {
		return nil, fmt.Errorf("invalid payment redirect signature")
	}

	reference := params["billplz[reference_1]"]
	if reference == "" {
		return nil, fmt.Errorf("payment redirect missing reference")
	}
	txn, err := s.txnRepo.FindByReference(reference)
	if err != nil {
		return nil, fmt.Errorf("transaction not found for reference %s: %w", reference, err)
	}

	if txn.Status == model.TransactionPaid {
		// Redirect replays are harmless.
		return transactionToDTO(txn), nil
	}

	if params["billplz[paid]"] == "true" {
		now := time.Now()
		txn.Status = model.TransactionPaid
		txn.PaidAt = &now
		if err := s.txnRepo.Update(txn); err != nil {
			return nil, fmt.Errorf("failed to mark transaction paid: %w", err)
		}
		if err := s.applyPlan(txn.UserID, txn.Plan, now); err != nil {
			log.Error().Err(err).Uint("userID", txn.UserID).Str("plan", txn.Plan).Msg("Payment recorded but plan activation failed")
			return nil, err
		}
		log.Info().Str("reference", reference).Uint("userID", txn.UserID).Str("plan", txn.Plan).Msg("Payment confirmed, plan activated")
	} else {
		txn.Status = model.TransactionFailed
		if err := s.txnRepo.Update(txn); err != nil {
			return nil, fmt.Errorf("failed to mark transaction failed: %w", err)
		}
		log.Warn().Str("reference", reference).Msg("Payment not completed")
	}
	return transactionToDTO(txn), nil
}

// applyPlan extends from the current expiry when it is still in the future,
// so renewing early never costs days.
func (s *subscriptionService) applyPlan(userID uint, planCode string, now time.Time) error {
	plan, ok := plans[planCode]
	if !ok {
		return fmt.Errorf("unknown plan %q on paid transaction", planCode)
	}
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		return fmt.Errorf("user not found with ID %d: %w", userID, err)
	}
	start := now
	if user.PlanExpiresAt != nil && user.PlanExpiresAt.After(now) {
		start = *user.PlanExpiresAt
	}
	expiry := start.AddDate(0, 0, plan.Days)
	user.Plan = plan.Code
	user.PlanExpiresAt = &expiry
	return s.userRepo.Update(user)
}

func (s *subscriptionService) ListTransactions() ([]dto.TransactionDTO, error) {
	txns, err := s.txnRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions: %w", err)
	}
	return transactionsToDTOs(txns), nil
}

func (s *subscriptionService) ListUserTransactions(userID uint) ([]dto.TransactionDTO, error) {
	txns, err := s.txnRepo.FindAllByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("error fetching transactions for user %d: %w", userID, err)
	}
	return transactionsToDTOs(txns), nil
}

func transactionToDTO(txn *model.Transaction) *dto.TransactionDTO {
	var out dto.TransactionDTO
	if err := copier.Copy(&out, txn); err != nil {
		log.Error().Err(err).Uint("transactionID", txn.ID).Msg("Failed to copy transaction to DTO")
	}
	return &out
}

func transactionsToDTOs(txns []model.Transaction) []dto.TransactionDTO {
	var dtos []dto.TransactionDTO
	for i := range txns {
		dtos = append(dtos, *transactionToDTO(&txns[i]))
	}
	return dtos
}
