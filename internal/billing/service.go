package billing

import (
	"context"
	"time"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preapproval"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barber-platform/internal/httperr"
	"github.com/BruksfildServices01/barber-platform/internal/models"
)

// Plan is a subscription offering charged through Mercado Pago
// preapprovals.
type Plan struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
	Frequency int     `json:"frequency"`
	// months or days, per the preapproval API.
	FrequencyType string `json:"frequency_type"`
}

var Plans = map[string]Plan{
	"pro-monthly": {
		ID:            "pro-monthly",
		Name:          "Pro (monthly)",
		Amount:        99.90,
		Frequency:     1,
		FrequencyType: "months",
	},
	"pro-yearly": {
		ID:            "pro-yearly",
		Name:          "Pro (yearly)",
		Amount:        999.00,
		Frequency:     12,
		FrequencyType: "months",
	},
}

const (
	StatusPendingApproval = "pending_approval"
	StatusActive          = "active"
	StatusCancelled       = "cancelled"
	StatusExpired         = "expired"
)

type Service struct {
	db     *gorm.DB
	client preapproval.Client
	log    *zap.Logger
}

func NewService(db *gorm.DB, accessToken string, log *zap.Logger) (*Service, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, err
	}
	return &Service{
		db:     db,
		client: preapproval.NewClient(cfg),
		log:    log,
	}, nil
}

// SubscribeResult carries the checkout link the shop owner must visit
// to approve the recurring charge.
type SubscribeResult struct {
	Plan     Plan   `json:"plan"`
	Status   string `json:"status"`
	Checkout string `json:"checkout_url"`
}

// Subscribe opens a preapproval for the shop and stores its id. The
// subscription stays pending until the gateway reports approval.
func (s *Service) Subscribe(ctx context.Context, shop *models.Barbershop, planID, payerEmail, backURL string) (*SubscribeResult, error) {
	plan, ok := Plans[planID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeValidation, "unknown subscription plan")
	}

	req := preapproval.Request{
		Reason:            plan.Name,
		ExternalReference: shop.ID,
		PayerEmail:        payerEmail,
		BackURL:           backURL,
		AutoRecurring: &preapproval.AutoRecurringRequest{
			Frequency:         plan.Frequency,
			FrequencyType:     plan.FrequencyType,
			TransactionAmount: plan.Amount,
			CurrencyID:        "BRL",
		},
	}

	resource, err := s.client.Create(ctx, req)
	if err != nil {
		s.log.Error("preapproval create failed",
			zap.String("tenant_id", shop.ID),
			zap.Error(err),
		)
		return nil, httperr.ErrBusiness(httperr.CodePersistence, "failed to open subscription")
	}

	shop.SubscriptionPlan = plan.ID
	shop.SubscriptionStatus = StatusPendingApproval
	shop.PreapprovalID = resource.ID
	if err := s.db.WithContext(ctx).Save(shop).Error; err != nil {
		return nil, err
	}

	return &SubscribeResult{
		Plan:     plan,
		Status:   shop.SubscriptionStatus,
		Checkout: resource.InitPoint,
	}, nil
}

// Refresh pulls the preapproval state from the gateway and applies it
// to the shop record. Approved preapprovals open a billing period
// matching the plan frequency.
func (s *Service) Refresh(ctx context.Context, shop *models.Barbershop) error {
	if shop.PreapprovalID == "" {
		return httperr.ErrBusiness(httperr.CodeInvalidState, "barbershop has no subscription")
	}

	resource, err := s.client.Get(ctx, shop.PreapprovalID)
	if err != nil {
		return httperr.ErrBusiness(httperr.CodePersistence, "failed to query subscription")
	}

	switch resource.Status {
	case "authorized":
		now := time.Now()
		plan := Plans[shop.SubscriptionPlan]
		end := now.AddDate(0, plan.Frequency, 0)

		shop.SubscriptionStatus = StatusActive
		shop.CurrentPeriodStart = &now
		shop.CurrentPeriodEnd = &end
	case "cancelled":
		shop.SubscriptionStatus = StatusCancelled
	case "paused":
		shop.SubscriptionStatus = StatusExpired
	}

	return s.db.WithContext(ctx).Save(shop).Error
}

// Cancel stops the recurring charge at the gateway and locally.
func (s *Service) Cancel(ctx context.Context, shop *models.Barbershop) error {
	if shop.PreapprovalID == "" {
		return httperr.ErrBusiness(httperr.CodeInvalidState, "barbershop has no subscription")
	}

	_, err := s.client.Update(ctx, shop.PreapprovalID, preapproval.UpdateRequest{
		Status: "cancelled",
	})
	if err != nil {
		return httperr.ErrBusiness(httperr.CodePersistence, "failed to cancel subscription")
	}

	shop.SubscriptionStatus = StatusCancelled
	return s.db.WithContext(ctx).Save(shop).Error
}

// ExpireOverdue flags active subscriptions whose period has lapsed.
// Run from the background scheduler.
func (s *Service) ExpireOverdue(ctx context.Context) error {
	result := s.db.WithContext(ctx).
		Model(&models.Barbershop{}).
		Where("subscription_status = ? AND current_period_end < ?", StatusActive, time.Now()).
		Update("subscription_status", StatusExpired)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected > 0 {
		s.log.Info("expired overdue subscriptions", zap.Int64("count", result.RowsAffected))
	}
	return nil
}
