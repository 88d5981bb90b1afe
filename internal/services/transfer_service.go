package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"scbank/internal/catalog"
	"scbank/internal/core"
	"scbank/internal/session"
)

var validate = validator.New()

// ValidationError is one field-level problem with a request payload.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

// ValidatePayload runs struct-tag validation and flattens the result.
func ValidatePayload(obj any) []ValidationError {
	var validationErrors []ValidationError

	err := validate.Struct(obj)
	if err == nil {
		return nil
	}

	for _, err := range err.(validator.ValidationErrors) {
		validationErrors = append(validationErrors, ValidationError{
			Field:   err.Field(),
			Message: getErrorMsg(err),
			Type:    err.Tag(),
		})
	}

	return validationErrors
}

func getErrorMsg(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "This field is required"
	case "min":
		return "Value is too short"
	case "max":
		return "Value is too long"
	case "gt":
		return "Value must be greater than " + err.Param()
	default:
		return "Invalid value"
	}
}

// TransferRequest is a money movement to a saved contact. Amounts are USD
// cents, always positive.
type TransferRequest struct {
	SessionID   string `validate:"required"`
	FromAccount string `validate:"required"`
	ContactName string `validate:"required,min=2"`
	AmountCents int64  `validate:"required,gt=0"`
	Note        string `validate:"max=140"`
}

// DonationRequest is a charity donation; it produces a receipt the same way
// a transfer does.
type DonationRequest struct {
	SessionID   string `validate:"required"`
	CharityName string `validate:"required,min=2"`
	AmountCents int64  `validate:"required,gt=0"`
}

// TransferService validates simulated money movements against the fixture
// catalog and turns each one into a session receipt. No balance ever
// changes; the fixtures are immutable.
type TransferService struct {
	catalog *catalog.Catalog
	audit   *AuditService
	clock   session.Clock
}

func NewTransferService(cat *catalog.Catalog, audit *AuditService, clock session.Clock) *TransferService {
	if clock == nil {
		clock = session.SystemClock()
	}
	return &TransferService{catalog: cat, audit: audit, clock: clock}
}

// Transfer validates the request, synthesizes the receipt and stores it on
// the session. The returned receipt is what the success screen shows.
func (s *TransferService) Transfer(ctx context.Context, m *session.Machine, req TransferRequest) (core.Receipt, error) {
	if errs := ValidatePayload(req); errs != nil {
		return core.Receipt{}, fmt.Errorf("invalid transfer: %s (%s)", errs[0].Message, errs[0].Field)
	}
	if _, err := s.catalog.AccountByID(req.FromAccount); err != nil {
		return core.Receipt{}, err
	}
	contact, err := s.catalog.ContactByName(req.ContactName)
	if err != nil {
		return core.Receipt{}, err
	}

	receipt := s.newReceipt("Transfer to "+contact.Name, "Transfers", req.AmountCents)
	if err := m.AddReceipt(receipt); err != nil {
		return core.Receipt{}, fmt.Errorf("store receipt: %w", err)
	}

	if err := s.audit.Record(ctx, req.SessionID, AuditTransferSent,
		fmt.Sprintf("to=%s amount_cents=%d", contact.Name, req.AmountCents)); err != nil {
		slog.ErrorContext(ctx, "Failed to record transfer audit event", "error", err)
	}

	slog.InfoContext(ctx, "Transfer completed",
		"receipt_id", receipt.ID,
		"contact", contact.Name,
		"amount_cents", req.AmountCents)
	return receipt, nil
}

// Donate records a charity donation as a receipt.
func (s *TransferService) Donate(ctx context.Context, m *session.Machine, req DonationRequest) (core.Receipt, error) {
	if errs := ValidatePayload(req); errs != nil {
		return core.Receipt{}, fmt.Errorf("invalid donation: %s (%s)", errs[0].Message, errs[0].Field)
	}

	receipt := s.newReceipt("Donation to "+req.CharityName, "Charity", req.AmountCents)
	if err := m.AddReceipt(receipt); err != nil {
		return core.Receipt{}, fmt.Errorf("store receipt: %w", err)
	}

	if err := s.audit.Record(ctx, req.SessionID, AuditTransferSent,
		fmt.Sprintf("charity=%s amount_cents=%d", req.CharityName, req.AmountCents)); err != nil {
		slog.ErrorContext(ctx, "Failed to record donation audit event", "error", err)
	}
	return receipt, nil
}

// Convert translates a USD cent amount into another supported currency
// using the fixture rates.
func (s *TransferService) Convert(amountCents int64, toCurrency string) (float64, error) {
	rate, err := s.catalog.Rate(toCurrency)
	if err != nil {
		return 0, err
	}
	return float64(amountCents) / 100.0 * rate, nil
}

func (s *TransferService) newReceipt(vendor, category string, amountCents int64) core.Receipt {
	return core.Receipt{
		ID:       "rcpt-" + uuid.NewString(),
		Vendor:   vendor,
		Date:     s.clock.Now(),
		Total:    core.Money{Cents: amountCents},
		Category: category,
		Items: []core.ReceiptItem{
			{Name: vendor, Quantity: 1, Price: core.Money{Cents: amountCents}},
		},
	}
}
