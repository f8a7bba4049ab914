package printing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pms/backend/internal/domain/billing"
	"github.com/pms/backend/internal/domain/property"
	"github.com/pms/backend/internal/domain/shared"
	"github.com/pms/backend/internal/domain/tenancy"
	"github.com/pms/backend/internal/infrastructure/printing"
)

// DocumentResult is a rendered PDF ready to stream to the caller
type DocumentResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// DocumentService assembles printable documents from aggregate state and
// renders them to PDF. Rendering is only available when a renderer has
// been configured.
type DocumentService struct {
	receiptRepo  billing.ReceiptRepository
	contractRepo tenancy.ContractRepository
	customerRepo tenancy.CustomerRepository
	unitRepo     property.UnitRepository
	propertyRepo property.PropertyRepository
	renderer     printing.PDFRenderer
	logger       *zap.Logger
}

// NewDocumentService creates a new document service. The renderer may be
// nil when PDF printing is disabled.
func NewDocumentService(
	receiptRepo billing.ReceiptRepository,
	contractRepo tenancy.ContractRepository,
	customerRepo tenancy.CustomerRepository,
	unitRepo property.UnitRepository,
	propertyRepo property.PropertyRepository,
	renderer printing.PDFRenderer,
	logger *zap.Logger,
) *DocumentService {
	return &DocumentService{
		receiptRepo:  receiptRepo,
		contractRepo: contractRepo,
		customerRepo: customerRepo,
		unitRepo:     unitRepo,
		propertyRepo: propertyRepo,
		renderer:     renderer,
		logger:       logger,
	}
}

// RenderReceiptPDF renders a receipt to PDF
func (s *DocumentService) RenderReceiptPDF(ctx context.Context, receiptID uuid.UUID) (*DocumentResult, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("PRINTING_DISABLED", "PDF printing is not configured")
	}

	doc, err := s.BuildReceiptDocument(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	html, err := printing.RenderReceiptHTML(doc)
	if err != nil {
		s.logger.Error("Failed to render receipt template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to render receipt")
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  html,
		Title: doc.ReceiptNumber,
	})
	if err != nil {
		s.logger.Error("Failed to render receipt PDF",
			zap.String("receipt_id", receiptID.String()), zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render receipt PDF")
	}

	s.logger.Info("Receipt PDF rendered",
		zap.String("receipt_number", doc.ReceiptNumber),
		zap.Duration("render_duration", result.RenderDuration))

	return &DocumentResult{
		FileName:    fmt.Sprintf("%s.pdf", doc.ReceiptNumber),
		ContentType: "application/pdf",
		Data:        result.PDFData,
	}, nil
}

// RenderContractPDF renders a rental agreement to PDF
func (s *DocumentService) RenderContractPDF(ctx context.Context, contractID uuid.UUID) (*DocumentResult, error) {
	if s.renderer == nil {
		return nil, shared.NewDomainError("PRINTING_DISABLED", "PDF printing is not configured")
	}

	doc, err := s.BuildContractDocument(ctx, contractID)
	if err != nil {
		return nil, err
	}

	html, err := printing.RenderContractHTML(doc)
	if err != nil {
		s.logger.Error("Failed to render contract template", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to render contract")
	}

	result, err := s.renderer.Render(ctx, &printing.RenderRequest{
		HTML:  html,
		Title: doc.ContractNumber,
	})
	if err != nil {
		s.logger.Error("Failed to render contract PDF",
			zap.String("contract_id", contractID.String()), zap.Error(err))
		return nil, shared.NewDomainError("RENDER_FAILED", "Failed to render contract PDF")
	}

	return &DocumentResult{
		FileName:    fmt.Sprintf("%s.pdf", doc.ContractNumber),
		ContentType: "application/pdf",
		Data:        result.PDFData,
	}, nil
}

// BuildReceiptDocument assembles the printable view of a receipt
func (s *DocumentService) BuildReceiptDocument(ctx context.Context, receiptID uuid.UUID) (*printing.ReceiptDocument, error) {
	receipt, err := s.receiptRepo.FindByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}

	contract, err := s.contractRepo.FindByID(ctx, receipt.ContractID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, contract.CustomerID)
	if err != nil {
		return nil, err
	}

	unitNumber, _, propertyName := s.premisesContext(ctx, contract.UnitID)

	lines := receipt.Lines()
	lineData := make([]printing.ReceiptLineData, 0, len(lines))
	for _, line := range lines {
		lineData = append(lineData, printing.ReceiptLineData{
			Label:  line.Label,
			Amount: line.Amount.StringFixed(2),
		})
	}

	hasReadings := receipt.Charges.CurrentWaterReading.IsPositive()

	return &printing.ReceiptDocument{
		ReceiptNumber: receipt.ReceiptNumber,
		Period:        periodLabel(receipt.Period),
		IssuedDate:    receipt.IssuedAt.Format("02 Jan 2006"),
		Status:        string(receipt.Status),

		PropertyName: propertyName,
		UnitNumber:   unitNumber,
		TenantName:   customer.FullName(),
		TenantPhone:  customer.PhoneNumber,

		Lines:      lineData,
		Total:      receipt.Total.StringFixed(2),
		AmountPaid: receipt.AmountPaid.StringFixed(2),
		Balance:    receipt.Balance().StringFixed(2),
		Currency:   string(receipt.Total.Currency()),

		PreviousWaterReading: receipt.Charges.PreviousWaterReading.String(),
		CurrentWaterReading:  receipt.Charges.CurrentWaterReading.String(),
		ShowWaterReadings:    hasReadings,

		Notes: receipt.Notes,
	}, nil
}

// BuildContractDocument assembles the printable view of a rental agreement
func (s *DocumentService) BuildContractDocument(ctx context.Context, contractID uuid.UUID) (*printing.ContractDocument, error) {
	contract, err := s.contractRepo.FindByID(ctx, contractID)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, contract.CustomerID)
	if err != nil {
		return nil, err
	}

	unitNumber, unitType, propertyName := s.premisesContext(ctx, contract.UnitID)

	return &printing.ContractDocument{
		ContractNumber: contractNumber(contract.ID),
		PropertyName:   propertyName,
		UnitNumber:     unitNumber,
		UnitType:       unitType,

		TenantName:     customer.FullName(),
		TenantPhone:    customer.PhoneNumber,
		TenantIDNumber: customer.IDNumber,

		StartDate:  contract.StartDate.Format("02 Jan 2006"),
		EndDate:    contract.EndDate.Format("02 Jan 2006"),
		Duration:   billing.ContractDuration(contract.StartDate, contract.EndDate).Format(),
		BillingDay: contract.BillingDay,

		RentAmount: contract.RentAmount.StringFixed(2),
		Deposit:    contract.Deposit.StringFixed(2),
		Currency:   string(contract.RentAmount.Currency()),

		Notes:     contract.Notes,
		PrintedAt: time.Now().Format("02 Jan 2006 15:04"),
	}, nil
}

// premisesContext loads unit and property labels best-effort; a missing
// unit or property leaves the fields blank rather than failing the print
func (s *DocumentService) premisesContext(ctx context.Context, unitID uuid.UUID) (unitNumber, unitType, propertyName string) {
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		s.logger.Warn("Failed to load unit for document",
			zap.String("unit_id", unitID.String()), zap.Error(err))
		return "", "", ""
	}
	unitNumber = unit.UnitNumber
	unitType = unitTypeLabel(unit.UnitType)

	prop, err := s.propertyRepo.FindByID(ctx, unit.PropertyID)
	if err != nil {
		s.logger.Warn("Failed to load property for document",
			zap.String("property_id", unit.PropertyID.String()), zap.Error(err))
		return unitNumber, unitType, ""
	}
	return unitNumber, unitType, prop.Name
}

// contractNumber derives a short printable reference from the contract ID
func contractNumber(id uuid.UUID) string {
	return "CTR-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:8])
}

// periodLabel renders a billing period as "July 2023"
func periodLabel(p billing.BillingPeriod) string {
	return fmt.Sprintf("%s %d", time.Month(p.Month).String(), p.Year)
}

// unitTypeLabel renders a unit type for print, e.g. "One Bedroom"
func unitTypeLabel(t property.UnitType) string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
