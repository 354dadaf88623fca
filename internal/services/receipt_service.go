package services

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"estoque_backend/internal/models"
	"estoque_backend/internal/repositories"
	"estoque_backend/pkg/utils"
)

// --- DTOs ---

// RecordReceiptRequest registers one delivery against an open quote line.
type RecordReceiptRequest struct {
	QuoteLineID  int64 `json:"quote_line_id" binding:"required"`
	DeliveredQty int   `json:"delivered_qty" binding:"required"`
}

// ReceiptResult reports the state of the quote line after the delivery.
type ReceiptResult struct {
	ReceiptLine    models.ReceiptLine `json:"receipt_line"`
	QuoteStatus    string             `json:"quote_status"`
	DeliveredTotal int                `json:"delivered_total"`
	OutstandingQty int                `json:"outstanding_qty"`
	NewStockLevel  int                `json:"new_stock_level"`
}

// --- ReceiptService Interface ---
type ReceiptService interface {
	RecordReceipt(req RecordReceiptRequest) (*ReceiptResult, error)
	GetReceiptLines(quoteNumber *string, productID *int64, page, pageSize int) ([]models.ReceiptLine, int, error)
}

type receiptService struct {
	receiptRepo repositories.ReceiptRepository
	quoteRepo   repositories.QuoteRepository
	productRepo repositories.ProductRepository
	db          *sql.DB
}

// NewReceiptService creates a new instance of ReceiptService.
func NewReceiptService(rr repositories.ReceiptRepository, qr repositories.QuoteRepository, pr repositories.ProductRepository, db *sql.DB) ReceiptService {
	return &receiptService{receiptRepo: rr, quoteRepo: qr, productRepo: pr, db: db}
}

// quoteStatusFor derives the line status from the cumulative delivered total.
func quoteStatusFor(deliveredTotal, orderedQty int) string {
	switch {
	case deliveredTotal <= 0:
		return models.QuoteStatusPending
	case deliveredTotal < orderedQty:
		return models.QuoteStatusPartial
	default:
		return models.QuoteStatusComplete
	}
}

// RecordReceipt applies a delivery atomically: the receipt line, the stock
// increment and the quote-line status all land in one transaction or not at
// all. Over-delivery is rejected before anything is written.
func (s *receiptService) RecordReceipt(req RecordReceiptRequest) (*ReceiptResult, error) {
	if req.DeliveredQty <= 0 {
		return nil, fmt.Errorf("%w: delivered quantity must be positive", ErrValidation)
	}

	quoteLine, err := s.quoteRepo.GetQuoteLineByID(req.QuoteLineID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, fmt.Errorf("%w: quote line %d", ErrNotFound, req.QuoteLineID)
		}
		return nil, fmt.Errorf("failed to load quote line %d: %w", req.QuoteLineID, err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to start database transaction: %w", err)
	}
	defer tx.Rollback()

	deliveredBefore, err := s.receiptRepo.GetDeliveredTotal(tx, quoteLine.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to sum deliveries for quote line %d: %w", quoteLine.ID, err)
	}
	outstanding := quoteLine.Quantity - deliveredBefore
	if outstanding <= 0 {
		return nil, fmt.Errorf("%w: quote line %d is already fully delivered", ErrConflict, quoteLine.ID)
	}
	if req.DeliveredQty > outstanding {
		return nil, fmt.Errorf("%w: delivered quantity %d exceeds outstanding %d on quote line %d",
			ErrValidation, req.DeliveredQty, outstanding, quoteLine.ID)
	}

	deliveredTotal := deliveredBefore + req.DeliveredQty
	newStatus := quoteStatusFor(deliveredTotal, quoteLine.Quantity)

	receiptLine := models.ReceiptLine{
		QuoteLineID:  quoteLine.ID,
		QuoteNumber:  quoteLine.QuoteNumber,
		ProductID:    quoteLine.ProductID,
		ProductName:  quoteLine.ProductName,
		OrderedQty:   quoteLine.Quantity,
		DeliveredQty: req.DeliveredQty,
		Status:       newStatus,
		ReceivedAt:   time.Now(),
	}
	if _, err := s.receiptRepo.CreateReceiptLine(tx, &receiptLine); err != nil {
		return nil, fmt.Errorf("failed to create receipt line: %w", err)
	}

	newStock, err := s.productRepo.IncrementStock(tx, quoteLine.ProductID, req.DeliveredQty)
	if err != nil {
		return nil, fmt.Errorf("failed to increment stock for product %d: %w", quoteLine.ProductID, err)
	}

	if err := s.quoteRepo.UpdateQuoteLineStatus(tx, quoteLine.ID, newStatus); err != nil {
		return nil, fmt.Errorf("failed to update status of quote line %d: %w", quoteLine.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit receipt transaction: %w", err)
	}

	utils.LogInfo("Receipt recorded", map[string]interface{}{
		"quote_line_id": quoteLine.ID,
		"delivered_qty": req.DeliveredQty,
		"status":        newStatus,
	})
	return &ReceiptResult{
		ReceiptLine:    receiptLine,
		QuoteStatus:    newStatus,
		DeliveredTotal: deliveredTotal,
		OutstandingQty: quoteLine.Quantity - deliveredTotal,
		NewStockLevel:  newStock,
	}, nil
}

func (s *receiptService) GetReceiptLines(quoteNumber *string, productID *int64, page, pageSize int) ([]models.ReceiptLine, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	lines, totalCount, err := s.receiptRepo.GetReceiptLines(quoteNumber, productID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get receipt lines: %w", err)
	}
	return lines, totalCount, nil
}
