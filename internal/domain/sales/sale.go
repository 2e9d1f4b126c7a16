package sales

import (
	"time"

	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/gipsy-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// SaleStatus represents where a sale is in its lifecycle
type SaleStatus string

const (
	SaleStatusPending    SaleStatus = "PENDING"
	SaleStatusValidating SaleStatus = "VALIDATING"
	SaleStatusCommitted  SaleStatus = "COMMITTED"
	SaleStatusRejected   SaleStatus = "REJECTED"
	SaleStatusUndone     SaleStatus = "UNDONE"
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusValidating, SaleStatusCommitted, SaleStatusRejected, SaleStatusUndone:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status.
// COMMITTED may still move to UNDONE via a later compensating operation;
// REJECTED and UNDONE are terminal.
func (s SaleStatus) CanTransitionTo(target SaleStatus) bool {
	switch s {
	case SaleStatusPending:
		return target == SaleStatusValidating
	case SaleStatusValidating:
		return target == SaleStatusCommitted || target == SaleStatusRejected
	case SaleStatusCommitted:
		return target == SaleStatusUndone
	case SaleStatusRejected, SaleStatusUndone:
		return false
	}
	return false
}

// SaleItem is the immutable snapshot of one cart position taken at commit time
type SaleItem struct {
	ProductID   uuid.UUID         `json:"product_id"`
	ProductName string            `json:"product_name"`
	VolumeML    int               `json:"volume_ml"`
	Quantity    int               `json:"quantity"`
	AddOnCodes  []string          `json:"addons,omitempty"`
	PriceTotal  valueobject.Money `json:"price_total_item"`
}

// Sale is the audit record of a committed sale and the source of truth for
// undoing it. InventoryDelta holds the signed (negative) adjustment that was
// applied to the ledger when the sale committed.
type Sale struct {
	shared.BaseAggregateRoot
	Status         SaleStatus        `gorm:"not null;index"`
	Items          []SaleItem        `gorm:"serializer:json"`
	TotalAmount    valueobject.Money `gorm:"type:bigint;not null;default:0"`
	InventoryDelta DeltaMap          `gorm:"serializer:json"`
	UndoneAt       *time.Time
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new pending sale
func NewSale() *Sale {
	return &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Status:            SaleStatusPending,
	}
}

// transition moves the sale to the target status, enforcing the state machine
func (s *Sale) transition(target SaleStatus) error {
	if !s.Status.CanTransitionTo(target) {
		return shared.ErrInvalidState
	}
	s.Status = target
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
	return nil
}

// BeginValidation moves the sale into the validating state
func (s *Sale) BeginValidation() error {
	return s.transition(SaleStatusValidating)
}

// Commit records the snapshot, total and applied delta and marks the sale committed
func (s *Sale) Commit(items []SaleItem, total valueobject.Money, delta DeltaMap) error {
	if err := s.transition(SaleStatusCommitted); err != nil {
		return err
	}
	s.Items = items
	s.TotalAmount = total
	s.InventoryDelta = delta
	return nil
}

// Reject marks the sale rejected; nothing was written to the ledger
func (s *Sale) Reject() error {
	return s.transition(SaleStatusRejected)
}

// MarkUndone marks a committed sale as compensated so it cannot be undone twice
func (s *Sale) MarkUndone() error {
	if s.Status == SaleStatusUndone {
		return shared.ErrAlreadyUndone
	}
	if err := s.transition(SaleStatusUndone); err != nil {
		return err
	}
	now := time.Now()
	s.UndoneAt = &now
	return nil
}

// IsUndone returns true if the sale has been compensated
func (s *Sale) IsUndone() bool {
	return s.Status == SaleStatusUndone
}
