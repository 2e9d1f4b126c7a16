package catalog

import (
	"github.com/gipsy-office/backend/internal/domain/shared"
	"github.com/gipsy-office/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AddOn is an optional extra for a product with its own price delta and a
// fixed ingredient cost. Add-on consumption never scales with volume.
type AddOn struct {
	ID          uuid.UUID                     `gorm:"type:uuid;primaryKey"`
	ProductID   uuid.UUID                     `gorm:"type:uuid;not null;index"`
	Code        string                        `gorm:"not null"` // stable selection key, e.g. "syrup_vanilla"
	Name        string                        `gorm:"not null"`
	PriceDelta  valueobject.Money             `gorm:"type:bigint;not null;default:0"`
	Ingredients map[uuid.UUID]decimal.Decimal `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (AddOn) TableName() string {
	return "product_addons"
}

// Product is a sellable drink. A product without a recipe reference resolves
// to zero base consumption; that is deliberate source behavior, not an error.
type Product struct {
	shared.BaseAggregateRoot
	Name      string            `gorm:"not null"`
	Category  string            `gorm:"not null;index"`
	BasePrice valueobject.Money `gorm:"type:bigint;not null;default:0"`
	Volumes   []int             `gorm:"serializer:json"` // offered volumes in ml
	RecipeID  *uuid.UUID        `gorm:"type:uuid"`
	AddOns    []AddOn           `gorm:"foreignKey:ProductID;references:ID"`
	IsActive  bool              `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new active product
func NewProduct(name, category string, basePrice valueobject.Money) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if basePrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Base price cannot be negative")
	}
	if category == "" {
		category = "Uncategorized"
	}
	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Category:          category,
		BasePrice:         basePrice,
		Volumes:           []int{DefaultBaseVolumeML},
		AddOns:            make([]AddOn, 0),
		IsActive:          true,
	}, nil
}

// SetRecipe links the product to a recipe
func (p *Product) SetRecipe(recipeID uuid.UUID) {
	p.RecipeID = &recipeID
}

// AddAddOn registers an optional extra on the product
func (p *Product) AddAddOn(code, name string, priceDelta valueobject.Money, ingredients map[uuid.UUID]decimal.Decimal) error {
	if code == "" {
		return shared.NewDomainError("INVALID_ADDON", "Add-on code cannot be empty")
	}
	for _, a := range p.AddOns {
		if a.Code == code {
			return shared.ErrAlreadyExists
		}
	}
	p.AddOns = append(p.AddOns, AddOn{
		ID:          uuid.New(),
		ProductID:   p.ID,
		Code:        code,
		Name:        name,
		PriceDelta:  priceDelta,
		Ingredients: ingredients,
	})
	return nil
}

// FindAddOn returns the add-on with the given code, or nil if absent
func (p *Product) FindAddOn(code string) *AddOn {
	for i := range p.AddOns {
		if p.AddOns[i].Code == code {
			return &p.AddOns[i]
		}
	}
	return nil
}

// UnitPrice returns the per-unit price with the selected add-ons applied.
// Unknown add-on codes are ignored.
func (p *Product) UnitPrice(addOnCodes []string) valueobject.Money {
	price := p.BasePrice
	for _, code := range addOnCodes {
		if a := p.FindAddOn(code); a != nil {
			price = price.Add(a.PriceDelta)
		}
	}
	return price
}
