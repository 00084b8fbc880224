// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a catalog product. A configurable product (e.g. a
// pizza) is a parent whose children are its purchasable variants; a
// topping family works the same way, with one child per size context.
type Product struct {
	ID         string         `gorm:"primaryKey;size:36" json:"id"`
	Name       string         `gorm:"not null;size:255" json:"name"`
	Price      int64          `gorm:"not null" json:"price"` // Price in cents
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	ParentID   *string        `gorm:"index;size:36" json:"parent_id,omitempty"`
	CategoryID *string        `gorm:"index;size:36" json:"category_id,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Parent   *Product  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children []Product `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Category *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Options  []Option  `gorm:"many2many:product_options;" json:"options,omitempty"`
}

// Category represents product categories
type Category struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255;index" json:"name"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// Option represents a configuration option linking a variant to its
// pricing context (e.g. the "Large" size option)
type Option struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	Name      string    `gorm:"not null;size:255" json:"name"`
	GroupName string    `gorm:"size:255" json:"group_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides
func (Product) TableName() string  { return "products" }
func (Category) TableName() string { return "categories" }
func (Option) TableName() string   { return "options" }

// OptionIDs returns the ids of the product's loaded options
func (p *Product) OptionIDs() []string {
	ids := make([]string, 0, len(p.Options))
	for _, opt := range p.Options {
		ids = append(ids, opt.ID)
	}
	return ids
}

// HasOption reports whether the product carries the given option id
func (p *Product) HasOption(optionID string) bool {
	for _, opt := range p.Options {
		if opt.ID == optionID {
			return true
		}
	}
	return false
}

// Variant represents a purchasable size variant of a base product
type Variant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	OptionID string `json:"option_id,omitempty"`
}

// Topping represents a topping priced for one size context
type Topping struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Drink represents a drink product
type Drink struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}
