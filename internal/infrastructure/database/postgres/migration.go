// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/your-org/pizzeria-backend/internal/domain/catalog"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{
		db: db,
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations() error {
	log.Println("🔄 Running database auto-migrations...")

	// Models in dependency order
	models := []interface{}{
		&catalog.Category{},
		&catalog.Option{},
		&catalog.Product{},
	}

	for _, model := range models {
		log.Printf("Migrating model: %T", model)
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	log.Println("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes for better performance
func (m *Migration) CreateIndexes() error {
	log.Println("🔄 Creating additional database indexes...")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_products_parent_active ON products(parent_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_category_active ON products(category_id, is_active)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_categories_name ON categories(name)",
	}

	for _, index := range indexes {
		if err := m.db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	log.Println("✅ Database indexes created successfully")
	return nil
}

// SeedInitialData seeds a small development catalog: one configurable
// pizza with three size variants, topping families with one child per
// size, and a couple of drinks
func (m *Migration) SeedInitialData() error {
	var count int64
	if err := m.db.Model(&catalog.Category{}).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check existing data: %w", err)
	}
	if count > 0 {
		log.Println("Catalog already seeded, skipping")
		return nil
	}

	log.Println("🔄 Seeding development catalog...")

	pizzas := catalog.Category{ID: uuid.New().String(), Name: "Pizzas", IsActive: true}
	toppings := catalog.Category{ID: uuid.New().String(), Name: "Toppings", IsActive: true}
	drinks := catalog.Category{ID: uuid.New().String(), Name: "Drinks", IsActive: true}
	for _, c := range []*catalog.Category{&pizzas, &toppings, &drinks} {
		if err := m.db.Create(c).Error; err != nil {
			return fmt.Errorf("failed to seed category %s: %w", c.Name, err)
		}
	}

	sizeSmall := catalog.Option{ID: uuid.New().String(), Name: "Small", GroupName: "Size"}
	sizeMedium := catalog.Option{ID: uuid.New().String(), Name: "Medium", GroupName: "Size"}
	sizeLarge := catalog.Option{ID: uuid.New().String(), Name: "Large", GroupName: "Size"}
	for _, o := range []*catalog.Option{&sizeSmall, &sizeMedium, &sizeLarge} {
		if err := m.db.Create(o).Error; err != nil {
			return fmt.Errorf("failed to seed option %s: %w", o.Name, err)
		}
	}

	base := catalog.Product{
		ID:         uuid.New().String(),
		Name:       "Pizza Margherita",
		IsActive:   true,
		CategoryID: &pizzas.ID,
	}
	if err := m.db.Create(&base).Error; err != nil {
		return fmt.Errorf("failed to seed base product: %w", err)
	}

	sizes := []struct {
		option catalog.Option
		price  int64
	}{
		{sizeSmall, 500},
		{sizeMedium, 700},
		{sizeLarge, 900},
	}
	for _, s := range sizes {
		variant := catalog.Product{
			ID:         uuid.New().String(),
			Name:       fmt.Sprintf("%s (%s)", base.Name, s.option.Name),
			Price:      s.price,
			IsActive:   true,
			ParentID:   &base.ID,
			CategoryID: &pizzas.ID,
			Options:    []catalog.Option{s.option},
		}
		if err := m.db.Create(&variant).Error; err != nil {
			return fmt.Errorf("failed to seed size variant %s: %w", variant.Name, err)
		}
	}

	toppingFamilies := []struct {
		name   string
		prices [3]int64 // small, medium, large
	}{
		{"Extra Cheese", [3]int64{100, 150, 200}},
		{"Salami", [3]int64{150, 200, 250}},
		{"Mushrooms", [3]int64{100, 120, 150}},
	}
	sizeOptions := []catalog.Option{sizeSmall, sizeMedium, sizeLarge}
	for _, family := range toppingFamilies {
		parent := catalog.Product{
			ID:         uuid.New().String(),
			Name:       family.name,
			IsActive:   true,
			CategoryID: &toppings.ID,
		}
		if err := m.db.Create(&parent).Error; err != nil {
			return fmt.Errorf("failed to seed topping family %s: %w", family.name, err)
		}

		for i, option := range sizeOptions {
			child := catalog.Product{
				ID:         uuid.New().String(),
				Name:       fmt.Sprintf("%s (%s)", family.name, option.Name),
				Price:      family.prices[i],
				IsActive:   true,
				ParentID:   &parent.ID,
				CategoryID: &toppings.ID,
				Options:    []catalog.Option{option},
			}
			if err := m.db.Create(&child).Error; err != nil {
				return fmt.Errorf("failed to seed topping variant %s: %w", child.Name, err)
			}
		}
	}

	drinkProducts := []struct {
		name  string
		price int64
	}{
		{"Cola", 250},
		{"Orange Juice", 300},
		{"Sparkling Water", 200},
	}
	for _, d := range drinkProducts {
		drink := catalog.Product{
			ID:         uuid.New().String(),
			Name:       d.name,
			Price:      d.price,
			IsActive:   true,
			CategoryID: &drinks.ID,
		}
		if err := m.db.Create(&drink).Error; err != nil {
			return fmt.Errorf("failed to seed drink %s: %w", d.name, err)
		}
	}

	log.Println("✅ Development catalog seeded successfully")
	return nil
}
