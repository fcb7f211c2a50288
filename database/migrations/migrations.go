// Package migrations registers the storefront schema. Import it for its
// side effects wherever migrations need to run.
package migrations

import (
	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("2026_01_01_000001_create_users_table", table(&models.User{}))
	migration.Register("2026_01_01_000002_create_products_table", table(&models.Product{}))
	migration.Register("2026_01_01_000003_create_orders_table", table(&models.Order{}))
	migration.Register("2026_01_01_000004_create_order_items_table", table(&models.OrderItem{}))
	migration.Register("2026_01_01_000005_create_payments_table", table(&models.Payment{}))
	migration.Register("2026_01_01_000006_create_page_contents_table", table(&models.PageContent{}))
	migration.Register("2026_01_01_000007_create_affiliates_table", table(&models.Affiliate{}))
}

// createTable migrates one model up and drops its table down.
type createTable struct {
	model interface{}
}

func table(model interface{}) *createTable { return &createTable{model: model} }

func (m *createTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(m.model)
}

func (m *createTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(m.model)
}
