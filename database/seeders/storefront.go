package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/config"
	"github.com/shashiranjanraj/storefront/pkg/auth"
	"github.com/shashiranjanraj/storefront/pkg/logger"
)

func init() {
	Register("admin", SeedAdmin)
	Register("pages", SeedPages)
	Register("products", SeedProducts)
}

const defaultAdminPassword = "change-me-now"

// SeedAdmin creates the admin account named by SEED_ADMIN_USERNAME.
func SeedAdmin(db *gorm.DB) error {
	username := config.Get("SEED_ADMIN_USERNAME", "admin")
	password := config.Get("SEED_ADMIN_PASSWORD", defaultAdminPassword)
	if password == defaultAdminPassword {
		logger.Warn("seeders: admin created with the default password", "username", username)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := models.User{
		Username:  username,
		Email:     config.Get("SEED_ADMIN_EMAIL", "admin@example.com"),
		Password:  hash,
		FirstName: "Store",
		LastName:  "Admin",
		Role:      models.RoleAdmin,
		IsActive:  true,
	}
	return db.Where(models.User{Username: username}).FirstOrCreate(&admin).Error
}

var defaultPages = []models.PageContent{
	{Slug: "about", Title: "About us", Content: "Tell your customers who you are."},
	{Slug: "terms", Title: "Terms of service", Content: "Terms of service go here."},
	{Slug: "privacy", Title: "Privacy policy", Content: "Privacy policy goes here."},
	{Slug: "shipping", Title: "Shipping & returns", Content: "Shipping and returns policy goes here."},
}

// SeedPages creates the standard static pages if they are missing.
func SeedPages(db *gorm.DB) error {
	for _, p := range defaultPages {
		page := p
		if err := db.Where(models.PageContent{Slug: page.Slug}).FirstOrCreate(&page).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedProducts lists a few demo products under the admin account when the
// catalogue is empty.
func SeedProducts(db *gorm.DB) error {
	var n int64
	if err := db.Model(&models.Product{}).Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	var admin models.User
	if err := db.Where("role = ?", models.RoleAdmin).Order("id").First(&admin).Error; err != nil {
		return err
	}

	demo := []models.Product{
		{Name: "Classic Tee", Description: "Soft cotton crew neck.", Price: decimal.RequireFromString("19.99"), StockQuantity: 120, Category: "apparel", Brand: "Generic", IsFeatured: true},
		{Name: "Trail Runner", Description: "Lightweight running shoe.", Price: decimal.RequireFromString("89.00"), StockQuantity: 40, Category: "footwear", Brand: "Stride", IsPopular: true},
		{Name: "Canvas Tote", Description: "Everyday carry-all.", Price: decimal.RequireFromString("24.50"), StockQuantity: 75, Category: "accessories", Brand: "Generic"},
	}
	for i := range demo {
		demo[i].SellerID = admin.ID
	}
	return db.Omit("Seller").Create(&demo).Error
}
