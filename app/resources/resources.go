// Package resources defines the JSON shape of every model the API returns.
// Money is rendered as a two-place decimal string.
package resources

import (
	"time"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/pkg/collection"
)

type User struct {
	ID          uint        `json:"id"`
	Username    string      `json:"username"`
	Email       string      `json:"email"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Role        models.Role `json:"role"`
	Bio         string      `json:"bio"`
	BonusPoints int         `json:"bonus_points"`
	IsActive    bool        `json:"is_active"`
	DateJoined  time.Time   `json:"date_joined"`
}

func NewUser(u models.User) User {
	return User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Role:        u.Role,
		Bio:         u.Bio,
		BonusPoints: u.BonusPoints,
		IsActive:    u.IsActive,
		DateJoined:  u.DateJoined,
	}
}

func Users(us []models.User) []User { return collection.Map(us, NewUser) }

type Product struct {
	ID            string    `json:"id"`
	Seller        uint      `json:"seller"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         string    `json:"price"`
	StockQuantity int       `json:"stock_quantity"`
	Category      string    `json:"category"`
	Brand         string    `json:"brand"`
	ImageURL      string    `json:"image_url"`
	VideoURL      string    `json:"video_url"`
	IsFeatured    bool      `json:"is_featured"`
	IsPopular     bool      `json:"is_popular"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func NewProduct(p models.Product) Product {
	return Product{
		ID:            p.ID.String(),
		Seller:        p.SellerID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price.StringFixed(2),
		StockQuantity: p.StockQuantity,
		Category:      p.Category,
		Brand:         p.Brand,
		ImageURL:      p.ImageURL,
		VideoURL:      p.VideoURL,
		IsFeatured:    p.IsFeatured,
		IsPopular:     p.IsPopular,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func Products(ps []models.Product) []Product { return collection.Map(ps, NewProduct) }

// OrderItem nests the full product, or null once the product is deleted.
type OrderItem struct {
	ID              uint     `json:"id"`
	Product         *Product `json:"product"`
	Quantity        int      `json:"quantity"`
	PriceAtPurchase string   `json:"price_at_purchase"`
}

func NewOrderItem(i models.OrderItem) OrderItem {
	out := OrderItem{
		ID:              i.ID,
		Quantity:        i.Quantity,
		PriceAtPurchase: i.PriceAtPurchase.StringFixed(2),
	}
	if i.Product != nil {
		p := NewProduct(*i.Product)
		out.Product = &p
	}
	return out
}

type Order struct {
	ID           string             `json:"id"`
	User         uint               `json:"user"`
	CustomerName string             `json:"customer_name"`
	TotalAmount  string             `json:"total_amount"`
	Status       models.OrderStatus `json:"status"`
	CreatedAt    time.Time          `json:"created_at"`
	Items        []OrderItem        `json:"items"`
}

func NewOrder(o models.Order) Order {
	return Order{
		ID:           o.ID.String(),
		User:         o.UserID,
		CustomerName: o.CustomerName,
		TotalAmount:  o.TotalAmount.StringFixed(2),
		Status:       o.Status,
		CreatedAt:    o.CreatedAt,
		Items:        collection.Map(o.Items, NewOrderItem),
	}
}

func Orders(os []models.Order) []Order { return collection.Map(os, NewOrder) }

type Payment struct {
	ID            uint      `json:"id"`
	Order         string    `json:"order"`
	User          uint      `json:"user"`
	Amount        string    `json:"amount"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"payment_method"`
	TransactionID string    `json:"transaction_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewPayment(p models.Payment) Payment {
	return Payment{
		ID:            p.ID,
		Order:         p.OrderID.String(),
		User:          p.UserID,
		Amount:        p.Amount.StringFixed(2),
		Status:        p.Status,
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

func Payments(ps []models.Payment) []Payment { return collection.Map(ps, NewPayment) }

type Page struct {
	ID        uint      `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewPage(p models.PageContent) Page {
	return Page{ID: p.ID, Slug: p.Slug, Title: p.Title, Content: p.Content, UpdatedAt: p.UpdatedAt}
}

type Affiliate struct {
	ID           uint      `json:"id"`
	User         uint      `json:"user"`
	ReferralCode string    `json:"referral_code"`
	Earnings     string    `json:"earnings"`
	Clicks       int       `json:"clicks"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewAffiliate(a models.Affiliate) Affiliate {
	return Affiliate{
		ID:           a.ID,
		User:         a.UserID,
		ReferralCode: a.ReferralCode,
		Earnings:     a.Earnings.StringFixed(2),
		Clicks:       a.Clicks,
		CreatedAt:    a.CreatedAt,
	}
}

func Affiliates(as []models.Affiliate) []Affiliate { return collection.Map(as, NewAffiliate) }
