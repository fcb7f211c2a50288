package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/storefront/app/models"
	"github.com/shashiranjanraj/storefront/app/services"
	"github.com/shashiranjanraj/storefront/internal/testutil"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func qty(n int) *int { return &n }

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	db := testutil.NewDB(t)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)

	_, err := services.NewOrderService().Place(context.Background(), models.PrincipalOf(buyer), services.PlaceOrderInput{})

	assert.ErrorIs(t, err, services.ErrEmptyOrder)
	assert.Zero(t, countRows(t, db, &models.Order{}))
}

func TestPlaceOrderWritesOrderAndItems(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")
	tee := testutil.CreateProduct(t, db, seller, "Tee", "20.00")

	order, err := services.NewOrderService().Place(context.Background(), models.PrincipalOf(buyer), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{ID: mug.ID.String(), Quantity: qty(2), Price: dec("9.99")},
			{ProductID: tee.ID.String(), Price: dec("20.00")},
		},
		TotalPrice:   dec("39.98"),
		CustomerName: "Jane Doe",
	})
	require.NoError(t, err)

	assert.Equal(t, buyer.ID, order.UserID)
	assert.Equal(t, "Jane Doe", order.CustomerName)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.Equal(t, "39.98", order.TotalAmount.StringFixed(2))
	require.Len(t, order.Items, 2)

	byProduct := map[uuid.UUID]models.OrderItem{}
	for _, it := range order.Items {
		require.NotNil(t, it.ProductID)
		byProduct[*it.ProductID] = it
	}
	assert.Equal(t, 2, byProduct[mug.ID].Quantity)
	assert.Equal(t, "9.99", byProduct[mug.ID].PriceAtPurchase.StringFixed(2), "submitted price is kept")
	assert.Equal(t, 1, byProduct[tee.ID].Quantity)

	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
	assert.EqualValues(t, 2, countRows(t, db, &models.OrderItem{}))
}

func TestPlaceOrderComputesTotalWhenAbsent(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")

	order, err := services.NewOrderService().Place(context.Background(), models.PrincipalOf(buyer), services.PlaceOrderInput{
		Items: []services.OrderItemInput{{ID: mug.ID.String(), Quantity: qty(3), Price: dec("2.50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "7.50", order.TotalAmount.StringFixed(2))
}

func TestPlaceOrderUnknownProductRollsBack(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")

	_, err := services.NewOrderService().Place(context.Background(), models.PrincipalOf(buyer), services.PlaceOrderInput{
		Items: []services.OrderItemInput{
			{ID: mug.ID.String(), Price: dec("12.00")},
			{ID: uuid.NewString(), Price: dec("1.00")},
		},
	})

	assert.ErrorIs(t, err, services.ErrUnknownProduct)
	assert.Zero(t, countRows(t, db, &models.Order{}))
	assert.Zero(t, countRows(t, db, &models.OrderItem{}))
}

func TestPlaceOrderItemFailureRollsBackOrder(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")

	errDisk := errors.New("disk full")
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:fail_order_items", func(tx *gorm.DB) {
		if tx.Statement.Table == "order_items" {
			_ = tx.AddError(errDisk)
		}
	}))

	_, err := services.NewOrderService().Place(context.Background(), models.PrincipalOf(buyer), services.PlaceOrderInput{
		Items: []services.OrderItemInput{{ID: mug.ID.String(), Quantity: qty(2), Price: dec("12.00")}},
	})

	require.ErrorIs(t, err, errDisk)
	assert.Zero(t, countRows(t, db, &models.Order{}), "order row is rolled back with its items")
	assert.Zero(t, countRows(t, db, &models.OrderItem{}))
}

func TestPlaceOrderValidatesItems(t *testing.T) {
	db := testutil.NewDB(t)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)

	_, err := services.NewOrderService().Place(context.Background(), models.PrincipalOf(buyer), services.PlaceOrderInput{
		Items: []services.OrderItemInput{{ID: "not-a-uuid", Quantity: qty(0)}},
	})

	var verr *services.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "items[0].id")
	assert.Contains(t, verr.Fields, "items[0].quantity")
	assert.Contains(t, verr.Fields, "items[0].price")
}

func TestPlaceOrderCustomerNameFallsBack(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	named := testutil.CreateUser(t, db, "named", models.RoleUser)
	require.NoError(t, db.Model(&named).Updates(map[string]interface{}{"first_name": "Ada", "last_name": "Lovelace"}).Error)
	bare := testutil.CreateUser(t, db, "bare", models.RoleUser)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")

	svc := services.NewOrderService()
	in := services.PlaceOrderInput{Items: []services.OrderItemInput{{ID: mug.ID.String(), Price: dec("12.00")}}}

	o1, err := svc.Place(context.Background(), models.PrincipalOf(named), in)
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", o1.CustomerName)

	o2, err := svc.Place(context.Background(), models.PrincipalOf(bare), in)
	require.NoError(t, err)
	assert.Equal(t, "bare", o2.CustomerName)
}

func TestOrdersAreScopedToTheirOwner(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	alice := testutil.CreateUser(t, db, "alice", models.RoleUser)
	bob := testutil.CreateUser(t, db, "bob", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")

	svc := services.NewOrderService()
	ctx := context.Background()
	in := services.PlaceOrderInput{Items: []services.OrderItemInput{{ID: mug.ID.String(), Price: dec("12.00")}}}

	aliceOrder, err := svc.Place(ctx, models.PrincipalOf(alice), in)
	require.NoError(t, err)
	_, err = svc.Place(ctx, models.PrincipalOf(bob), in)
	require.NoError(t, err)

	mine, err := svc.List(ctx, models.PrincipalOf(alice))
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, aliceOrder.ID, mine[0].ID)

	all, err := svc.List(ctx, models.PrincipalOf(admin))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = svc.Get(ctx, models.PrincipalOf(bob), aliceOrder.ID)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestUpdateStatusIsAdminOnly(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, "seller", models.RoleSeller)
	buyer := testutil.CreateUser(t, db, "buyer", models.RoleUser)
	admin := testutil.CreateUser(t, db, "admin", models.RoleAdmin)
	mug := testutil.CreateProduct(t, db, seller, "Mug", "12.00")

	svc := services.NewOrderService()
	ctx := context.Background()
	order, err := svc.Place(ctx, models.PrincipalOf(buyer), services.PlaceOrderInput{
		Items: []services.OrderItemInput{{ID: mug.ID.String(), Price: dec("12.00")}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, models.PrincipalOf(buyer), order.ID, "shipped")
	assert.ErrorIs(t, err, services.ErrForbidden)

	_, err = svc.UpdateStatus(ctx, models.PrincipalOf(admin), order.ID, "teleported")
	var verr *services.ValidationError
	assert.ErrorAs(t, err, &verr)

	updated, err := svc.UpdateStatus(ctx, models.PrincipalOf(admin), order.ID, "Shipped")
	require.NoError(t, err)
	assert.Equal(t, models.OrderShipped, updated.Status)
}
