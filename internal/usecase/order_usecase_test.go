package usecase_test

import (
	"context"
	"testing"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"
	repo "github.com/Yogesharu2003/BalajiDairy/internal/repository"
	"github.com/Yogesharu2003/BalajiDairy/internal/session"
	"github.com/Yogesharu2003/BalajiDairy/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newOrderFixture() (*TxManagerMock, *OrderRepoMock, *ProductRepoMock, *InventoryRepoMock, *usecase.OrderUsecase) {
	orders := new(OrderRepoMock)
	products := new(ProductRepoMock)
	inventory := new(InventoryRepoMock)

	tx := &TxManagerMock{Repos: &TxReposMock{
		orders:    orders,
		products:  products,
		inventory: inventory,
	}}
	tx.On("WithinTx", mock.Anything).Return(nil).Maybe()

	uc := usecase.NewOrderUsecase(tx, orders)
	return tx, orders, products, inventory, uc
}

func milk(stock int64) model.Product {
	return model.Product{
		ID:    1,
		Name:  "Milk",
		Price: decimal.RequireFromString("10.00"),
		Stock: stock,
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	_, orders, products, inventory, uc := newOrderFixture()

	products.On("FindByID", mock.Anything, int64(1)).Return(milk(5), nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(2)).Return(true, nil)

	var created model.Order
	orders.On("Create", mock.Anything, mock.AnythingOfType("model.Order")).
		Run(func(args mock.Arguments) { created = args.Get(1).(model.Order) }).
		Return(int64(42), nil)

	cart := session.Cart{"1": 2}
	out, err := uc.PlaceOrder(context.Background(), 7, "12 Dairy Lane", cart)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), out.ID)
	assert.Equal(t, "Pending", out.Status)
	assert.True(t, out.Total.Equal(decimal.RequireFromString("20.00")), "total=%s", out.Total)

	// the snapshot freezes id, name, qty and unit price
	assert.Len(t, created.Items, 1)
	assert.Equal(t, int64(1), created.Items[0].ProductID)
	assert.Equal(t, "Milk", created.Items[0].Name)
	assert.Equal(t, int64(2), created.Items[0].Qty)
	assert.True(t, created.Items[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.Equal(t, model.OrderStatusPending, created.Status)

	inventory.AssertCalled(t, "DecreaseStockIfEnough", mock.Anything, int64(1), int64(2))
}

func TestPlaceOrder_NotEnoughStock(t *testing.T) {
	_, orders, products, inventory, uc := newOrderFixture()

	products.On("FindByID", mock.Anything, int64(1)).Return(milk(5), nil)

	cart := session.Cart{"1": 10}
	_, err := uc.PlaceOrder(context.Background(), 7, "12 Dairy Lane", cart)

	assertErrContains(t, err, "not enough stock for Milk")
	inventory.AssertNotCalled(t, "DecreaseStockIfEnough", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_RacingCheckoutLosesDecrement(t *testing.T) {
	_, orders, products, inventory, uc := newOrderFixture()

	// the read sees stock, but another checkout takes it before the guarded
	// decrement runs
	products.On("FindByID", mock.Anything, int64(1)).Return(milk(2), nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(2)).Return(false, nil)

	cart := session.Cart{"1": 2}
	_, err := uc.PlaceOrder(context.Background(), 7, "12 Dairy Lane", cart)

	assertErrContains(t, err, "not enough stock for Milk")
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	_, _, _, _, uc := newOrderFixture()

	_, err := uc.PlaceOrder(context.Background(), 7, "12 Dairy Lane", session.Cart{})
	assertErrContains(t, err, "cart is empty")
}

func TestPlaceOrder_MissingAddress(t *testing.T) {
	_, _, _, _, uc := newOrderFixture()

	_, err := uc.PlaceOrder(context.Background(), 7, "   ", session.Cart{"1": 1})
	assertErrContains(t, err, "address")
}

func TestPlaceOrder_MultiLineAllOrNothing(t *testing.T) {
	_, orders, products, inventory, uc := newOrderFixture()

	butter := model.Product{ID: 2, Name: "Butter", Price: decimal.RequireFromString("55.50"), Stock: 1}
	products.On("FindByID", mock.Anything, int64(1)).Return(milk(5), nil)
	products.On("FindByID", mock.Anything, int64(2)).Return(butter, nil)
	inventory.On("DecreaseStockIfEnough", mock.Anything, int64(1), int64(1)).Return(true, nil)

	// second line fails the stock check before any decrement
	cart := session.Cart{"1": 1, "2": 3}
	_, err := uc.PlaceOrder(context.Background(), 7, "12 Dairy Lane", cart)

	assertErrContains(t, err, "not enough stock for Butter")
	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCancel_PendingRestoresStockAndDeletes(t *testing.T) {
	_, orders, _, inventory, uc := newOrderFixture()

	order := model.Order{
		ID:     42,
		UserID: 7,
		Status: model.OrderStatusPending,
		Items: model.OrderItems{
			{ProductID: 1, Name: "Milk", Qty: 2, Price: decimal.RequireFromString("10.00")},
			{ProductID: 2, Name: "Butter", Qty: 1, Price: decimal.RequireFromString("55.50")},
		},
	}
	orders.On("FindByID", mock.Anything, int64(42)).Return(order, nil)
	inventory.On("IncreaseStock", mock.Anything, int64(1), int64(2)).Return(nil)
	inventory.On("IncreaseStock", mock.Anything, int64(2), int64(1)).Return(nil)
	orders.On("Delete", mock.Anything, int64(42)).Return(nil)

	err := uc.Cancel(context.Background(), 7, 42)

	assert.NoError(t, err)
	inventory.AssertNumberOfCalls(t, "IncreaseStock", 2)
	orders.AssertCalled(t, "Delete", mock.Anything, int64(42))
}

func TestCancel_NonPendingRejected(t *testing.T) {
	_, orders, _, inventory, uc := newOrderFixture()

	order := model.Order{ID: 42, UserID: 7, Status: model.OrderStatusConfirmed}
	orders.On("FindByID", mock.Anything, int64(42)).Return(order, nil)

	err := uc.Cancel(context.Background(), 7, 42)

	assertErrContains(t, err, "only pending orders")
	inventory.AssertNotCalled(t, "IncreaseStock", mock.Anything, mock.Anything, mock.Anything)
	orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestCancel_OtherUsersOrderLooksMissing(t *testing.T) {
	_, orders, _, _, uc := newOrderFixture()

	order := model.Order{ID: 42, UserID: 99, Status: model.OrderStatusPending}
	orders.On("FindByID", mock.Anything, int64(42)).Return(order, nil)

	err := uc.Cancel(context.Background(), 7, 42)
	assertErrContains(t, err, "order not found")
}

func TestGetMyOrder_OwnershipHidesOthers(t *testing.T) {
	_, orders, _, _, uc := newOrderFixture()

	order := model.Order{ID: 42, UserID: 99, Status: model.OrderStatusPending}
	orders.On("FindByID", mock.Anything, int64(42)).Return(order, nil)

	_, err := uc.GetMyOrder(context.Background(), 7, 42)
	assertErrContains(t, err, "order not found")
}

func TestListMyOrders_PassesDateFilter(t *testing.T) {
	_, orders, _, _, uc := newOrderFixture()

	f := repo.OrderDateFilter{StartDate: "2025-01-01", EndDate: "2025-01-31"}
	orders.On("ListByUserID", mock.Anything, int64(7), f).Return([]model.Order{}, nil)

	out, err := uc.ListMyOrders(context.Background(), 7, f)
	assert.NoError(t, err)
	assert.Empty(t, out)
	orders.AssertCalled(t, "ListByUserID", mock.Anything, int64(7), f)
}
