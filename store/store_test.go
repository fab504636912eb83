package store

import (
	"fmt"
	"sync"
	"testing"
	"time"

	models "inventory-dashboard/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func day(v string) time.Time {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAddProductThenGetByID(t *testing.T) {
	s := NewMemoryStore(false)
	in := models.NewProduct{Name: "Lamp", SKU: "LMP-1", Category: "Home", Price: dec("12.50"), Stock: 3, ImageURL: "http://img"}

	p := s.AddProduct(in)
	require.NotEmpty(t, p.ID)

	got, ok := s.GetProductByID(p.ID)
	require.True(t, ok)
	assert.Equal(t, in.WithID(p.ID), got)
}

func TestAddProductAssignsUniqueIDsInInsertionOrder(t *testing.T) {
	s := NewMemoryStore(false)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		p := s.AddProduct(models.NewProduct{Name: fmt.Sprintf("p%d", i)})
		require.False(t, seen[p.ID], "duplicate id %s", p.ID)
		seen[p.ID] = true
	}
	list := s.ListProducts()
	require.Len(t, list, 50)
	assert.Equal(t, "p0", list[0].Name)
	assert.Equal(t, "p49", list[49].Name)
}

func TestAddProductAcceptsNegativeValues(t *testing.T) {
	s := NewMemoryStore(false)
	p := s.AddProduct(models.NewProduct{Name: "refund", Price: dec("-5"), Stock: -2})
	got, _ := s.GetProductByID(p.ID)
	assert.True(t, got.Price.Equal(dec("-5")))
	assert.Equal(t, -2, got.Stock)
}

func TestUpdateProductReplacesWholeRecord(t *testing.T) {
	s := NewMemoryStore(false)
	p := s.AddProduct(models.NewProduct{Name: "old", SKU: "A", Category: "c", Stock: 5})

	repl := models.Product{ID: p.ID, Name: "new"}
	require.NoError(t, s.UpdateProduct(repl))

	got, _ := s.GetProductByID(p.ID)
	assert.Equal(t, repl, got)
}

func TestUpdateAndDeleteMissingProduct(t *testing.T) {
	s := NewMemoryStore(true)
	before := s.ListProducts()

	assert.ErrorIs(t, s.UpdateProduct(models.Product{ID: "nope"}), ErrProductNotFound)
	assert.ErrorIs(t, s.DeleteProduct("nope"), ErrProductNotFound)
	assert.Equal(t, before, s.ListProducts())
}

func TestDeleteProductLeavesOrderItemsIntact(t *testing.T) {
	s := NewMemoryStore(true)
	before, ok := s.GetOrderByID("o2")
	require.True(t, ok)

	require.NoError(t, s.DeleteProduct("p3"))
	_, ok = s.GetProductByID("p3")
	assert.False(t, ok)

	after, ok := s.GetOrderByID("o2")
	require.True(t, ok)
	assert.Equal(t, before.Items, after.Items)
	assert.True(t, before.Total.Equal(after.Total))
}

func TestAddOrderComputesTotal(t *testing.T) {
	s := NewMemoryStore(false)
	o := s.AddOrder(models.NewOrder{
		CustomerName: "Ana",
		Date:         day("2024-08-01"),
		Status:       models.StatusPending,
		Items: []models.OrderItem{
			{ProductID: "a", Quantity: 2, Price: dec("10.10")},
			{ProductID: "b", Quantity: 3, Price: dec("0.30")},
		},
	})
	require.NotEmpty(t, o.ID)
	assert.True(t, o.Total.Equal(dec("21.10")), "total %s", o.Total)

	got, _ := s.GetOrderByID(o.ID)
	assert.True(t, got.Total.Equal(o.Total))
}

func TestAddOrderSortsNewestFirst(t *testing.T) {
	s := NewMemoryStore(true)
	s.AddOrder(models.NewOrder{CustomerName: "late", Date: day("2024-07-21")})
	s.AddOrder(models.NewOrder{CustomerName: "newest", Date: day("2025-01-01")})

	orders := s.ListOrders()
	require.Len(t, orders, 7)
	assert.Equal(t, "newest", orders[0].CustomerName)
	for i := 1; i < len(orders); i++ {
		assert.False(t, orders[i].Date.After(orders[i-1].Date), "orders not sorted at %d", i)
	}
}

func TestUpdateOrderRecomputesTotalAndKeepsPosition(t *testing.T) {
	s := NewMemoryStore(true)
	orders := s.ListOrders()
	target := orders[2]

	target.Items = []models.OrderItem{{ProductID: "p1", Quantity: 4, Price: dec("1.25")}}
	target.Total = dec("9999")
	target.Date = day("2030-01-01")

	updated, err := s.UpdateOrder(target)
	require.NoError(t, err)
	assert.True(t, updated.Total.Equal(dec("5")))

	after := s.ListOrders()
	assert.Equal(t, target.ID, after[2].ID, "update must not re-sort")
	assert.True(t, after[2].Total.Equal(dec("5")))
}

func TestAddOrderMergesDuplicateProductLines(t *testing.T) {
	s := NewMemoryStore(false)
	o := s.AddOrder(models.NewOrder{
		CustomerName: "Ana",
		Date:         day("2024-08-01"),
		Items: []models.OrderItem{
			{ProductID: "p1", Quantity: 1, Price: dec("29.99")},
			{ProductID: "p2", Quantity: 1, Price: dec("5")},
			{ProductID: "p1", Quantity: 2, Price: dec("1")},
		},
	})
	require.Len(t, o.Items, 2)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.True(t, o.Items[0].Price.Equal(dec("29.99")), "first line price must be kept")
	assert.True(t, o.Total.Equal(dec("94.97")), "total %s", o.Total)
}

func TestUpdateOrderMergesDuplicateProductLines(t *testing.T) {
	s := NewMemoryStore(false)
	o := s.AddOrder(models.NewOrder{
		CustomerName: "Ana",
		Date:         day("2024-08-01"),
		Items:        []models.OrderItem{{ProductID: "p1", Quantity: 1, Price: dec("29.99")}},
	})
	o.Items = append(o.Items, models.OrderItem{ProductID: "p1", Quantity: 2, Price: dec("29.99")})

	updated, err := s.UpdateOrder(o)
	require.NoError(t, err)
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].Quantity)
	assert.True(t, updated.Total.Equal(dec("89.97")), "total %s", updated.Total)

	stored, _ := s.GetOrderByID(o.ID)
	assert.Len(t, stored.Items, 1)
}

func TestUpdateOrderMissing(t *testing.T) {
	s := NewMemoryStore(false)
	_, err := s.UpdateOrder(models.Order{ID: "x"})
	assert.ErrorIs(t, err, ErrOrderNotFound)
	assert.ErrorIs(t, s.DeleteOrder("x"), ErrOrderNotFound)
	_, err = s.UpdateOrderStatus("x", models.StatusShipped)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestUpdateOrderStatusOnlyChangesStatus(t *testing.T) {
	s := NewMemoryStore(true)
	before, _ := s.GetOrderByID("o4")

	after, err := s.UpdateOrderStatus("o4", models.StatusShipped)
	require.NoError(t, err)

	assert.Equal(t, models.StatusShipped, after.Status)
	assert.Equal(t, before.Items, after.Items)
	assert.Equal(t, before.Total.String(), after.Total.String())
	assert.Equal(t, before.CustomerName, after.CustomerName)
}

func TestDeleteOrder(t *testing.T) {
	s := NewMemoryStore(true)
	require.NoError(t, s.DeleteOrder("o1"))
	_, ok := s.GetOrderByID("o1")
	assert.False(t, ok)
	assert.Len(t, s.ListOrders(), 4)
}

func TestAddOrderItemMergesSameProduct(t *testing.T) {
	s := NewMemoryStore(true)
	o := s.AddOrder(models.NewOrder{CustomerName: "c", Date: day("2024-09-01")})

	_, err := s.AddOrderItem(o.ID, "p2", 1)
	require.NoError(t, err)
	o, err = s.AddOrderItem(o.ID, "p2", 2)
	require.NoError(t, err)

	require.Len(t, o.Items, 1)
	assert.Equal(t, 3, o.Items[0].Quantity)
	assert.True(t, o.Total.Equal(dec("73.50")))
}

func TestAddOrderItemFreezesPrice(t *testing.T) {
	s := NewMemoryStore(true)
	o := s.AddOrder(models.NewOrder{CustomerName: "c", Date: day("2024-09-01")})
	_, err := s.AddOrderItem(o.ID, "p5", 1)
	require.NoError(t, err)

	p, _ := s.GetProductByID("p5")
	p.Price = dec("100")
	require.NoError(t, s.UpdateProduct(p))

	got, _ := s.GetOrderByID(o.ID)
	assert.True(t, got.Items[0].Price.Equal(dec("19.90")))
	assert.True(t, got.Total.Equal(dec("19.90")))
}

func TestAddOrderItemErrors(t *testing.T) {
	s := NewMemoryStore(true)
	_, err := s.AddOrderItem("missing", "p1", 1)
	assert.ErrorIs(t, err, ErrOrderNotFound)
	_, err = s.AddOrderItem("o1", "missing", 1)
	assert.ErrorIs(t, err, ErrProductNotFound)
	_, err = s.AddOrderItem("o1", "p1", 0)
	assert.ErrorIs(t, err, models.ErrInvalidQuantity)
}

func TestRemoveOrderItemRecomputesTotal(t *testing.T) {
	s := NewMemoryStore(true)
	o, err := s.RemoveOrderItem("o1", "p2")
	require.NoError(t, err)
	require.Len(t, o.Items, 1)
	assert.True(t, o.Total.Equal(dec("59.98")))
}

func TestReadsReturnCopies(t *testing.T) {
	s := NewMemoryStore(true)
	o, _ := s.GetOrderByID("o1")
	o.Items[0].Quantity = 1000

	again, _ := s.GetOrderByID("o1")
	assert.Equal(t, 2, again.Items[0].Quantity)

	list := s.ListProducts()
	list[0].Name = "mutated"
	p, _ := s.GetProductByID("p1")
	assert.Equal(t, "T-Shirt en Coton Bio", p.Name)
}

func TestUpdateUserMergesFields(t *testing.T) {
	s := NewMemoryStore(true)
	name := "Nadia"
	u := s.UpdateUser(models.UserPatch{Name: &name})

	assert.Equal(t, "Nadia", u.Name)
	assert.Equal(t, "alex.dubois@example.com", u.Email)
	assert.Equal(t, u, s.User())
}

func TestUpdateSettingsMergesNotifications(t *testing.T) {
	s := NewMemoryStore(true)
	require.False(t, s.Settings().Notifications.WeeklySummary)

	on := true
	got := s.UpdateSettings(models.SettingsPatch{Notifications: &models.NotificationsPatch{LowStock: &on}})
	assert.True(t, got.Notifications.LowStock)
	assert.False(t, got.Notifications.WeeklySummary)

	got = s.UpdateSettings(models.SettingsPatch{Notifications: &models.NotificationsPatch{WeeklySummary: &on}})
	assert.True(t, got.Notifications.LowStock)
	assert.True(t, got.Notifications.WeeklySummary)

	dark := models.ThemeDark
	got = s.UpdateSettings(models.SettingsPatch{Theme: &dark})
	assert.Equal(t, models.ThemeDark, got.Theme)
	assert.True(t, got.Notifications.WeeklySummary)
}

func TestConcurrentMutations(t *testing.T) {
	s := NewMemoryStore(false)
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p := s.AddProduct(models.NewProduct{Name: fmt.Sprint(i), Price: dec("1")})
			o := s.AddOrder(models.NewOrder{CustomerName: fmt.Sprint(i), Date: day("2024-01-01").AddDate(0, 0, i)})
			_, _ = s.AddOrderItem(o.ID, p.ID, 1)
			_ = s.ListOrders()
		}(i)
	}
	wg.Wait()
	assert.Len(t, s.ListProducts(), 20)
	assert.Len(t, s.ListOrders(), 20)
}
