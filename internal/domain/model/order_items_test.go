package model_test

import (
	"testing"

	"github.com/Yogesharu2003/BalajiDairy/internal/domain/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func scan(t *testing.T, raw string) model.OrderItems {
	t.Helper()
	var items model.OrderItems
	assert.NoError(t, items.Scan([]byte(raw)))
	return items
}

func TestOrderItems_ValueThenScanRoundTrip(t *testing.T) {
	in := model.OrderItems{
		{ProductID: 1, Name: "Milk", Qty: 2, Price: decimal.RequireFromString("10.00")},
		{ProductID: 2, Name: "Paneer", Qty: 1, Price: decimal.RequireFromString("80.50")},
	}

	v, err := in.Value()
	assert.NoError(t, err)

	out := scan(t, v.(string))
	assert.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ProductID)
	assert.Equal(t, "Milk", out[0].Name)
	assert.Equal(t, int64(2), out[0].Qty)
	assert.True(t, out[0].Price.Equal(decimal.RequireFromString("10.00")))
	assert.True(t, out[1].Price.Equal(decimal.RequireFromString("80.50")))
}

func TestOrderItems_ScanLegacySingleQuotedLiteral(t *testing.T) {
	raw := `[{'id': 1, 'name': 'Milk', 'qty': 2, 'price': 10.0}, {'id': 2, 'name': "Amul's Butter", 'qty': 1, 'price': '55.50'}]`

	out := scan(t, raw)
	assert.Len(t, out, 2)
	assert.Equal(t, "Milk", out[0].Name)
	assert.Equal(t, "Amul's Butter", out[1].Name)
	assert.True(t, out[1].Price.Equal(decimal.RequireFromString("55.50")))
}

func TestOrderItems_ScanLegacyBooleansAndNone(t *testing.T) {
	raw := `[{'id': 1, 'name': 'Milk', 'qty': 1, 'price': None}]`

	out := scan(t, raw)
	assert.Len(t, out, 1)
	assert.True(t, out[0].Price.IsZero())
}

func TestOrderItems_ScanCoercesStringNumbers(t *testing.T) {
	raw := `[{"id": "3", "name": "Ghee", "qty": "2", "price": "450"}]`

	out := scan(t, raw)
	assert.Len(t, out, 1)
	assert.Equal(t, int64(3), out[0].ProductID)
	assert.Equal(t, int64(2), out[0].Qty)
	assert.True(t, out[0].Price.Equal(decimal.NewFromInt(450)))
}

func TestOrderItems_ScanGarbageDegradesToEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "not json at all", `{"id": 1}`, "[{'broken"} {
		out := scan(t, raw)
		assert.Empty(t, out, "raw=%q", raw)
	}
}

func TestOrderItems_ScanNil(t *testing.T) {
	var items model.OrderItems
	assert.NoError(t, items.Scan(nil))
	assert.Empty(t, items)
}

func TestOrderItems_Summary(t *testing.T) {
	items := model.OrderItems{
		{Name: "Milk", Qty: 2},
		{Name: "Paneer", Qty: 1},
	}
	assert.Equal(t, "Milk x2, Paneer x1", items.Summary())

	more := append(items, model.LineItem{Name: "Ghee", Qty: 1}, model.LineItem{Name: "Curd", Qty: 4})
	assert.Equal(t, "Milk x2, Paneer x1, Ghee x1...", more.Summary())

	assert.Equal(t, "", model.OrderItems{}.Summary())
}

func TestLineItem_Subtotal(t *testing.T) {
	li := model.LineItem{Qty: 3, Price: decimal.RequireFromString("10.50")}
	assert.True(t, li.Subtotal().Equal(decimal.RequireFromString("31.50")))
}
