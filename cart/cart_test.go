package cart

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/emma-ortiz/OlivosVerdes-3/models"
)

func product(id uint, price string) *models.Product {
	return &models.Product{ID: id, BasePrice: decimal.RequireFromString(price)}
}

func promotedProduct(id uint, base, discounted string, start, end time.Time) *models.Product {
	p := product(id, base)
	p.Promotion = &models.Promotion{
		ProductID:       id,
		DiscountedPrice: decimal.RequireFromString(discounted),
		StartDate:       start,
		EndDate:         end,
	}
	return p
}

func TestAddNewLine(t *testing.T) {
	c := New()
	line := c.Add(product(7, "10.00"), time.Now(), 2)

	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("10.00")))
	assert.Len(t, c, 1)
}

func TestReAddSumsQuantityAndRefreshesSnapshot(t *testing.T) {
	today := time.Date(2026, time.May, 10, 12, 0, 0, 0, time.UTC)
	p := product(7, "10.00")

	c := New()
	c.Add(p, today, 1)

	// A promotion becomes active between the two adds.
	p = promotedProduct(7, "10.00", "8.00",
		time.Date(2026, time.May, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.May, 20, 0, 0, 0, 0, time.UTC))
	line := c.Add(p, today, 1)

	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("8.00")),
		"snapshot must be the latest resolved price, got %s", line.UnitPrice)
}

func TestAdjustIncrease(t *testing.T) {
	c := New()
	c.Add(product(3, "5.00"), time.Now(), 1)

	line, present := c.Adjust("3", Increase)
	assert.True(t, present)
	assert.Equal(t, 2, line.Quantity)
	assert.True(t, line.UnitPrice.Equal(decimal.RequireFromString("5.00")),
		"adjust must not re-resolve the price")
}

func TestAdjustDecreaseRemovesSingletonLine(t *testing.T) {
	c := New()
	c.Add(product(3, "5.00"), time.Now(), 1)

	_, present := c.Adjust("3", Decrease)
	assert.False(t, present)
	assert.NotContains(t, c, "3")
}

func TestAdjustUnknownProductIsNoOp(t *testing.T) {
	c := New()
	c.Add(product(3, "5.00"), time.Now(), 1)

	_, present := c.Adjust("99", Increase)
	assert.False(t, present)
	assert.Len(t, c, 1)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(product(3, "5.00"), time.Now(), 1)

	assert.True(t, c.Remove("3"))
	assert.False(t, c.Remove("3"))
	assert.True(t, c.IsEmpty())
}

func TestDecodeDropsInvalidLines(t *testing.T) {
	payload := []byte(`{
		"1": {"quantity": 2, "price": "10.00"},
		"2": {"quantity": 0, "price": "5.00"},
		"3": {"quantity": 1, "price": "not-a-number"}
	}`)

	c, warnings, err := Decode(payload)
	assert.NoError(t, err)
	assert.Len(t, c, 1)
	assert.Contains(t, c, "1")
	assert.Len(t, warnings, 2)
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	c := New()
	c.Add(product(1, "10.00"), time.Now(), 2)
	c.Add(product(2, "5.50"), time.Now(), 1)

	data, err := Encode(c)
	assert.NoError(t, err)

	decoded, warnings, err := Decode(data)
	assert.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Len(t, decoded, 2)
	assert.Equal(t, 2, decoded["1"].Quantity)
	assert.True(t, decoded["2"].UnitPrice.Equal(decimal.RequireFromString("5.50")))
}
