package service_test

import (
	"testing"

	"github.com/niksmo/storefront/internal/core/domain"
	"github.com/niksmo/storefront/internal/core/service"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProduct(id, title, price string, rating int) domain.Product {
	d, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return domain.Product{
		ID:     id,
		Title:  title,
		Price:  d,
		Rating: rating,
	}
}

func TestCartService(t *testing.T) {
	mouse := testProduct("p1", "Wireless Mouse", "10.00", 5)
	cable := testProduct("p2", "USB Cable", "5.50", 3)

	t.Run("AddTwiceAggregatesOneLine", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)
		cart.Add(mouse)

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "p1", lines[0].Product.ID)
		assert.Equal(t, 2, lines[0].Qty)
	})

	t.Run("RepeatAddKeepsFirstSnapshot", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)

		renamed := mouse
		renamed.Title = "Wireless Mouse v2"
		cart.Add(renamed)

		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "Wireless Mouse", lines[0].Product.Title)
		assert.Equal(t, 2, lines[0].Qty)
	})

	t.Run("SetQtyClampsToOne", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)

		cart.SetQty("p1", 0)
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Qty)

		cart.SetQty("p1", -5)
		assert.Equal(t, 1, cart.Lines()[0].Qty)
	})

	t.Run("SetQtyOverwrites", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)

		cart.SetQty("p1", 7)
		assert.Equal(t, 7, cart.Lines()[0].Qty)
	})

	t.Run("SetQtyUnknownIDNoOp", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)

		cart.SetQty("missing", 3)
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, 1, lines[0].Qty)
	})

	t.Run("RemoveDeletesLine", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)
		cart.Add(cable)

		cart.Remove("p1")
		lines := cart.Lines()
		require.Len(t, lines, 1)
		assert.Equal(t, "p2", lines[0].Product.ID)
	})

	t.Run("RemoveUnknownIDNoOp", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)

		cart.Remove("missing")
		assert.Len(t, cart.Lines(), 1)
	})

	t.Run("ClearEmptiesAllLines", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)
		cart.Add(cable)

		cart.Clear()
		assert.Empty(t, cart.Lines())
		assert.Equal(t, 0, cart.ItemCount())
		assert.True(t, cart.Total().IsZero())
	})

	t.Run("TotalIsExact", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)
		cart.Add(mouse)
		cart.Add(cable)

		assert.Equal(t, "25.50", cart.Total().StringFixed(2))
	})

	t.Run("ItemCountSumsQuantities", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(mouse)
		cart.Add(mouse)
		cart.Add(cable)

		assert.Equal(t, 3, cart.ItemCount())
	})

	t.Run("LinesKeepInsertionOrder", func(t *testing.T) {
		cart := service.NewCartService()
		cart.Add(cable)
		cart.Add(mouse)
		cart.Add(cable)

		lines := cart.Lines()
		require.Len(t, lines, 2)
		assert.Equal(t, "p2", lines[0].Product.ID)
		assert.Equal(t, "p1", lines[1].Product.ID)
	})
}
