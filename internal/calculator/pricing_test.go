package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/hisaab/internal/models"
)

const tolerance = 1e-9

func item(qty, rate, discount models.Amount) models.InvoiceItem {
	return models.InvoiceItem{ID: "i", Name: "Panadol", Qty: qty, Rate: rate, DiscountPercent: discount}
}

func TestTradePrice(t *testing.T) {
	for _, rate := range []float64{0, 1, 100, 1000, 1234.56, 99999.99} {
		got := TradePrice(rate)
		if math.Abs(got-rate*0.855) > tolerance {
			t.Errorf("TradePrice(%v) = %v, want %v", rate, got, rate*0.855)
		}
	}
}

func TestPerPiecePrice(t *testing.T) {
	tests := []struct {
		name string
		item models.InvoiceItem
		want float64
	}{
		{
			name: "unset rate is zero regardless of discount",
			item: item(models.Num(5), models.Unset(), models.Num(-10)),
			want: 0,
		},
		{
			name: "zero rate is zero regardless of discount",
			item: item(models.Num(5), models.Num(0), models.Num(25)),
			want: 0,
		},
		{
			name: "unset discount yields trade price",
			item: item(models.Num(1), models.Num(1000), models.Unset()),
			want: 855,
		},
		{
			name: "explicit zero discount yields trade price",
			item: item(models.Num(1), models.Num(1000), models.Num(0)),
			want: 855,
		},
		{
			name: "negative discount applies extra reduction on base",
			item: item(models.Num(1), models.Num(1000), models.Num(-10)),
			// tp = 855, base = 726.75, 726.75 * 0.90
			want: 654.075,
		},
		{
			name: "positive discount applies surcharge on base",
			item: item(models.Num(1), models.Num(1000), models.Num(10)),
			// base = 726.75, 726.75 * 1.10
			want: 799.425,
		},
		{
			name: "full discount drives price to zero",
			item: item(models.Num(1), models.Num(1000), models.Num(-100)),
			want: 0,
		},
		{
			name: "overshooting discount is not clamped",
			item: item(models.Num(1), models.Num(1000), models.Num(-150)),
			// 726.75 * (1 - 1.5)
			want: -363.375,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PerPiecePrice(tt.item)
			if math.Abs(got-tt.want) > tolerance {
				t.Errorf("PerPiecePrice() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPerPiecePriceIsDeterministic(t *testing.T) {
	it := item(models.Num(3), models.Num(437.25), models.Num(-7.5))
	first := PerPiecePrice(it)
	for i := 0; i < 10; i++ {
		if got := PerPiecePrice(it); got != first {
			t.Fatalf("PerPiecePrice changed between calls: %v vs %v", got, first)
		}
	}
}

func TestRowTotal(t *testing.T) {
	t.Run("unset qty is zero", func(t *testing.T) {
		if got := RowTotal(item(models.Unset(), models.Num(100), models.Unset())); got != 0 {
			t.Errorf("RowTotal() = %v, want 0", got)
		}
	})

	t.Run("scales linearly in qty", func(t *testing.T) {
		for _, k := range []float64{1, 3, 7.5, 40} {
			single := RowTotal(item(models.Num(k), models.Num(1000), models.Num(-10)))
			double := RowTotal(item(models.Num(2*k), models.Num(1000), models.Num(-10)))
			if math.Abs(double-2*single) > 1e-6 {
				t.Errorf("qty %v: RowTotal(2k) = %v, want %v", k, double, 2*single)
			}
		}
	})
}

func TestInvoiceTotal(t *testing.T) {
	if got := InvoiceTotal(nil); got != 0 {
		t.Errorf("InvoiceTotal(nil) = %v, want 0", got)
	}

	items := []models.InvoiceItem{
		item(models.Num(10), models.Num(100), models.Unset()),
		item(models.Num(2), models.Num(1000), models.Num(10)),
		item(models.Unset(), models.Num(50), models.Num(-5)),
	}
	var want float64
	for _, it := range items {
		want += RowTotal(it)
	}
	if got := InvoiceTotal(items); math.Abs(got-want) > tolerance {
		t.Errorf("InvoiceTotal() = %v, want %v", got, want)
	}
}

func TestTotalPaid(t *testing.T) {
	if got := TotalPaid(nil); got != 0 {
		t.Errorf("TotalPaid(nil) = %v, want 0", got)
	}
	payments := []models.Payment{
		{ID: "p1", Amount: models.Num(300)},
		{ID: "p2", Amount: models.Unset()},
		{ID: "p3", Amount: models.Num(20.5)},
	}
	if got := TotalPaid(payments); math.Abs(got-320.5) > tolerance {
		t.Errorf("TotalPaid() = %v, want 320.5", got)
	}
}

func TestBalance(t *testing.T) {
	t.Run("overpayment is negative", func(t *testing.T) {
		items := []models.InvoiceItem{item(models.Num(1), models.Num(0), models.Unset())}
		payments := []models.Payment{{ID: "p", Amount: models.Num(50)}}
		if got := Balance(items, payments); got != -50 {
			t.Errorf("Balance() = %v, want -50", got)
		}
	})

	t.Run("end to end", func(t *testing.T) {
		it := item(models.Num(10), models.Num(100), models.ParseAmount(""))
		if got := TradePrice(100); math.Abs(got-85.5) > tolerance {
			t.Errorf("TradePrice(100) = %v, want 85.5", got)
		}
		if got := PerPiecePrice(it); math.Abs(got-85.5) > tolerance {
			t.Errorf("PerPiecePrice() = %v, want 85.5", got)
		}
		if got := RowTotal(it); math.Abs(got-855) > tolerance {
			t.Errorf("RowTotal() = %v, want 855", got)
		}
		payments := []models.Payment{{ID: "p", Amount: models.Num(300)}}
		if got := Balance([]models.InvoiceItem{it}, payments); math.Abs(got-555) > tolerance {
			t.Errorf("Balance() = %v, want 555", got)
		}
	})
}

func TestQuoteInvoice(t *testing.T) {
	items := []models.InvoiceItem{
		{ID: "a", Qty: models.Num(10), Rate: models.Num(100)},
		{ID: "b", Qty: models.Num(1), Rate: models.Num(1000), DiscountPercent: models.Num(-10)},
	}
	payments := []models.Payment{{ID: "p", Amount: models.Num(300)}}

	q := QuoteInvoice(items, payments)
	if len(q.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(q.Rows))
	}
	if q.Rows[1].ItemID != "b" {
		t.Errorf("row order not preserved: got %s", q.Rows[1].ItemID)
	}
	if math.Abs(q.Rows[1].TradePrice-855) > tolerance {
		t.Errorf("row b trade price = %v, want 855", q.Rows[1].TradePrice)
	}
	if math.Abs(q.Total-InvoiceTotal(items)) > tolerance {
		t.Errorf("total = %v, want %v", q.Total, InvoiceTotal(items))
	}
	if math.Abs(q.Balance-Balance(items, payments)) > tolerance {
		t.Errorf("balance = %v, want %v", q.Balance, Balance(items, payments))
	}
}
