package invoice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmounts(t *testing.T) {
	t.Run("INR line forces exRate 1.0 and zero FC amount", func(t *testing.T) {
		line := ComputeAmounts(LineItem{Currency: "INR", Rate: 500, Qty: 3, ExRate: 83})

		assert.Equal(t, 1500.0, line.AmountINR)
		assert.Equal(t, 0.0, line.AmountFC)
		assert.Equal(t, 1.0, line.ExRate)
	})

	t.Run("foreign currency converts through the exchange rate", func(t *testing.T) {
		line := ComputeAmounts(LineItem{Currency: "USD", Rate: 100, Qty: 2, ExRate: 83})

		assert.Equal(t, 200.0, line.AmountFC)
		assert.Equal(t, 16600.0, line.AmountINR)
	})

	t.Run("missing currency defaults to INR", func(t *testing.T) {
		line := ComputeAmounts(LineItem{Rate: 10, Qty: 4})

		assert.Equal(t, 40.0, line.AmountINR)
		assert.Equal(t, 1.0, line.ExRate)
	})

	t.Run("zero exchange rate falls back to 1.0", func(t *testing.T) {
		line := ComputeAmounts(LineItem{Currency: "EUR", Rate: 50, Qty: 1, ExRate: 0})

		assert.Equal(t, 50.0, line.AmountINR)
		assert.Equal(t, 50.0, line.AmountFC)
	})
}

func TestClassify(t *testing.T) {
	t.Run("GST charge", func(t *testing.T) {
		line := Classify(LineItem{ChargeName: "SALE 18 % GST"})

		assert.True(t, line.IsGST)
		assert.Equal(t, TaxGST, line.TaxType)
		assert.Equal(t, 18.0, line.TaxPercent)
	})

	t.Run("IGST charge", func(t *testing.T) {
		line := Classify(LineItem{ChargeName: "IGST SALE 18%"})

		assert.True(t, line.IsGST)
		assert.Equal(t, TaxIGST, line.TaxType)
		assert.Equal(t, 18.0, line.TaxPercent)
	})

	t.Run("tabled untaxed charge resets tax fields", func(t *testing.T) {
		line := Classify(LineItem{ChargeName: "Ocean Freight", IsGST: true, TaxType: TaxGST, TaxPercent: 18})

		assert.False(t, line.IsGST)
		assert.Equal(t, TaxNone, line.TaxType)
	})

	t.Run("free-text charge keeps submitted tax fields", func(t *testing.T) {
		line := Classify(LineItem{ChargeName: "SPECIAL HANDLING", IsGST: true, TaxType: TaxIGST, TaxPercent: 5})

		assert.True(t, line.IsGST)
		assert.Equal(t, TaxIGST, line.TaxType)
		assert.Equal(t, 5.0, line.TaxPercent)
	})
}

func TestComputeTotals(t *testing.T) {
	t.Run("GST splits evenly into CGST and SGST", func(t *testing.T) {
		totals := ComputeTotals([]LineItem{
			{AmountINR: 1000, IsGST: true, TaxType: TaxGST, TaxPercent: 18},
		})

		assert.Equal(t, 1000.0, totals.Taxable)
		assert.Equal(t, 90.0, totals.CGST)
		assert.Equal(t, 90.0, totals.SGST)
		assert.Equal(t, 0.0, totals.IGST)
		assert.Equal(t, 1180.0, totals.GrandTotal)
	})

	t.Run("IGST charges the full percentage", func(t *testing.T) {
		totals := ComputeTotals([]LineItem{
			{AmountINR: 1000, IsGST: true, TaxType: TaxIGST, TaxPercent: 18},
		})

		assert.Equal(t, 0.0, totals.CGST)
		assert.Equal(t, 0.0, totals.SGST)
		assert.Equal(t, 180.0, totals.IGST)
		assert.Equal(t, 1180.0, totals.GrandTotal)
	})

	t.Run("taxable line without explicit scheme charges IGST", func(t *testing.T) {
		totals := ComputeTotals([]LineItem{
			{AmountINR: 200, IsGST: true, TaxPercent: 5},
		})

		assert.Equal(t, 10.0, totals.IGST)
		assert.Equal(t, 0.0, totals.CGST)
	})

	t.Run("untaxed lines only add to taxable", func(t *testing.T) {
		totals := ComputeTotals([]LineItem{
			{AmountINR: 500},
			{AmountINR: 250, TaxPercent: 18},
		})

		assert.Equal(t, 750.0, totals.Taxable)
		assert.Equal(t, 750.0, totals.GrandTotal)
	})

	t.Run("grand total equals the sum of its components", func(t *testing.T) {
		items := []LineItem{
			{AmountINR: 333.33, IsGST: true, TaxType: TaxGST, TaxPercent: 18},
			{AmountINR: 0.07, IsGST: true, TaxType: TaxGST, TaxPercent: 5},
			{AmountINR: 1234.56, IsGST: true, TaxType: TaxIGST, TaxPercent: 18},
			{AmountINR: 99.99},
		}

		totals := ComputeTotals(items)
		assert.InDelta(t, totals.Taxable+totals.CGST+totals.SGST+totals.IGST, totals.GrandTotal, 1e-9)
	})

	t.Run("repeated small lines do not drift", func(t *testing.T) {
		items := make([]LineItem, 1000)
		for i := range items {
			items[i] = LineItem{AmountINR: 0.1, IsGST: true, TaxType: TaxGST, TaxPercent: 18}
		}

		totals := ComputeTotals(items)
		assert.Equal(t, 100.0, totals.Taxable)
		assert.Equal(t, 9.0, totals.CGST)
		assert.Equal(t, 9.0, totals.SGST)
		assert.Equal(t, 118.0, totals.GrandTotal)
	})
}

func TestCompute(t *testing.T) {
	items, totals := Compute([]LineItem{
		{ChargeName: "SALE 18 % GST", Currency: "USD", Rate: 100, Qty: 2, ExRate: 83},
		{ChargeName: "DOCUMENTATION CHARGES", Currency: "INR", Rate: 1500, Qty: 1},
	})

	require.Len(t, items, 2)
	assert.Equal(t, 16600.0, items[0].AmountINR)
	assert.Equal(t, 200.0, items[0].AmountFC)
	assert.Equal(t, TaxGST, items[0].TaxType)
	assert.Equal(t, 1500.0, items[1].AmountINR)
	assert.False(t, items[1].IsGST)

	assert.Equal(t, 18100.0, totals.Taxable)
	assert.Equal(t, 1494.0, totals.CGST)
	assert.Equal(t, 1494.0, totals.SGST)
	assert.Equal(t, 0.0, totals.IGST)
	assert.Equal(t, 21088.0, totals.GrandTotal)
}

func TestChargeTable(t *testing.T) {
	t.Run("no charge is tagged under both schemes", func(t *testing.T) {
		for _, c := range Charges {
			if c.Taxable {
				assert.Contains(t, []TaxType{TaxGST, TaxIGST}, c.TaxType, c.Name)
			} else {
				assert.Equal(t, TaxNone, c.TaxType, c.Name)
				assert.Zero(t, c.Percent, c.Name)
			}
		}
	})

	t.Run("percentages are 0, 5 or 18", func(t *testing.T) {
		for _, c := range Charges {
			assert.Contains(t, []int{0, 5, 18}, c.Percent, c.Name)
		}
	})

	t.Run("lookup is exact-match only", func(t *testing.T) {
		_, ok := LookupCharge("SALE 18 % GST")
		assert.True(t, ok)

		_, ok = LookupCharge("sale 18 % gst")
		assert.False(t, ok)

		_, ok = LookupCharge("TOTALLY CUSTOM CHARGE")
		assert.False(t, ok)
	})
}
