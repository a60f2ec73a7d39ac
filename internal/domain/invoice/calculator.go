package invoice

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Classify fills the tax fields of a line from the charge table when the
// charge name matches exactly. Unmatched names are left as submitted,
// so a preparer can tax a free-text charge explicitly.
func Classify(item LineItem) LineItem {
	if c, ok := LookupCharge(item.ChargeName); ok {
		item.IsGST = c.Taxable
		item.TaxType = c.TaxType
		item.TaxPercent = float64(c.Percent)
	}
	return item
}

// ComputeAmounts derives the INR and foreign-currency amounts of a line.
// INR lines force the exchange rate to 1.0 and carry no FC amount
// regardless of what was submitted.
func ComputeAmounts(item LineItem) LineItem {
	rate := decimal.NewFromFloat(item.Rate)
	qty := decimal.NewFromFloat(item.Qty)
	base := rate.Mul(qty)

	if item.Currency == "" || item.Currency == "INR" {
		item.ExRate = 1.0
		item.AmountINR, _ = base.Float64()
		item.AmountFC = 0
		return item
	}

	ex := decimal.NewFromFloat(item.ExRate)
	if ex.IsZero() {
		ex = decimal.NewFromInt(1)
		item.ExRate = 1.0
	}
	item.AmountINR, _ = base.Mul(ex).Float64()
	item.AmountFC, _ = base.Float64()
	return item
}

// ComputeTotals aggregates lines into invoice totals. Accumulation runs
// in decimal and rounds to 2 places once at the end, so repeated small
// lines cannot drift at the penny level. Per line, GST splits the
// percentage evenly into CGST and SGST; IGST (or a taxable line with no
// explicit scheme) charges the full percentage as IGST; a line never
// carries both.
func ComputeTotals(items []LineItem) Totals {
	taxable := decimal.Zero
	cgst := decimal.Zero
	sgst := decimal.Zero
	igstTotal := decimal.Zero

	for _, item := range items {
		base := decimal.NewFromFloat(item.AmountINR)
		taxable = taxable.Add(base)

		if !item.IsGST {
			continue
		}

		pct := decimal.NewFromFloat(item.TaxPercent)
		switch item.TaxType {
		case TaxGST:
			half := base.Mul(pct.Div(decimal.NewFromInt(2))).Div(hundred)
			cgst = cgst.Add(half)
			sgst = sgst.Add(half)
		default:
			igstTotal = igstTotal.Add(base.Mul(pct).Div(hundred))
		}
	}

	// Round components first and sum the rounded values, so the emitted
	// grand total always equals the sum of the emitted components.
	taxable = taxable.Round(2)
	cgst = cgst.Round(2)
	sgst = sgst.Round(2)
	igstTotal = igstTotal.Round(2)
	grand := taxable.Add(cgst).Add(sgst).Add(igstTotal)

	return Totals{
		Taxable:    toFloat(taxable),
		CGST:       toFloat(cgst),
		SGST:       toFloat(sgst),
		IGST:       toFloat(igstTotal),
		GrandTotal: toFloat(grand),
	}
}

// Compute normalizes every line (classification + amounts) and derives
// the totals in one pass.
func Compute(items []LineItem) ([]LineItem, Totals) {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = ComputeAmounts(Classify(item))
	}
	return out, ComputeTotals(out)
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
