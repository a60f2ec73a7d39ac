package invoice

// TaxType classifies a charge under exactly one GST scheme.
type TaxType string

const (
	TaxGST  TaxType = "GST"  // intra-state, split evenly into CGST + SGST
	TaxIGST TaxType = "IGST" // inter-state, full percentage
	TaxNone TaxType = ""
)

// Charge is one entry of the static charge-code table. A charge is
// tagged GST or IGST exclusively, never both.
type Charge struct {
	Name    string  `json:"name"`
	Taxable bool    `json:"isGST"`
	TaxType TaxType `json:"taxType,omitempty"`
	Percent int     `json:"taxPercent"`
}

func gst(name string, percent int) Charge {
	return Charge{Name: name, Taxable: true, TaxType: TaxGST, Percent: percent}
}

func igst(name string, percent int) Charge {
	return Charge{Name: name, Taxable: true, TaxType: TaxIGST, Percent: percent}
}

func untaxed(name string) Charge {
	return Charge{Name: name}
}

// Charges is the static, read-only charge-code table. Names are kept
// exactly as they appear on historical invoices, typos included, since
// classification is by exact match.
var Charges = []Charge{
	untaxed("AIR IMP. FREIGHT CHARGES"),
	untaxed("BL CHARGES"),
	gst("BL MANIFEST CHARGES -GST 18%", 18),
	gst("BOND FORMALITIES CHARGES GST-18%", 18),
	gst("CFS CHARGES GST -18%", 18),
	igst("CFS CHARGES IGST -18%", 18),
	igst("CFS CHRGES IGST -18%", 18),
	igst("CLEARANCE CHARGES IGST -18%", 18),
	gst("CONSOLIDATION CHARGES GST-18%", 18),
	igst("CONSOLIDATION CHARGES IGST-18%", 18),
	igst("CONT. IMBALANCING CHARGES IGST 18%", 18),
	untaxed("CONT. SEAL & MANDATORY USAGE CHARGES"),
	gst("CONT. SEAL CHARGES GST-18%", 18),
	untaxed("Cargo Handling Charges-18%"),
	igst("DETENTION CHARGES IGST 18%", 18),
	gst("DETENTION CHARGES-GST 18%", 18),
	gst("DO CHARGES GST -18%", 18),
	igst("DO CHARGES IGST -18%", 18),
	untaxed("DO EXTENSION"),
	untaxed("DO REVALIDATION"),
	igst("DOCK DESTUFFING CHARGES-IGST18%", 18),
	untaxed("DOCUMENTATION CHARGES"),
	gst("DPD REGISTRATION CHARGES- GST 18%", 18),
	gst("EX-WORK CHARGES GST -18%", 18),
	gst("EXAMINATION CHARGES GST-18%", 18),
	gst("EXP. AFS CHARGES- GST 18%", 18),
	gst("EXP. EMERGENCY SURCHARGES- GST18%", 18),
	gst("EXP. ENS CHARGES- GST 18%", 18),
	gst("EXP. FAF CHARGES- GST 18%", 18),
	gst("EXP. GRI CHARGES- GST 18%", 18),
	gst("EXP. PCS CHARGES- GST 18%", 18),
	gst("EXPORT CONST. FACILITATION & ADMIN CHARGES GST-18%", 18),
	gst("FCA CHARGES GST-18%", 18),
	gst("HAULAGE CHARGES GST-18%", 18),
	igst("HAULAGE CHARGES IGST-18%", 18),
	untaxed("HAZ CHARGES"),
	gst("IGM CHARGES GST-18%", 18),
	igst("IGM CHARGES IGST-18%", 18),
	igst("IGST SALE 18%", 18),
	igst("IGST SALE 5%", 5),
	gst("INSURANCE CHARGES GST -18%", 18),
	gst("OCEAN FREIGHT CHARGES GST -5%", 5),
	igst("OCEAN FREIGHT CHARGES IGST -5%", 5),
	igst("OFF DOCK CHARGES IGST-18%", 18),
	untaxed("ON CARRIAGE CHARGES"),
	gst("OPEN TOP HANDLING CHARGES GST-5%", 5),
	untaxed("Ocean Freight"),
	gst("PACKING CHARGES- GST 18%", 18),
	gst("PORT CONGESTION CHARGE GST 18%", 18),
	gst("PORT STORAGE GST-18%", 18),
	untaxed("RTO CHARGES"),
	gst("SALE 18 % GST", 18),
	gst("SALE 5% GST", 5),
	gst("SCANNING CHARGES GST-18%", 18),
	igst("SCANNING CHARGES IGST-18%", 18),
	gst("SHIPPING LINE CHARGES GST -18%", 18),
	igst("SHIPPING LINE CHARGES IGST -18%", 18),
	untaxed("STAMP DUTY -0%"),
	gst("SURRENDER BL CHARGES -GST18%", 18),
	gst("TERMINAL HANDLING CHARGES GST-18%", 18),
	igst("TERMINAL HANDLING CHARGES IGST", 18),
	gst("THC GST -18%", 18),
	igst("THC IGST-18%", 18),
	gst("TOLL CHARGES GST-18%", 18),
	gst("VESSEL CERTIFICATE CHARGES GST-18%", 18),
	gst("VGM CHARGES GST-18%", 18),
	igst("WEIGHTMENT CHARGES IGST-18%", 18),
}

var chargeByName = func() map[string]Charge {
	m := make(map[string]Charge, len(Charges))
	for _, c := range Charges {
		m[c.Name] = c
	}
	return m
}()

// LookupCharge finds a charge by exact name match. Free-text charge
// names not in the table return ok=false and default to untaxed.
func LookupCharge(name string) (Charge, bool) {
	c, ok := chargeByName[name]
	return c, ok
}
