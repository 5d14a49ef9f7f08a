package services

import "math"

// Round2 rounds half away from zero to 2 decimals (money).
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round4 rounds half away from zero to 4 decimals (area).
func Round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

// Area returns the painted surface in m² for a batch of identical panels.
// Dimensions are millimeters. Sides outside {1,2} fall back to 2 (the
// catalog default); quantity below 1 counts as 1.
func Area(lengthMM, widthMM float64, quantity, sides int) float64 {
	if quantity < 1 {
		quantity = 1
	}
	if sides != 1 && sides != 2 {
		sides = 2
	}
	return Round4(lengthMM * widthMM * float64(quantity) * float64(sides) / 1_000_000)
}

// ItemTotal is the line total for an order item.
func ItemTotal(m2, pricePerM2 float64) float64 {
	return Round2(m2 * pricePerM2)
}

// LaborCost is the cost of a work log entry.
func LaborCost(hours, hourlyRate float64) float64 {
	return Round2(hours * hourlyRate)
}

// PurchaseTotal is the total of a material purchase.
func PurchaseTotal(quantity, unitPrice float64) float64 {
	return Round2(quantity * unitPrice)
}
