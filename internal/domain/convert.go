package domain

// kgPerLb is the exact international avoirdupois pound.
const kgPerLb = 0.45359237

// Weight units accepted on profile input.
const (
	UnitKg = "kg"
	UnitLb = "lb"
)

// WeightToKg normalises a profile weight to kilograms. ok is false for units
// other than UnitKg and UnitLb.
func WeightToKg(v float64, unit string) (kg float64, ok bool) {
	switch unit {
	case UnitKg:
		return v, true
	case UnitLb:
		return v * kgPerLb, true
	}
	return 0, false
}
