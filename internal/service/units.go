package service

import (
	"math"

	"github.com/saidtaznakhte/Vitatrak/internal/model"
)

const (
	kgToLbs    = 2.20462
	cmToInches = 0.393701
)

// WeightForDisplay converts a canonical kg value to the profile's
// display unit, rounded to one decimal.
func WeightForDisplay(kg float64, system model.UnitSystem) float64 {
	if system == model.UnitsImperial {
		return round1(kg * kgToLbs)
	}
	return round1(kg)
}

// WeightToKg converts a display-unit value back to canonical kg.
func WeightToKg(value float64, system model.UnitSystem) float64 {
	if system == model.UnitsImperial {
		return value / kgToLbs
	}
	return value
}

func WeightUnit(system model.UnitSystem) string {
	if system == model.UnitsImperial {
		return "lbs"
	}
	return "kg"
}

// HeightParts is the display form of a height: Meters for metric,
// Feet/Inches for imperial. Unused fields stay zero.
type HeightParts struct {
	Meters float64 `json:"meters,omitempty"`
	Feet   int     `json:"feet,omitempty"`
	Inches int     `json:"inches,omitempty"`
}

/// HeightForDisplay never errors: zero or absent height yields a zeroed
// structure so settings screens can render an empty form.
func HeightForDisplay(cm float64, system model.UnitSystem) HeightParts {
	if system == model.UnitsImperial {
		if cm <= 0 {
			return HeightParts{}
		}
		totalInches := cm * cmToInches
		return HeightParts{
			Feet:   int(math.Floor(totalInches / 12)),
			Inches: int(math.Round(math.Mod(totalInches, 12))),
		}
	}
	if cm <= 0 {
		return HeightParts{}
	}
	return HeightParts{Meters: round2(cm / 100)}
}

// HeightToCm inverts HeightForDisplay; absent parts read as zero.
func HeightToCm(parts HeightParts, system model.UnitSystem) float64 {
	if system == model.UnitsImperial {
		totalInches := float64(parts.Feet)*12 + float64(parts.Inches)
		return totalInches / cmToInches
	}
	return parts.Meters * 100
}

func HeightUnit(system model.UnitSystem) string {
	if system == model.UnitsImperial {
		return "ft/in"
	}
	return "m"
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
