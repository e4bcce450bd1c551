package model

import (
	"math"

	"github.com/terradyn/geomodel/pkg/errors"
)

// WaterUnitWeight is the unit weight of water in N/m3.
const WaterUnitWeight = 9800.0

// consistencyTol is the relative tolerance used when checking a supplied
// parameter against its value derived from parameters already set.
const consistencyTol = 1e-4

func consistent(a, b float64) bool {
	scale := math.Max(1.0, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= consistencyTol*scale
}

// TypeSoil is the type tag for the base soil model.
const TypeSoil = "soil"

// Soil models a single soil material.
//
// Strength and stiffness parameters are plain optional fields. The volume
// and weight parameters (void ratio, specific gravity, unit weights,
// relative density, saturation) are coupled: setting one derives the
// others where possible, and a value inconsistent with parameters already
// set is rejected with INCONSISTENT_PARAMETER. Unset parameters are nil
// and are subject to the exporter's null handling.
type Soil struct {
	Base

	// Strength parameters
	Phi      *float64 // friction angle [deg]
	Cohesion *float64 // [Pa]

	// Deformation parameters
	GMod          *float64 // shear modulus [Pa]
	PoissonsRatio *float64

	// Void ratio bounds
	EMin *float64
	EMax *float64

	// Critical state parameters
	ECr0    float64
	PCr0    float64
	LambCrl float64

	// Coupled volume and weight parameters, set through methods.
	eCurr           *float64
	specificGravity *float64
	unitDryWeight   *float64 // [N/m3]
	unitSatWeight   *float64 // [N/m3]
	relativeDensity *float64 // [decimal]
	saturation      *float64 // volume of water to volume of voids
}

// NewSoil creates an empty soil.
func NewSoil() *Soil { return &Soil{} }

// Category returns the soils document partition.
func (s *Soil) Category() string { return CategorySoils }

// Type returns the soil type tag.
func (s *Soil) Type() string { return TypeSoil }

// ECurr returns the current void ratio, or nil when unset.
func (s *Soil) ECurr() *float64 { return s.eCurr }

// SpecificGravity returns the specific gravity of the solids, or nil when unset.
func (s *Soil) SpecificGravity() *float64 { return s.specificGravity }

// UnitDryWeight returns the dry unit weight [N/m3], or nil when unset.
func (s *Soil) UnitDryWeight() *float64 { return s.unitDryWeight }

// UnitSatWeight returns the saturated unit weight [N/m3], or nil when unset.
func (s *Soil) UnitSatWeight() *float64 { return s.unitSatWeight }

// RelativeDensity returns the relative density [decimal], or nil when unset.
func (s *Soil) RelativeDensity() *float64 { return s.relativeDensity }

// Saturation returns the degree of saturation [decimal], or nil when unset.
func (s *Soil) Saturation() *float64 { return s.saturation }

// UnitWeight returns the saturated unit weight when the soil is saturated,
// otherwise the dry unit weight. Returns nil when the applicable weight is unset.
func (s *Soil) UnitWeight() *float64 {
	if s.saturation != nil && *s.saturation > 0 {
		return s.unitSatWeight
	}
	return s.unitDryWeight
}

// SetECurr assigns the current void ratio.
// Rejects values inconsistent with relative density and the void ratio
// bounds. Derives the dry unit weight or specific gravity when the
// counterpart is already known.
func (s *Soil) SetECurr(v float64) error {
	if s.relativeDensity != nil && s.EMin != nil && s.EMax != nil {
		expect := *s.EMax - *s.relativeDensity*(*s.EMax-*s.EMin)
		if !consistent(expect, v) {
			return errors.New(errors.ErrCodeInconsistent, "void ratio %.4f inconsistent with relative density (expected %.4f)", v, expect)
		}
	}
	s.eCurr = &v
	switch {
	case s.specificGravity != nil && s.unitDryWeight == nil:
		gamma := *s.specificGravity * WaterUnitWeight / (1 + v)
		s.unitDryWeight = &gamma
	case s.unitDryWeight != nil && s.specificGravity == nil:
		gs := (1 + v) * *s.unitDryWeight / WaterUnitWeight
		s.specificGravity = &gs
	}
	return nil
}

// SetSpecificGravity assigns the specific gravity of the solids.
// Derives the dry unit weight (or void ratio) when the void ratio (or dry
// unit weight) is already known, and rejects values inconsistent with both.
func (s *Soil) SetSpecificGravity(v float64) error {
	if s.eCurr != nil && s.unitDryWeight != nil {
		expect := (1 + *s.eCurr) * *s.unitDryWeight / WaterUnitWeight
		if !consistent(expect, v) {
			return errors.New(errors.ErrCodeInconsistent, "specific gravity %.4f inconsistent with unit dry weight and void ratio (expected %.4f)", v, expect)
		}
	}
	s.specificGravity = &v
	switch {
	case s.eCurr != nil && s.unitDryWeight == nil:
		gamma := v * WaterUnitWeight / (1 + *s.eCurr)
		s.unitDryWeight = &gamma
	case s.unitDryWeight != nil && s.eCurr == nil:
		e := v * WaterUnitWeight / *s.unitDryWeight - 1
		s.eCurr = &e
	}
	return nil
}

// SetUnitDryWeight assigns the dry unit weight [N/m3].
// Derives the specific gravity (or void ratio) when the void ratio (or
// specific gravity) is already known, and rejects values inconsistent with both.
func (s *Soil) SetUnitDryWeight(v float64) error {
	if v <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unit dry weight must be positive, got %.4f", v)
	}
	if s.eCurr != nil && s.specificGravity != nil {
		expect := *s.specificGravity * WaterUnitWeight / (1 + *s.eCurr)
		if !consistent(expect, v) {
			return errors.New(errors.ErrCodeInconsistent, "unit dry weight %.1f inconsistent with specific gravity and void ratio (expected %.1f)", v, expect)
		}
	}
	s.unitDryWeight = &v
	switch {
	case s.eCurr != nil && s.specificGravity == nil:
		gs := (1 + *s.eCurr) * v / WaterUnitWeight
		s.specificGravity = &gs
	case s.specificGravity != nil && s.eCurr == nil:
		e := *s.specificGravity * WaterUnitWeight / v - 1
		s.eCurr = &e
	}
	return nil
}

// SetUnitSatWeight assigns the saturated unit weight [N/m3].
// Derives the degree of saturation when the dry unit weight and void
// ratio are already known, and rejects weights that would imply a
// saturation above 1.
func (s *Soil) SetUnitSatWeight(v float64) error {
	if v <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "unit sat weight must be positive, got %.4f", v)
	}
	if s.unitDryWeight != nil && v < *s.unitDryWeight {
		return errors.New(errors.ErrCodeInconsistent, "unit sat weight %.1f below unit dry weight %.1f", v, *s.unitDryWeight)
	}
	var derived *float64
	if s.unitDryWeight != nil && s.eCurr != nil && s.saturation == nil {
		voidVolume := *s.eCurr / (1 + *s.eCurr)
		if voidVolume > 0 {
			sat := (v - *s.unitDryWeight) / (WaterUnitWeight * voidVolume)
			if sat > 1 {
				if !consistent(sat, 1) {
					return errors.New(errors.ErrCodeInconsistent, "unit sat weight %.1f implies saturation %.4f above full saturation", v, sat)
				}
				sat = 1
			}
			derived = &sat
		}
	}
	s.unitSatWeight = &v
	if derived != nil {
		s.saturation = derived
	}
	return nil
}

// SetRelativeDensity assigns the relative density [decimal].
// Rejects values inconsistent with the current void ratio and bounds.
func (s *Soil) SetRelativeDensity(v float64) error {
	if s.eCurr != nil && s.EMin != nil && s.EMax != nil && *s.EMax != *s.EMin {
		expect := (*s.EMax - *s.eCurr) / (*s.EMax - *s.EMin)
		if !consistent(expect, v) {
			return errors.New(errors.ErrCodeInconsistent, "relative density %.4f inconsistent with void ratio (expected %.4f)", v, expect)
		}
	}
	s.relativeDensity = &v
	return nil
}

// SetSaturation assigns the degree of saturation [decimal, 0..1].
func (s *Soil) SetSaturation(v float64) error {
	if v < 0 || v > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "saturation must be within [0, 1], got %.4f", v)
	}
	s.saturation = &v
	return nil
}

// Porosity returns the porosity, or nil when the void ratio is unset.
func (s *Soil) Porosity() *float64 {
	if s.eCurr == nil {
		return nil
	}
	p := *s.eCurr / (1 + *s.eCurr)
	return &p
}

// PhiRadians returns the friction angle in radians.
// Returns 0 when the friction angle is unset.
func (s *Soil) PhiRadians() float64 {
	if s.Phi == nil {
		return 0
	}
	return *s.Phi * math.Pi / 180
}

// K0 returns the at-rest earth pressure coefficient (Jaky 1944).
func (s *Soil) K0() float64 {
	return 1 - math.Sin(s.PhiRadians())
}

// ECritical returns the critical state void ratio at mean stress p.
func (s *Soil) ECritical(p float64) float64 {
	return s.ECr0 - s.LambCrl*math.Log(p/s.PCr0)
}
