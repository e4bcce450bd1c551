package model

import (
	"math"
	"testing"

	"github.com/terradyn/geomodel/pkg/errors"
)

func TestSoilDerivesDryWeight(t *testing.T) {
	s := NewSoil()
	if err := s.SetECurr(0.7); err != nil {
		t.Fatalf("SetECurr: %v", err)
	}
	if err := s.SetSpecificGravity(2.95); err != nil {
		t.Fatalf("SetSpecificGravity: %v", err)
	}
	got := s.UnitDryWeight()
	if got == nil {
		t.Fatal("UnitDryWeight() = nil, want derived value")
	}
	// gamma_d = Gs * gamma_w / (1 + e) = 2.95 * 9800 / 1.7
	if math.Abs(*got-17000)/17000 > 0.01 {
		t.Errorf("UnitDryWeight() = %.1f, want within 1%% of 17000", *got)
	}
}

func TestSoilDerivesVoidRatio(t *testing.T) {
	s := NewSoil()
	if err := s.SetSpecificGravity(2.65); err != nil {
		t.Fatalf("SetSpecificGravity: %v", err)
	}
	if err := s.SetUnitDryWeight(16000); err != nil {
		t.Fatalf("SetUnitDryWeight: %v", err)
	}
	got := s.ECurr()
	if got == nil {
		t.Fatal("ECurr() = nil, want derived value")
	}
	want := 2.65*WaterUnitWeight/16000 - 1
	if math.Abs(*got-want) > 1e-9 {
		t.Errorf("ECurr() = %.6f, want %.6f", *got, want)
	}
}

func TestSoilRejectsInconsistentDryWeight(t *testing.T) {
	s := NewSoil()
	if err := s.SetECurr(0.7); err != nil {
		t.Fatalf("SetECurr: %v", err)
	}
	if err := s.SetSpecificGravity(2.95); err != nil {
		t.Fatalf("SetSpecificGravity: %v", err)
	}
	err := s.SetUnitDryWeight(99999)
	if !errors.Is(err, errors.ErrCodeInconsistent) {
		t.Errorf("SetUnitDryWeight(99999) = %v, want INCONSISTENT_PARAMETER", err)
	}

	// The derived value itself is accepted.
	if err := s.SetUnitDryWeight(*s.UnitDryWeight()); err != nil {
		t.Errorf("re-setting the derived dry weight failed: %v", err)
	}
}

func TestSoilRejectsInconsistentVoidRatio(t *testing.T) {
	s := NewSoil()
	eMin, eMax := 0.4, 1.0
	s.EMin, s.EMax = &eMin, &eMax
	if err := s.SetRelativeDensity(0.5); err != nil {
		t.Fatalf("SetRelativeDensity: %v", err)
	}
	// Consistent: e = 1.0 - 0.5*(1.0-0.4) = 0.7
	if err := s.SetECurr(0.7); err != nil {
		t.Errorf("SetECurr(0.7) = %v, want nil", err)
	}
	s2 := NewSoil()
	s2.EMin, s2.EMax = &eMin, &eMax
	if err := s2.SetRelativeDensity(0.5); err != nil {
		t.Fatalf("SetRelativeDensity: %v", err)
	}
	if err := s2.SetECurr(0.9); !errors.Is(err, errors.ErrCodeInconsistent) {
		t.Errorf("SetECurr(0.9) = %v, want INCONSISTENT_PARAMETER", err)
	}
}

func TestSoilSaturationBounds(t *testing.T) {
	s := NewSoil()
	if err := s.SetSaturation(1.5); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetSaturation(1.5) = %v, want INVALID_INPUT", err)
	}
	if err := s.SetSaturation(0.8); err != nil {
		t.Errorf("SetSaturation(0.8) = %v", err)
	}
}

func TestSoilDerivesSaturation(t *testing.T) {
	s := NewSoil()
	if err := s.SetECurr(0.7); err != nil {
		t.Fatalf("SetECurr: %v", err)
	}
	if err := s.SetSpecificGravity(2.65); err != nil {
		t.Fatalf("SetSpecificGravity: %v", err)
	}
	dry := *s.UnitDryWeight()
	voidVolume := 0.7 / 1.7

	// Half the void volume filled with water.
	if err := s.SetUnitSatWeight(dry + 0.5*WaterUnitWeight*voidVolume); err != nil {
		t.Fatalf("SetUnitSatWeight: %v", err)
	}
	sat := s.Saturation()
	if sat == nil {
		t.Fatal("Saturation() = nil, want derived value")
	}
	if math.Abs(*sat-0.5) > 1e-9 {
		t.Errorf("Saturation() = %.6f, want 0.5", *sat)
	}
}

func TestSoilRejectsImpossibleSatWeight(t *testing.T) {
	s := NewSoil()
	if err := s.SetECurr(0.7); err != nil {
		t.Fatalf("SetECurr: %v", err)
	}
	if err := s.SetSpecificGravity(2.65); err != nil {
		t.Fatalf("SetSpecificGravity: %v", err)
	}

	// More than all voids filled with water is impossible.
	dry := *s.UnitDryWeight()
	err := s.SetUnitSatWeight(dry + 2*WaterUnitWeight*0.7/1.7)
	if !errors.Is(err, errors.ErrCodeInconsistent) {
		t.Errorf("SetUnitSatWeight = %v, want INCONSISTENT_PARAMETER", err)
	}
	if s.UnitSatWeight() != nil || s.Saturation() != nil {
		t.Error("rejected sat weight left partial state behind")
	}

	// Exactly full saturation is the limit case and is accepted.
	if err := s.SetUnitSatWeight(dry + WaterUnitWeight*0.7/1.7); err != nil {
		t.Errorf("SetUnitSatWeight(full saturation) = %v", err)
	}
	if sat := s.Saturation(); sat == nil || math.Abs(*sat-1) > 1e-9 {
		t.Errorf("Saturation() = %v, want 1", sat)
	}
}

func TestSoilUnitWeightSelection(t *testing.T) {
	s := NewSoil()
	if err := s.SetUnitDryWeight(16000); err != nil {
		t.Fatalf("SetUnitDryWeight: %v", err)
	}
	if err := s.SetUnitSatWeight(19000); err != nil {
		t.Fatalf("SetUnitSatWeight: %v", err)
	}
	if got := s.UnitWeight(); got == nil || *got != 16000 {
		t.Errorf("UnitWeight() = %v, want dry weight for unsaturated soil", got)
	}
	if err := s.SetSaturation(1.0); err != nil {
		t.Fatalf("SetSaturation: %v", err)
	}
	if got := s.UnitWeight(); got == nil || *got != 19000 {
		t.Errorf("UnitWeight() = %v, want saturated weight", got)
	}
}

func TestSoilK0(t *testing.T) {
	s := NewSoil()
	phi := 30.0
	s.Phi = &phi
	if got, want := s.K0(), 0.5; math.Abs(got-want) > 1e-9 {
		t.Errorf("K0() = %.6f, want %.6f", got, want)
	}
}
