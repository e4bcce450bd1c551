package schema

import (
	"fmt"

	"github.com/terradyn/geomodel/pkg/model"
)

// fptr unwraps an optional float for Describe, mapping nil to unset.
func fptr(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func iptr(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

// setF coerces a decoded value to float64 and hands it to assign.
func setF(v any, assign func(float64) error) error {
	f, ok := toFloat(v)
	if !ok {
		return fmt.Errorf("expected number, got %T", v)
	}
	return assign(f)
}

func setI(v any, assign func(int) error) error {
	f, ok := toFloat(v)
	if !ok || f != float64(int(f)) {
		return fmt.Errorf("expected integer, got %v", v)
	}
	return assign(int(f))
}

func toFloatSlice(v any) ([]float64, error) {
	switch s := v.(type) {
	case []float64:
		return s, nil
	case []any:
		out := make([]float64, len(s))
		for i, e := range s {
			f, ok := toFloat(e)
			if !ok {
				return nil, fmt.Errorf("expected number at index %d, got %T", i, e)
			}
			out[i] = f
		}
		return out, nil
	}
	return nil, fmt.Errorf("expected list of numbers, got %T", v)
}

func soilDescriptor() *Descriptor {
	soil := func(o model.Object) *model.Soil { return o.(*model.Soil) }
	return &Descriptor{
		Category: model.CategorySoils,
		BaseType: model.TypeSoil,
		New: func(typ string) (model.Object, bool) {
			if typ == model.TypeSoil {
				return model.NewSoil(), true
			}
			return nil, false
		},
		Fields: []Field{
			{Name: "g_mod", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).GMod) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).GMod = &f; return nil })
				}},
			{Name: "phi", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).Phi) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).Phi = &f; return nil })
				}},
			{Name: "cohesion", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).Cohesion) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).Cohesion = &f; return nil })
				}},
			{Name: "poissons_ratio", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).PoissonsRatio) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).PoissonsRatio = &f; return nil })
				}},
			{Name: "e_min", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).EMin) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).EMin = &f; return nil })
				}},
			{Name: "e_max", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).EMax) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).EMax = &f; return nil })
				}},
			// The coupled parameters go through their setters so a
			// reimported soil re-derives the same dependent values.
			{Name: "e_curr", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).ECurr()) },
				Set: func(o model.Object, v any) error { return setF(v, soil(o).SetECurr) }},
			{Name: "specific_gravity", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).SpecificGravity()) },
				Set: func(o model.Object, v any) error { return setF(v, soil(o).SetSpecificGravity) }},
			{Name: "unit_dry_weight", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).UnitDryWeight()) },
				Set: func(o model.Object, v any) error { return setF(v, soil(o).SetUnitDryWeight) }},
			{Name: "unit_sat_weight", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).UnitSatWeight()) },
				Set: func(o model.Object, v any) error { return setF(v, soil(o).SetUnitSatWeight) }},
			{Name: "relative_density", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).RelativeDensity()) },
				Set: func(o model.Object, v any) error { return setF(v, soil(o).SetRelativeDensity) }},
			{Name: "saturation", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(soil(o).Saturation()) },
				Set: func(o model.Object, v any) error { return setF(v, soil(o).SetSaturation) }},
			{Name: "e_cr0", Kind: KindScalar, Default: 0.0,
				Get: func(o model.Object) any { return soil(o).ECr0 },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).ECr0 = f; return nil })
				}},
			{Name: "p_cr0", Kind: KindScalar, Default: 0.0,
				Get: func(o model.Object) any { return soil(o).PCr0 },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).PCr0 = f; return nil })
				}},
			{Name: "lamb_crl", Kind: KindScalar, Default: 0.0,
				Get: func(o model.Object) any { return soil(o).LambCrl },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { soil(o).LambCrl = f; return nil })
				}},
		},
	}
}

func soilProfileDescriptor() *Descriptor {
	profile := func(o model.Object) *model.SoilProfile { return o.(*model.SoilProfile) }
	return &Descriptor{
		Category: model.CategorySoilProfiles,
		BaseType: model.TypeSoilProfile,
		New: func(typ string) (model.Object, bool) {
			if typ == model.TypeSoilProfile {
				return model.NewSoilProfile(), true
			}
			return nil, false
		},
		Fields: []Field{
			{Name: "gwl", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(profile(o).GWL) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { profile(o).GWL = &f; return nil })
				}},
			{Name: "unit_weight_water", Kind: KindScalar, Default: model.WaterUnitWeight,
				Get: func(o model.Object) any { return profile(o).UnitWeightWater },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { profile(o).UnitWeightWater = f; return nil })
				}},
			{Name: "height", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(profile(o).Height()) },
				Set: func(o model.Object, v any) error { return setF(v, profile(o).SetHeight) }},
			{Name: "layers", Kind: KindLayers, Ref: model.CategorySoils,
				Get: func(o model.Object) any {
					layers := profile(o).Layers()
					if len(layers) == 0 {
						return nil
					}
					return layers
				},
				Set: func(o model.Object, v any) error {
					for _, l := range v.([]model.Layer) {
						if err := profile(o).AddLayer(l.Depth, l.Soil); err != nil {
							return err
						}
					}
					return nil
				}},
		},
	}
}

func foundationDescriptor() *Descriptor {
	fd := func(o model.Object) *model.Foundation { return o.(*model.Foundation) }
	return &Descriptor{
		Category: model.CategoryFoundations,
		BaseType: model.TypeFoundation,
		New: func(typ string) (model.Object, bool) {
			switch typ {
			case model.TypeFoundation:
				return model.NewFoundation(), true
			case model.TypeRaftFoundation:
				return model.NewRaftFoundation(), true
			case model.TypePadFoundation:
				return model.NewPadFoundation(), true
			}
			return nil, false
		},
		Fields: []Field{
			{Name: "width", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).Width) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).Width = &f; return nil })
				}},
			{Name: "length", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).Length) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).Length = &f; return nil })
				}},
			{Name: "depth", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).Depth) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).Depth = &f; return nil })
				}},
			{Name: "height", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).Height) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).Height = &f; return nil })
				}},
			{Name: "density", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).Density) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).Density = &f; return nil })
				}},
			{Name: "n_pads_l", Kind: KindScalar,
				Get: func(o model.Object) any { return iptr(fd(o).NPadsL) },
				Set: func(o model.Object, v any) error {
					return setI(v, func(n int) error { fd(o).NPadsL = &n; return nil })
				}},
			{Name: "n_pads_w", Kind: KindScalar,
				Get: func(o model.Object) any { return iptr(fd(o).NPadsW) },
				Set: func(o model.Object, v any) error {
					return setI(v, func(n int) error { fd(o).NPadsW = &n; return nil })
				}},
			{Name: "pad_length", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).PadLength) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).PadLength = &f; return nil })
				}},
			{Name: "pad_width", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(fd(o).PadWidth) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { fd(o).PadWidth = &f; return nil })
				}},
			{Name: "coords", Kind: KindNested,
				Get: func(o model.Object) any {
					if c := fd(o).Coords; c != nil {
						return c.AsMap()
					}
					return nil
				},
				Set: func(o model.Object, v any) error {
					m, ok := v.(map[string]any)
					if !ok {
						return fmt.Errorf("expected mapping, got %T", v)
					}
					c, err := model.CoordsFromMap(m)
					if err != nil {
						return err
					}
					fd(o).Coords = c
					return nil
				}},
			{Name: "building", Kind: KindReference, Ref: model.CategoryBuildings,
				Get: func(o model.Object) any {
					if b := fd(o).Building(); b != nil {
						return b
					}
					return nil
				},
				Set: func(o model.Object, v any) error {
					b, ok := v.(*model.Building)
					if !ok {
						return fmt.Errorf("expected building, got %T", v)
					}
					fd(o).SetBuilding(b)
					return nil
				}},
		},
	}
}

func buildingDescriptor() *Descriptor {
	bld := func(o model.Object) *model.Building { return o.(*model.Building) }
	return &Descriptor{
		Category: model.CategoryBuildings,
		BaseType: model.TypeBuilding,
		New: func(typ string) (model.Object, bool) {
			switch typ {
			case model.TypeBuilding:
				return model.NewBuilding(), true
			case model.TypeStructure:
				return model.NewStructure(), true
			}
			return nil, false
		},
		Fields: []Field{
			{Name: "floor_length", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(bld(o).FloorLength) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { bld(o).FloorLength = &f; return nil })
				}},
			{Name: "floor_width", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(bld(o).FloorWidth) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { bld(o).FloorWidth = &f; return nil })
				}},
			{Name: "interstorey_heights", Kind: KindScalar,
				Get: func(o model.Object) any {
					if hs := bld(o).InterstoreyHeights; len(hs) > 0 {
						return hs
					}
					return nil
				},
				Set: func(o model.Object, v any) error {
					hs, err := toFloatSlice(v)
					if err != nil {
						return err
					}
					bld(o).InterstoreyHeights = hs
					return nil
				}},
			{Name: "h_eff", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(bld(o).HEff) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { bld(o).HEff = &f; return nil })
				}},
			{Name: "mass_eff", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(bld(o).MassEff) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { bld(o).MassEff = &f; return nil })
				}},
			{Name: "t_fixed", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(bld(o).TFixed) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { bld(o).TFixed = &f; return nil })
				}},
			{Name: "mass_ratio", Kind: KindScalar,
				Get: func(o model.Object) any { return fptr(bld(o).MassRatio) },
				Set: func(o model.Object, v any) error {
					return setF(v, func(f float64) error { bld(o).MassRatio = &f; return nil })
				}},
			{Name: "foundation", Kind: KindReference, Ref: model.CategoryFoundations,
				Get: func(o model.Object) any {
					if f := bld(o).Foundation(); f != nil {
						return f
					}
					return nil
				},
				Set: func(o model.Object, v any) error {
					f, ok := v.(*model.Foundation)
					if !ok {
						return fmt.Errorf("expected foundation, got %T", v)
					}
					bld(o).SetFoundation(f)
					return nil
				}},
		},
	}
}
