// Package model defines the geotechnical domain objects: soils, soil
// profiles, foundations, and buildings.
//
// Every object carries a category (its document partition), an integer id
// assigned by the caller before export, and an optional name. Objects
// reference each other rather than embedding copies: a soil profile layer
// points to a soil, and a building and its foundation hold a two-way link
// that a single setter call keeps consistent on both sides.
//
// The package enforces the structural invariants of the data model, such
// as strictly increasing layer depths and coupled soil parameter
// consistency, and leaves serialization to the schema and ecp packages.
package model
