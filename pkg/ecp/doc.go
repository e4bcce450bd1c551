// Package ecp serializes geotechnical object graphs to and from the ecp
// document format.
//
// # Overview
//
// An ecp document is a single JSON mapping that captures a set of model
// objects together with every object they reference. The format is
// designed for:
//
//   - Identifier-consistent round-tripping: import(export(G)) yields a
//     graph isomorphic to G under (category, id) identity
//   - Sharing without duplication: a soil referenced by several profile
//     layers appears exactly once
//   - Forward compatibility: older readers tolerate attribute keys and
//     categories written by newer tooling
//
// # Document Format
//
// Metadata keys and category blocks share the top level:
//
//	{
//	  "name": "site A",
//	  "units": "N, kg, m, s",
//	  "comments": "",
//	  "ecp_version": "1.0",
//	  "soils": {
//	    "1": {"id": 1, "type": "soil", "unit_dry_weight": 17000}
//	  },
//	  "soil_profiles": {
//	    "1": {
//	      "id": 1, "type": "soil_profile",
//	      "layers": [{"depth": 0, "soil": {"type": "soils", "id": 1}}]
//	    }
//	  }
//	}
//
// Reference-valued attributes are encoded as {"type": category, "id": id}
// tags, never as inline copies. Ids are unique within a category and are
// assigned by the caller before export.
//
// # Export
//
// Build an [Output], add root objects, and finalize:
//
//	out := ecp.NewOutput()
//	out.Name = "site A"
//	if err := out.Add(profile); err != nil {
//	    return err
//	}
//	doc, err := out.Document(ecp.ExportOptions{})
//	if err != nil {
//	    return err
//	}
//	err = ecp.ExportJSON(doc, "site-a.json")
//
// [Output.Add] walks references transitively, so adding a profile also
// exports its soils. ExportOptions{ExportNone: true} writes unset optional
// attributes as explicit nulls instead of omitting them.
//
// # Import
//
// Use [ImportJSON] to read from a file path, [ReadJSON] for any
// io.Reader, or [LoadsJSON] for in-memory text:
//
//	objs, err := ecp.ImportJSON("site-a.json", ecp.LoadOptions{})
//	if err != nil {
//	    return err
//	}
//	profile := objs["soil_profiles"][1].(*model.SoilProfile)
//
// Reconstruction is two-pass: all objects are built first, then every
// recorded reference is resolved by (category, id), which handles
// cross-category cycles such as the building/foundation two-way link.
// LoadOptions{FallbackToBase: true} accepts unrecognized type tags by
// building the category's base representation; LoadOptions{Verbose: 1}
// raises diagnostic logging without changing any result.
//
// # Errors
//
// Failures surface as structured codes from the errors package:
// MISSING_ID (export of an object without an id), DUPLICATE_ID (two
// distinct objects claiming one id), UNRESOLVED_REFERENCE (a tag naming
// an absent object), and MISSING_REQUIRED_FIELD (reconstruction cannot
// satisfy a declared required attribute). Export and import are
// all-or-nothing; no partial document or graph is returned on failure.
package ecp
