// Package transform normalizes cell values once columns are resolved.
//
// Every target field has exactly one named transformation in a Registry:
//
//	price           convert_to_decimal
//	customer_email  validate_email
//	customer_phone  normalize_phone
//	fuel_type       normalize_fuel_type
//	lead_source     validate_lead_source
//	country         infer_country
//	year            check_year
//	anything else   trim
//
// A transformation never fails the row. It returns an Outcome whose Verdict
// says what happened to the value; invalid values are kept (or left missing
// for price) and reported as diagnostics.
//
// The synonym tables behind fuel_type, lead_source and country are data, not
// code: see Tables and DefaultTables.
package transform
