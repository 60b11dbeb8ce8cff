// Package schema defines the fixed automotive lead schema that every input
// file is harmonized into, together with the records exchanged between the
// pipeline stages.
//
// The target schema has eleven fields, always written in this order:
//
//	vehicle_make, vehicle_model, price, fuel_type, year, dealer_name,
//	country, customer_name, customer_email, customer_phone, lead_source
//
// Key types:
//   - Field: one target field name, or the Unmapped sentinel
//   - SourceColumn: one input header with its sample value
//   - ClassificationResult: the classifier's verdict for one column
//   - ResolvedMapping: target field -> winning source column
//   - TargetRecord: one output row
package schema
