// Package syntax recognizes the value shapes the harmonizer cares about:
// email addresses, phone numbers, and currency amounts written with either
// European or US digit grouping.
package syntax
