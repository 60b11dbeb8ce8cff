// Package common holds small generic helpers shared by the harmonizer packages.
package common
