// Package demo holds a sample lead file with headers and values in several
// European languages.
package demo

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
)

// DefaultFile is where the demo command writes by default.
const DefaultFile = "sample_leads.csv"

// Header mixes Italian, Spanish, French, German and Portuguese names.
var Header = []string{
	"marca", "modello", "prezzo", "carburante", "anno",
	"concessionario", "nome_cliente", "email_cliente", "telefono", "fuente",
}

// Rows are leads from five markets.
var Rows = [][]string{
	{"Ferrari", "Roma", "€198.500", "benzina", "2023", "Modena Auto", "Giovanni Rossi", "g.rossi@libero.it", "+39 059 123 4567", "sito web"},
	{"SEAT", "León", "€24.990", "gasolina", "2022", "Autos Madrid", "María García", "maria.garcia@gmail.es", "+34 612 345 678", "referencia"},
	{"Renault", "Mégane E-Tech", "€38.200", "électrique", "2024", "Garage Lyon", "Jean Dubois", "jean.dubois@orange.fr", "+33 6 12 34 56 78", "salon"},
	{"Volkswagen", "Golf", "€29.750", "Diesel", "2021", "Autohaus München", "Hans Mueller", "h.mueller@web.de", "+49 89 1234567", "Empfehlung"},
	{"Peugeot", "208", "€19.800", "gasóleo", "2020", "Stand Lisboa", "João Silva", "joao.silva@sapo.pt", "+351 912 345 678", "telefone"},
	{"Toyota", "Yaris Hybrid", "", "ibrido", "2023", "Toyota Torino", "Francesco Bianchi", "", "+39 011 765 4321", "social"},
}

// Bytes renders the demo file as CSV.
func Bytes() ([]byte, error) {
	var buf bytes.Buffer

	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return nil, err
	}

	if err := w.WriteAll(Rows); err != nil {
		return nil, fmt.Errorf("write demo rows: %w", err)
	}

	return buf.Bytes(), nil
}

// WriteFile writes the demo file to path.
func WriteFile(path string) error {
	data, err := Bytes()
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}
