package transform

import (
	"maps"
	"slices"
	"strings"

	"lead-harmonizer/internal/match"
)

// Country names used when a country is inferred.
const (
	Spain    = "Spain"
	France   = "France"
	Germany  = "Germany"
	Italy    = "Italy"
	Portugal = "Portugal"
	UK       = "UK"
)

// Tables are the controlled vocabularies behind the lookup rules. Keys are
// matched case- and diacritic-insensitively.
type Tables struct {
	// FuelTypes maps a synonym to Gasoline, Diesel, Electric, Hybrid or LPG.
	FuelTypes map[string]string `yaml:"fuel_types,omitempty"`
	// LeadSources maps a synonym to Website, Referral, Phone or Showroom.
	LeadSources map[string]string `yaml:"lead_sources,omitempty"`
	// Countries maps localized country names and codes to the canonical name.
	Countries map[string]string `yaml:"countries,omitempty"`
	// FirstNames lists typical first names per canonical country. It drives
	// country inference when the file has no country column.
	FirstNames map[string][]string `yaml:"first_names,omitempty"`
}

// countryOrder breaks ties between countries sharing a first name.
var countryOrder = []string{Spain, France, Germany, Italy, Portugal, UK}

// DefaultTables returns a fresh copy of the built-in vocabularies.
func DefaultTables() Tables {
	return Tables{
		FuelTypes: map[string]string{
			"gasoline": "Gasoline", "petrol": "Gasoline", "benzin": "Gasoline", "benzina": "Gasoline",
			"essence": "Gasoline", "gasolina": "Gasoline", "benzyne": "Gasoline",
			"diesel": "Diesel", "gasoil": "Diesel", "gasoleo": "Diesel", "gasóleo": "Diesel",
			"mazut": "Diesel", "motorina": "Diesel", "nafta": "Diesel",
			"electric": "Electric", "elettrico": "Electric", "électrique": "Electric",
			"elektrisch": "Electric", "elétrico": "Electric", "eléctrico": "Electric", "elektrik": "Electric",
			"hybrid": "Hybrid", "ibrido": "Hybrid", "hybride": "Hybrid", "híbrido": "Hybrid",
			"hibrit": "Hybrid", "hybryd": "Hybrid",
			"lpg": "LPG", "gpl": "LPG", "autogas": "LPG", "propane": "LPG",
		},
		LeadSources: map[string]string{
			"website": "Website", "sito web": "Website", "site": "Website", "web": "Website",
			"sitio web": "Website", "site web": "Website", "webseite": "Website",
			"referral": "Referral", "empfehlung": "Referral", "passaparola": "Referral",
			"recomendación": "Referral", "recommandation": "Referral",
			"phone": "Phone", "telefon": "Phone", "téléphone": "Phone", "telefono": "Phone",
			"showroom": "Showroom", "autohaus": "Showroom", "concessionaria": "Showroom",
			"concesionario": "Showroom", "concession": "Showroom",
		},
		Countries: map[string]string{
			"spain": Spain, "españa": Spain, "spagna": Spain, "espagne": Spain, "spanien": Spain, "espanha": Spain, "es": Spain,
			"france": France, "francia": France, "frankreich": France, "frança": France, "fr": France,
			"germany": Germany, "deutschland": Germany, "germania": Germany, "alemania": Germany,
			"allemagne": Germany, "alemanha": Germany, "de": Germany,
			"italy": Italy, "italia": Italy, "italie": Italy, "italien": Italy, "itália": Italy, "it": Italy,
			"portugal": Portugal, "portogallo": Portugal, "pt": Portugal,
			"uk": UK, "united kingdom": UK, "great britain": UK, "england": UK, "regno unito": UK,
			"reino unido": UK, "royaume uni": UK, "vereinigtes königreich": UK, "gb": UK,
		},
		FirstNames: map[string][]string{
			Spain:    {"maría", "josé", "carlos", "ana", "manuel", "carmen", "antonio", "francisco"},
			France:   {"jean", "marie", "pierre", "jacques", "michel", "françoise", "nicolas", "philippe"},
			Germany:  {"hans", "klaus", "werner", "günter", "helmut", "brigitte", "ursula", "ingrid"},
			Italy:    {"giovanni", "giuseppe", "antonio", "francesco", "mario", "luigi", "alessandro"},
			Portugal: {"joão", "antónio", "josé", "manuel", "francisco", "luis", "pedro"},
		},
	}
}

// Merge returns t extended with the entries of override. Override wins on
// conflicting keys; first-name lists are appended.
func (t Tables) Merge(override Tables) Tables {
	out := Tables{
		FuelTypes:   maps.Clone(t.FuelTypes),
		LeadSources: maps.Clone(t.LeadSources),
		Countries:   maps.Clone(t.Countries),
		FirstNames:  make(map[string][]string, len(t.FirstNames)),
	}

	if out.FuelTypes == nil {
		out.FuelTypes = map[string]string{}
	}

	if out.LeadSources == nil {
		out.LeadSources = map[string]string{}
	}

	if out.Countries == nil {
		out.Countries = map[string]string{}
	}

	maps.Copy(out.FuelTypes, override.FuelTypes)
	maps.Copy(out.LeadSources, override.LeadSources)
	maps.Copy(out.Countries, override.Countries)

	for country, names := range t.FirstNames {
		out.FirstNames[country] = append([]string(nil), names...)
	}

	for country, names := range override.FirstNames {
		out.FirstNames[country] = append(out.FirstNames[country], names...)
	}

	return out
}

// lookupKey folds s for table lookups: "Sito-Web " and "sito web" agree.
func lookupKey(s string) string {
	return strings.Join(match.Tokenize(s), " ")
}

// index is the folded, query-ready form of Tables.
type index struct {
	fuel      map[string]string
	lead      map[string]string
	countries map[string]string
	// names maps a folded first name to the countries using it, in
	// countryOrder.
	names map[string][]string
}

func newIndex(t Tables) *index {
	idx := &index{
		fuel:      foldKeys(t.FuelTypes),
		lead:      foldKeys(t.LeadSources),
		countries: foldKeys(t.Countries),
		names:     map[string][]string{},
	}

	order := append([]string{}, countryOrder...)

	for _, country := range slices.Sorted(maps.Keys(t.FirstNames)) {
		if !slices.Contains(order, country) {
			order = append(order, country)
		}
	}

	for _, country := range order {
		for _, name := range t.FirstNames[country] {
			key := lookupKey(name)
			if key == "" || slices.Contains(idx.names[key], country) {
				continue
			}

			idx.names[key] = append(idx.names[key], country)
		}
	}

	return idx
}

func foldKeys(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[lookupKey(k)] = v
	}

	return out
}
