package lang

// Supported language codes (ISO 639-1).
const (
	English    = "en"
	Italian    = "it"
	Spanish    = "es"
	French     = "fr"
	German     = "de"
	Portuguese = "pt"

	// Undetermined is returned when no language could be detected.
	Undetermined = "und"
)

// preference breaks vote ties deterministically.
var preference = []string{Italian, Spanish, French, German, Portuguese, English}

type gloss struct {
	english string
	langs   []string
}

// glossary is keyed by match.Tokenize output: lowercase, no diacritics.
var glossary = map[string]gloss{
	// vehicle
	"marca":    {"make", []string{Italian, Spanish, Portuguese}},
	"marque":   {"make", []string{French}},
	"marke":    {"make", []string{German}},
	"make":     {"make", []string{English}},
	"brand":    {"make", []string{English}},
	"modello":  {"model", []string{Italian}},
	"modelo":   {"model", []string{Spanish, Portuguese}},
	"modele":   {"model", []string{French}},
	"modell":   {"model", []string{German}},
	"model":    {"model", []string{English}},
	"veicolo":  {"vehicle", []string{Italian}},
	"vehiculo": {"vehicle", []string{Spanish}},
	"vehicule": {"vehicle", []string{French}},
	"fahrzeug": {"vehicle", []string{German}},
	"veiculo":  {"vehicle", []string{Portuguese}},
	"vehicle":  {"vehicle", []string{English}},
	"auto":     {"car", []string{Italian, German, Spanish}},
	"voiture":  {"car", []string{French}},
	"carro":    {"car", []string{Portuguese}},
	"car":      {"car", []string{English}},

	// price
	"prezzo": {"price", []string{Italian}},
	"precio": {"price", []string{Spanish}},
	"prix":   {"price", []string{French}},
	"preis":  {"price", []string{German}},
	"preco":  {"price", []string{Portuguese}},
	"price":  {"price", []string{English}},

	// fuel
	"carburante":    {"fuel", []string{Italian}},
	"alimentazione": {"fuel", []string{Italian}},
	"combustible":   {"fuel", []string{Spanish}},
	"carburant":     {"fuel", []string{French}},
	"kraftstoff":    {"fuel", []string{German}},
	"combustivel":   {"fuel", []string{Portuguese}},
	"fuel":          {"fuel", []string{English}},
	"tipo":          {"type", []string{Italian, Spanish, Portuguese}},
	"type":          {"type", []string{English, French}},

	// year
	"anno":    {"year", []string{Italian}},
	"ano":     {"year", []string{Spanish, Portuguese}},
	"annee":   {"year", []string{French}},
	"jahr":    {"year", []string{German}},
	"baujahr": {"year", []string{German}},
	"year":    {"year", []string{English}},

	// dealer
	"concessionario":  {"dealer", []string{Italian}},
	"venditore":       {"dealer", []string{Italian}},
	"concesionario":   {"dealer", []string{Spanish}},
	"vendedor":        {"dealer", []string{Spanish, Portuguese}},
	"concessionnaire": {"dealer", []string{French}},
	"vendeur":         {"dealer", []string{French}},
	"handler":         {"dealer", []string{German}},
	"autohaus":        {"dealer", []string{German}},
	"revendedor":      {"dealer", []string{Portuguese}},
	"dealer":          {"dealer", []string{English}},

	// country
	"paese":   {"country", []string{Italian}},
	"nazione": {"country", []string{Italian}},
	"pais":    {"country", []string{Spanish, Portuguese}},
	"pays":    {"country", []string{French}},
	"land":    {"country", []string{German}},
	"country": {"country", []string{English}},

	// customer
	"cliente":  {"customer", []string{Italian, Spanish, Portuguese}},
	"client":   {"customer", []string{French}},
	"kunde":    {"customer", []string{German}},
	"kunden":   {"customer", []string{German}},
	"customer": {"customer", []string{English}},
	"nome":     {"name", []string{Italian, Portuguese}},
	"nombre":   {"name", []string{Spanish}},
	"nom":      {"name", []string{French}},
	"name":     {"name", []string{English, German}},

	// contact
	"email":     {"email", []string{English}},
	"correo":    {"email", []string{Spanish}},
	"courriel":  {"email", []string{French}},
	"correio":   {"email", []string{Portuguese}},
	"posta":     {"email", []string{Italian}},
	"telefono":  {"phone", []string{Italian, Spanish}},
	"cellulare": {"phone", []string{Italian}},
	"telephone": {"phone", []string{French, English}},
	"telefon":   {"phone", []string{German}},
	"telefone":  {"phone", []string{Portuguese}},
	"phone":     {"phone", []string{English}},

	// lead source
	"fonte":       {"source", []string{Italian, Portuguese}},
	"provenienza": {"source", []string{Italian}},
	"fuente":      {"source", []string{Spanish}},
	"origen":      {"source", []string{Spanish}},
	"origine":     {"source", []string{French, Italian}},
	"quelle":      {"source", []string{German}},
	"herkunft":    {"source", []string{German}},
	"origem":      {"source", []string{Portuguese}},
	"source":      {"source", []string{English, French}},
	"lead":        {"lead", []string{English}},
}

var countryByLanguage = map[string]string{
	Spanish:    "Spain",
	French:     "France",
	German:     "Germany",
	Italian:    "Italy",
	Portuguese: "Portugal",
	English:    "UK",
}

// CountryOf returns the country most associated with a language code.
func CountryOf(language string) (string, bool) {
	c, ok := countryByLanguage[language]
	return c, ok
}
