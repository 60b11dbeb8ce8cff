package match

import "lead-harmonizer/internal/schema"

// headerAliases lists normalized header vocabulary per target field across
// English, Italian, Spanish, French, German and Portuguese. Entries are written
// in NormalizeHeader form: lowercase, no diacritics, no separators.
var headerAliases = map[schema.Field][]string{
	schema.VehicleMake: {
		"make", "brand", "manufacturer", "vehiclemake", "carmake",
		"marca", "produttore", "costruttore", "fabricante",
		"marque", "constructeur", "marke", "hersteller", "fabrikat",
	},
	schema.VehicleModel: {
		"model", "vehiclemodel", "carmodel",
		"modello", "modelo", "modele", "modell", "typ",
	},
	schema.Price: {
		"price", "cost", "amount", "saleprice",
		"prezzo", "costo", "importo", "precio", "importe",
		"prix", "tarif", "montant", "preis", "kaufpreis", "betrag", "preco", "valor",
	},
	schema.FuelType: {
		"fuel", "fueltype", "engine", "powertrain",
		"carburante", "alimentazione", "combustible", "carburant",
		"energie", "kraftstoff", "treibstoff", "antrieb", "combustivel", "energia",
	},
	schema.Year: {
		"year", "modelyear", "anno", "annata", "ano", "annee",
		"jahr", "baujahr", "modelljahr",
	},
	schema.DealerName: {
		"dealer", "dealership", "seller", "salesperson", "salesrep",
		"concessionario", "rivenditore", "venditore", "concesionario", "vendedor",
		"concessionnaire", "vendeur", "handler", "handel", "autohaus", "verkaufer", "revendedor",
	},
	schema.Country: {
		"country", "nation", "paese", "nazione", "pais", "pays",
		"land", "staat",
	},
	schema.CustomerName: {
		"customername", "fullname", "buyer",
		"acquirente", "comprador", "acheteur", "kaufer", "kundenname",
	},
	schema.CustomerEmail: {
		"email", "mail", "emailaddress", "correo", "courriel", "posta", "correio",
	},
	schema.CustomerPhone: {
		"phone", "telephone", "mobile", "cell", "tel",
		"telefono", "cellulare", "movil", "telefon", "handy", "portable", "telefone", "telemovel",
	},
	schema.LeadSource: {
		"source", "leadsource", "channel", "origin",
		"fonte", "provenienza", "canale", "fuente", "origen", "canal",
		"origine", "provenance", "quelle", "herkunft", "kanal", "origem",
	},
}

// headerQualifiers are words that hint at a field but usually qualify another
// word ("email_cliente" is an email, not a name). They score full marks only
// when they are the whole header.
var headerQualifiers = map[schema.Field][]string{
	schema.CustomerName: {
		"customer", "client", "name", "cliente", "nome", "nombre", "nom",
		"kunde", "kunden",
	},
	schema.VehicleModel: {"version", "versione", "variante"},
}
