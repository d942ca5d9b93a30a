// Package analysis turns an equipment photo and its OCR text into a
// structured record. Three operations call the vision-language model
// (classification, damage detection, field parsing); regex extraction over
// the OCR text backs the parse step so a model outage still yields a
// usable record.
package analysis

// Categories is the closed catalog of equipment types the classifier may
// return. Classification output is matched against this list; anything
// unrecognized maps to CategoryFallback.
var Categories = []string{
	"UPS / Inverter",
	"Transformer",
	"Stabilizer",
	"Industrial PCB",
	"Meter / Gauge",
	"Breaker Panel",
	"Battery Packs",
	"Other Industrial Equipment",
}

// CategoryFallback is used when the model answers outside the catalog.
const CategoryFallback = "Other Industrial Equipment"

// DamageVocabulary lists the damage types the detector is asked to look
// for. Observations outside this vocabulary are kept too; scoring applies
// an unknown-damage penalty to those.
var DamageVocabulary = []string{
	"burn marks",
	"scorch marks",
	"corrosion",
	"rust",
	"broken display",
	"overheating",
	"loose wires",
	"water damage",
	"mechanical damage",
	"missing components",
}
