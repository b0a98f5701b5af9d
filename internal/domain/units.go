package domain

// MeasurementUnits is the curated unit list the number settings panel
// offers as suggestions. Any free-text unit is accepted; the wire
// format carries the unit as a plain string.
var MeasurementUnits = []string{
	"kg", "g", "mg", "µg",
	"cm", "mm", "m",
	"mL", "L", "dL",
	"mmHg", "kPa",
	"°C", "°F",
	"bpm", "/min",
	"mmol/L", "mg/dL", "g/dL", "µmol/L",
	"IU/L", "U/L", "ng/mL", "pg/mL",
	"%", "score", "years", "months", "weeks", "days",
}
