package catalog

import (
	units "github.com/martinlindhe/unit"
)

// defaultMemoryUnits returns a byte-factor table for the standard memory
// units, grounded on martinlindhe/unit's Datasize conversions (see
// impl/interpreter/unit_library.go in the teacher pack for the same
// to-base-unit/from-base-unit registry shape). LoadJSON's "units.memory"
// table takes precedence; this only fills units a catalog bundle omits,
// so a caller who supplies their own JSON unit table is never overridden.
func defaultMemoryUnits() map[string]float64 {
	return map[string]float64{
		"b":    (units.Datasize(1) * units.Byte).Bytes(),
		"byte": (units.Datasize(1) * units.Byte).Bytes(),
		"kb":   (units.Datasize(1) * units.Kilobyte).Bytes(),
		"mb":   (units.Datasize(1) * units.Megabyte).Bytes(),
		"gb":   (units.Datasize(1) * units.Gigabyte).Bytes(),
		"tb":   (units.Datasize(1) * units.Terabyte).Bytes(),
		"pb":   (units.Datasize(1) * units.Petabyte).Bytes(),
		"kib":  (units.Datasize(1) * units.Kibibyte).Bytes(),
		"mib":  (units.Datasize(1) * units.Mebibyte).Bytes(),
		"gib":  (units.Datasize(1) * units.Gibibyte).Bytes(),
		"tib":  (units.Datasize(1) * units.Tebibyte).Bytes(),
		"pib":  (units.Datasize(1) * units.Pebibyte).Bytes(),
	}
}

// mergeDefaultUnits fills any unit the loaded bundle didn't define.
func mergeDefaultUnits(loaded map[string]float64) map[string]float64 {
	out := defaultMemoryUnits()
	for k, v := range loaded {
		out[k] = v
	}
	return out
}
