package chart

// Palettes used by the survey panel, one per chart
var (
	PalettePastel  = []string{"a1c9f4", "ffb482", "8de5a1", "ff9f9b", "d0bbff", "debb9b"}
	PaletteViridis = []string{"440154", "46327e", "365c8d", "277f8e", "1fa187", "4ac16d", "a0da39", "fde725"}
	PaletteMagma   = []string{"000004", "2c115f", "721f81", "b73779", "f1605d", "feb078", "fcfdbf"}
	PaletteRocket  = []string{"35193e", "701f57", "ad1759", "e13342", "f37651", "f6b48f"}
	PaletteCrest   = []string{"a5cd90", "6db388", "3f978b", "2c7a8c", "2a5d8a", "2c3172"}
	PaletteSet2    = []string{"66c2a5", "fc8d62", "8da0cb", "e78ac3", "a6d854", "ffd92f"}
)
