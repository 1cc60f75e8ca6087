package config

// Dataset column names. The dataset is produced upstream with Finnish
// headers; these constants are the single place where they are spelled out.
const (
	ColYear             = "vuosi"
	ColMunicipalityCode = "aluejakotunniste"
	ColMunicipalityName = "aluejakoselite"
	ColCount            = "lukumäärä"
	ColAvgArea          = "ka_pinta_ala_m2"
	ColMedianPrice      = "mediaanihinta_eur"
	ColMeanPrice        = "keskihinta_eur"
	ColShoreline        = "rantatyyppi"
)

// Mapping file column names
const (
	ColMappingKunta    = "kunta"
	ColMappingMaakunta = "maakunta"
)

// UnknownRegion is the sentinel used when a municipality has no resolvable
// region. It must never collide with a real maakunta name.
const UnknownRegion = "Tuntematon"

// Canonical shoreline type codes
const (
	ShorelineWith    = "ranta"
	ShorelineWithout = "ei_rantaa"
)

// Legacy shoreline labels found in older exports of the dataset. The
// translate-values utility rewrites these to the canonical codes.
var LegacyShorelineLabels = map[string]string{
	"with":    ShorelineWith,
	"without": ShorelineWithout,
}

// CSVSeparator is the field separator used by both input files
const CSVSeparator = ';'
