// Package dataset loads the holiday-property transactions table and the
// kunta -> maakunta region mapping from semicolon-delimited CSV files into
// typed, immutable in-memory records.
//
// The dataset schema is declared once as an ordered list of typed fields and
// validated at load time. Mapping failures degrade to an empty mapping (all
// rows fall back to the unknown-region sentinel); dataset failures abort the
// load. The package also contains the one-off migration transforms for the
// dataset file (header rewrite, legacy shoreline-label translation) as pure
// row transforms with atomic write-back.
package dataset
