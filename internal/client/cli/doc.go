// Package cli implements the radicar command line: submit a radicación from
// local files, check server reachability and list the document categories.
//
//	radicar submit --id-number 1020304050 --service "Resonancia" \
//	    -f factura=./factura.pdf -f orden_medica=./orden.pdf
//	radicar ping
//	radicar categories
//
// Settings come from defaults, an optional JSON file (--config) and flags,
// see package config.
package cli
