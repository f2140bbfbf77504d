// Package ingest orchestrates the track ingestion flow: acquire bytes,
// validate the container, extract tags and technical info, and persist
// the file at its canonical library path.
//
// The pipeline is backend-agnostic: acquisition goes through whichever
// download adapter was selected at configuration time, and every
// filesystem mutation funnels through the library manager. Catalog
// bookkeeping (entity matching, uniqueness, cascades) stays with the
// caller, who receives plain metadata values and path strings.
package ingest
