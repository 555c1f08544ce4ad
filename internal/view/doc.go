// Package view implements the two tracker surfaces over the shared record
// store: the checklist (step and test toggles) and the proof page (summary,
// artifact submission, status badge, submission copy).
//
// Views hold no state between calls. Every operation reads the records it
// needs, so two views opened against the same store always see each other's
// last write.
package view
