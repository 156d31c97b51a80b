// Package enrich fetches premium-only derived data on demand.
//
// Values are never computed eagerly. A record that already carries a value is
// used as is. A record holding the "not yet computed" zero value gets one
// automatic request the first time it is viewed. Manual refreshes may be
// repeated but never overlap for the same record: a second request while one
// is outstanding is rejected with ErrInFlight. Nothing is requested when the
// feature is not admitted.
package enrich
