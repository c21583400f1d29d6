// Package tracking models the append-only ledger of parcel status changes.
//
// A tracking ID is the public reference printed on a parcel ("ZAP-" followed by ten
// upper-case hex digits). Events refer to it by value only: an event may exist for a
// tracking ID whose parcel was never stored or has since been removed, and readers
// must tolerate such orphans.
package tracking
