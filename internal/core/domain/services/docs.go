// Package services contains domain logic that spans the parcel and rider aggregates
// without belonging to either of them.
package services
