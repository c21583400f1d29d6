// Package kernel holds the value objects shared by the parcel, rider, payment and
// tracking aggregates: identifiers, e-mail addresses and money amounts.
//
// Zero values of these types are invalid; build them through their constructors and
// call Validate when they arrive from outside the domain.
package kernel
