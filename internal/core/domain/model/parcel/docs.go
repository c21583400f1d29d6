// Package parcel models a parcel moving from intake through payment, rider assignment
// and delivery.
//
// Delivery status is an open label: the lifecycle writes a few well-known values
// and riders may report others. Which moves are legal is decided by a
// TransitionPolicy, and whether a status update frees the rider by a ReleasePolicy,
// so both behaviours can be switched without touching the aggregate.
package parcel
