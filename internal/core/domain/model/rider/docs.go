// Package rider models delivery riders: their approval by an administrator and their
// work status, which flips between available and in-delivery as parcels are assigned
// and released.
package rider
