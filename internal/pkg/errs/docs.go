// Package errs provides the typed errors shared by every layer of the parcel service.
//
// Each kind pairs a sentinel, matched with errors.Is, with a struct carrying the
// details, matched with errors.As:
//   - ObjectNotFoundError / ErrObjectNotFound: a parcel, rider, payment or user is absent
//   - ValueIsRequiredError / ErrValueIsRequired: a mandatory value is missing
//   - ValueIsInvalidError / ErrValueIsInvalid: a value is malformed or not allowed now
//   - ValueIsOutOfRangeError / ErrValueIsOutOfRange: a value falls outside its bounds
//   - ConflictError / ErrConflict: a uniqueness violation, or a write racing the current state
//   - UpstreamUnavailableError / ErrUpstreamUnavailable: an external collaborator failed; retryable
//   - ErrUnauthorized / ErrForbidden: the caller is unknown, or known but not allowed
//
// Every struct follows the same pattern: a constructor with and without a cause, an
// Error method naming the parameter and quoting the cause, and an Unwrap method
// returning the sentinel. The cause is kept in the Cause field for logging; it is not
// part of the errors.Is chain.
//
// # Creating errors
//
// Domain packages declare their failures once, as package variables, and return them
// unchanged:
//
//	var ErrRiderIsBusy = errs.NewConflictError("workStatus", WorkInDelivery)
//
//	if r.workStatus == WorkInDelivery {
//		return ErrRiderIsBusy
//	}
//
// Adapters wrap what their drivers return so the cause survives:
//
//	if pgerrs.IsUniqueViolation(err) {
//		return errs.NewConflictErrorWithCause("transactionId", p.TransactionID(), err)
//	}
//	return errs.NewUpstreamUnavailableError("kafka", err)
//
// The access sentinels are plain values and are wrapped with fmt.Errorf:
//
//	return fmt.Errorf("%w: parcel is carried by another rider", errs.ErrForbidden)
//
// # Matching errors
//
// Callers branch on the kind, never on the message:
//
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//		// 404
//	case errors.Is(err, errs.ErrConflict):
//		// 409
//	}
//
//	var notFound *errs.ObjectNotFoundError
//	if errors.As(err, &notFound) {
//		logger.Info("missing", "param", notFound.ParamName, "id", notFound.ID)
//	}
//
// # HTTP mapping
//
// The HTTP adapter maps NotFound to 404, Conflict to 409, Unauthorized to 401,
// Forbidden to 403, UpstreamUnavailable to 503, and the three value kinds to 400.
// Anything unclassified is an internal failure and is answered with 500.
package errs
