// Package results carries the success-or-domain-failure outcome of a service
// operation. Infrastructure errors travel separately as Go errors; a Failure
// here is an expected business condition (duplicate name, capacity reached)
// that the caller reports to the user without treating the operation as broken.
package results

// OperationResult holds either a success payload or a domain failure payload.
type OperationResult[S any, F any] struct {
	Success *S
	Failure *F
}

// SuccessResult builds a successful OperationResult.
func SuccessResult[S any, F any](success S) OperationResult[S, F] {
	return OperationResult[S, F]{Success: &success}
}

// FailureResult builds a failed OperationResult.
func FailureResult[S any, F any](failure F) OperationResult[S, F] {
	return OperationResult[S, F]{Failure: &failure}
}

// IsSuccess reports whether the result carries a success payload.
func (r OperationResult[S, F]) IsSuccess() bool {
	return r.Success != nil
}

// IsFailure reports whether the result carries a failure payload.
func (r OperationResult[S, F]) IsFailure() bool {
	return r.Failure != nil
}
