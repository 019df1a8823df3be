// Package schema validates build requests and configuration structs.
//
// Field rules are expressed as go-playground/validator tags; rules that
// depend on the topology are registered as struct-level validations.
// Failures are reported as an *AggregateError of *ValidationError values
// keyed by the field's json name, and each failure unwraps to the domain
// sentinel it corresponds to:
//
//	if err := schema.ValidateRequest(req); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        log.Println(e)
//	    }
//	    if errors.Is(err, domain.ErrInvalidConfig) {
//	        // reject before building
//	    }
//	}
package schema
