package schema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/aretw0/acceptor/pkg/domain"
)

// validate is the shared validator instance. Field names are reported by
// their json (or yaml) tag so errors match what callers actually send.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(tagName)
	validate.RegisterStructValidation(requestRules, domain.Request{})
}

func tagName(f reflect.StructField) string {
	for _, key := range []string{"json", "yaml"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

// requestRules holds the checks whose bounds depend on the topology.
func requestRules(sl validator.StructLevel) {
	req := sl.Current().Interface().(domain.Request)

	switch req.Topology {
	case domain.TopologyASG:
		if req.ASGRepetition < 0 {
			sl.ReportError(req.ASGRepetition, "asg_repetition", "ASGRepetition", "gte", "0")
		}
		if req.NumLabels < 1 {
			sl.ReportError(req.NumLabels, "num_labels", "NumLabels", "gte", "1")
		}
	case domain.TopologyCTC:
		if req.NumLabels < 1 {
			sl.ReportError(req.NumLabels, "num_labels", "NumLabels", "gte", "1")
		}
	case domain.TopologyHMM:
		if req.Depth < 0 {
			sl.ReportError(req.Depth, "depth", "Depth", "gte", "0")
		}
		if req.Depth >= 4 && req.AlloNumStates < 1 {
			sl.ReportError(req.AlloNumStates, "allo_num_states", "AlloNumStates", "gte", "1")
		}
	default:
		sl.ReportError(req.Topology, "topology", "Topology", "oneof", "asg ctc hmm")
	}
}

// ValidateRequest checks a build request before any graph is constructed.
// Depth 0 passes: the builder answers it with an empty graph.
func ValidateRequest(req domain.Request) error {
	return convert(validate.Struct(req))
}

// ValidateStruct checks the validate tags of v.
func ValidateStruct(v any) error {
	return convert(validate.Struct(v))
}

func convert(err error) error {
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidConfig, err)
	}

	errs := make([]error, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		sentinel := domain.ErrInvalidConfig
		if fe.Field() == "topology" {
			sentinel = domain.ErrUnknownTopology
		}
		errs = append(errs, &ValidationError{
			Key:    fe.Field(),
			Reason: reason(fe),
			Value:  fe.Value(),
			Err:    sentinel,
		})
	}
	return &AggregateError{Errors: errs}
}

func reason(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "required"
	case "gte", "min":
		return "must be >= " + fe.Param()
	case "lte", "max":
		return "must be <= " + fe.Param()
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	default:
		return "failed " + fe.Tag() + " " + fe.Param()
	}
}
