// Package filter selects sender ids with expr-lang expressions, e.g.
//
//	accepted() and maxPrice() < 100
//	startsWith(SenderID, "shop") or Status == "pending"
package filter

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/s0up4200/otpiq/otpiq"
)

// ExprFilter represents a compiled expr filter
type ExprFilter struct {
	program *vm.Program
	expr    string
}

// Compile compiles a boolean filter expression over sender ids
func Compile(expression string) (*ExprFilter, error) {
	if strings.TrimSpace(expression) == "" {
		return nil, &CompilationError{Expression: expression, Reason: "empty expression"}
	}

	program, err := expr.Compile(expression,
		expr.Env(senderEnv(otpiq.SenderID{})),
		expr.AsBool(),
	)
	if err != nil {
		return nil, &CompilationError{
			Expression: expression,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	return &ExprFilter{
		program: program,
		expr:    expression,
	}, nil
}

// Match evaluates the filter against a sender id
func (f *ExprFilter) Match(sender otpiq.SenderID) (bool, error) {
	result, err := expr.Run(f.program, senderEnv(sender))
	if err != nil {
		return false, &EvaluationError{
			Expression: f.expr,
			SenderID:   sender.SenderID,
			Reason:     err.Error(),
			Err:        err,
		}
	}

	matched, _ := result.(bool)
	return matched, nil
}

// Apply returns the sender ids the filter matches. Sender ids that fail to
// evaluate are skipped and reported through the returned errors.
func (f *ExprFilter) Apply(senders []otpiq.SenderID) ([]otpiq.SenderID, []error) {
	var (
		matched []otpiq.SenderID
		errs    []error
	)
	for _, s := range senders {
		ok, err := f.Match(s)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if ok {
			matched = append(matched, s)
		}
	}
	return matched, errs
}

// String returns the original expression
func (f *ExprFilter) String() string {
	return f.expr
}

func senderEnv(s otpiq.SenderID) map[string]any {
	status := string(s.Status)
	return map[string]any{
		"ID":       s.ID,
		"SenderID": s.SenderID,
		"Status":   status,
		"Price": map[string]float64{
			"korekTelecom": s.PricePerSMS.KorekTelecom,
			"asiaCell":     s.PricePerSMS.AsiaCell,
			"zainIraq":     s.PricePerSMS.ZainIraq,
			"others":       s.PricePerSMS.Others,
		},

		// Status helpers
		"accepted": func() bool { return status == string(otpiq.SenderIDAccepted) },
		"pending":  func() bool { return status == string(otpiq.SenderIDPending) },
		"rejected": func() bool { return status == string(otpiq.SenderIDRejected) },

		// Price helpers
		"priceFor": func(carrier string) float64 { return s.PricePerSMS.ForCarrier(carrier) },
		"maxPrice": func() float64 { return s.PricePerSMS.Max() },

		// String helpers
		"contains": func(str, substr string) bool {
			return strings.Contains(strings.ToLower(str), strings.ToLower(substr))
		},
		"startsWith": func(str, prefix string) bool {
			return strings.HasPrefix(strings.ToLower(str), strings.ToLower(prefix))
		},
		"lower": strings.ToLower,
		"upper": strings.ToUpper,
	}
}

// MustCompile is like Compile but panics on error. Intended for fixed
// expressions in tests and package-level variables.
func MustCompile(expression string) *ExprFilter {
	f, err := Compile(expression)
	if err != nil {
		panic(fmt.Sprintf("filter: %v", err))
	}
	return f
}
