package integrators

import (
	"sort"

	"github.com/san-kum/hamsim/internal/dynamo"
)

const (
	MethodVerlet   = "verlet"
	MethodLeapfrog = "leapfrog"
)

var steppers = map[string]func() dynamo.Stepper{
	MethodVerlet:   func() dynamo.Stepper { return NewVerlet() },
	MethodLeapfrog: func() dynamo.Stepper { return NewLeapfrog() },
}

// New returns a fresh stepper for the named method.
func New(method string) (dynamo.Stepper, error) {
	fn, ok := steppers[method]
	if !ok {
		return nil, dynamo.Wrapf("integrators.New", dynamo.ErrUnknownMethod, "%q (available: %v)", method, Methods())
	}
	return fn(), nil
}

// Methods lists the registered method names in sorted order.
func Methods() []string {
	names := make([]string, 0, len(steppers))
	for name := range steppers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
