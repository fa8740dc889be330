package nrl

//Status reports the outcome of a Newton-Raphson step. StatusSuccess means the
//update was applied to the point; every other value means the point was left
//untouched and explains why the step could not be trusted.
type Status int

const (
	StatusSuccess Status = iota
	//StatusSingularHessian is returned when the Hessian is singular or its
	//condition estimate exceeds MaxHessianCondition, so no reliable update
	//direction exists.
	StatusSingularHessian
	//StatusNotFinite is returned when an evaluator produced NaN or Inf
	//entries, or the solved update itself is not finite.
	StatusNotFinite
	//StatusMaxIterations is reported by the bounded Minimize driver when the
	//gradient tolerance was not reached within MaxIter steps. The one-step
	//NewtonRaphson function never returns it.
	StatusMaxIterations
)

var statusStrings = map[Status]string{
	StatusSuccess:         "Success",
	StatusSingularHessian: "SingularHessian",
	StatusNotFinite:       "NotFinite",
	StatusMaxIterations:   "MaximumIterations",
}

func (status Status) String() string {
	str, ok := statusStrings[status]
	if !ok {
		return "UnregisteredStatus"
	}
	return str
}
