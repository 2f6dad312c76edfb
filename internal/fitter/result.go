package fitter

// FitResult is the outcome of a hydration or excluded-volume fit: parameter
// values, asymmetric errors from the 1-σ contour, reduced χ², the number of
// function evaluations spent, and the evaluated landscape for downstream
// plotting (spec.md §4.5 "Guarantees").
type FitResult struct {
	Cw, CwErrLow, CwErrHigh float64
	Cx, CxErrLow, CxErrHigh float64
	Background              float64
	A, B                    float64
	ReducedChiSquare        float64
	Dof                     int
	Evaluations             int
	Landscape               []LandscapePoint
}
