package main

import (
	"encoding/json"
	"flag"
	"github.com/tarstars/newtopt/nrl"
	"gonum.org/v1/gonum/mat"
	"log"
	"math"
	"os"
)

func decodeConfig(srcConfig string, out interface{}) {
	file, err := os.Open(srcConfig)
	nrl.HandleError(err)
	defer func() { nrl.HandleError(file.Close()) }()

	decoder := json.NewDecoder(file)
	nrl.HandleError(decoder.Decode(out))
}

//quadratic locates the minimum of f(x,y) = x^2 + y^2 + 2x + 8y, which sits at
//(-1, -4). The Hessian is constant, so the method lands on the minimum in a
//single step; the threshold loop here belongs to the caller, not the library.
func quadratic(_ string) {
	df := func(x *mat.Dense) *mat.Dense {
		d := mat.NewDense(2, 1, nil)
		d.Set(0, 0, 2*x.At(0, 0)+2)
		d.Set(1, 0, 2*x.At(1, 0)+8)
		return d
	}
	ddf := func(x *mat.Dense) *mat.Dense {
		return mat.NewDense(2, 2, []float64{
			2, 0,
			0, 2,
		})
	}

	x := mat.NewDense(2, 1, []float64{-3, -2})

	ri := nrl.StatusSuccess
	for ri == nrl.StatusSuccess && nrl.VecNorm(df(x)) > 0.001 {
		ri = nrl.NewtonRaphson(df, ddf, x)
		log.Printf("Parameters: %v Error: %f", mat.Formatted(x.T(), mat.Prefix(""), mat.Squeeze()), nrl.VecNorm(df(x)))
	}

	if ri != nrl.StatusSuccess {
		log.Fatal("optimization failed: ", ri)
	}
	if math.Abs(x.At(0, 0)+1) > 0.001 || math.Abs(x.At(1, 0)+4) > 0.001 {
		log.Fatal("minimum missed: ", mat.Formatted(x.T()))
	}
}

type SolveConfig struct {
	FileNameMatrix string  `json:"filename_matrix"`
	FileNameLinear string  `json:"filename_linear"`
	FileNameStart  string  `json:"filename_start"`
	FileNameResult string  `json:"filename_result"`
	GradTol        float64 `json:"grad_tol"`
	MaxIter        int     `json:"max_iter"`
}

//solve minimizes a quadratic form read from npy files and stores the final
//point as npy.
func solve(srcConfig string) {
	var solveConfig SolveConfig
	decodeConfig(srcConfig, &solveConfig)

	form, err := nrl.NewQuadraticForm(nrl.ReadNpy(solveConfig.FileNameMatrix), nrl.ReadNpy(solveConfig.FileNameLinear))
	nrl.HandleError(err)
	x := nrl.ReadNpy(solveConfig.FileNameStart)

	trace := nrl.Minimize(form.Gradient(), form.Hessian(), x, nrl.MinimizeParams{
		GradTol: solveConfig.GradTol,
		MaxIter: solveConfig.MaxIter,
	})
	log.Print("status ", trace.Final, " after ", trace.Iterations(), " iterations, objective = ", form.Value(x))
	if !trace.Converged() {
		log.Fatal("optimization failed: ", trace.Final)
	}

	nrl.WriteNpy(solveConfig.FileNameResult, x)
}

type MultiStartConfig struct {
	FileNameMatrix string  `json:"filename_matrix"`
	FileNameLinear string  `json:"filename_linear"`
	FileNameStarts string  `json:"filename_starts"`
	FileNameResult string  `json:"filename_result"`
	GradTol        float64 `json:"grad_tol"`
	MaxIter        int     `json:"max_iter"`
	ThreadsNum     int     `json:"threads_num"`
}

//multistart minimizes a quadratic form from every start point (one per row of
//the starts matrix) in parallel and stores the best final point.
func multistart(srcConfig string) {
	var multiStartConfig MultiStartConfig
	decodeConfig(srcConfig, &multiStartConfig)

	form, err := nrl.NewQuadraticForm(nrl.ReadNpy(multiStartConfig.FileNameMatrix), nrl.ReadNpy(multiStartConfig.FileNameLinear))
	nrl.HandleError(err)
	starts := nrl.ReadNpy(multiStartConfig.FileNameStarts)

	threadsNum := multiStartConfig.ThreadsNum
	if threadsNum < 1 {
		threadsNum = 1
	}

	traces := nrl.MultiStart(form.Gradient(), form.Hessian(), starts, nrl.MinimizeParams{
		GradTol: multiStartConfig.GradTol,
		MaxIter: multiStartConfig.MaxIter,
	}, threadsNum)

	for ind, currentTrace := range traces {
		log.Print("start ", ind, ": status ", currentTrace.Final, " after ", currentTrace.Iterations(), " iterations")
	}

	best := nrl.BestTrace(traces)
	if best == nil {
		log.Fatal("no start converged")
	}
	nrl.WriteNpy(multiStartConfig.FileNameResult, best.Steps[len(best.Steps)-1].Point)
}

type FieldConfig struct {
	FileNameMatrix     string `json:"filename_matrix"`
	FileNameLinear     string `json:"filename_linear"`
	FileNamePoints     string `json:"filename_points"`
	FileNameConditions string `json:"filename_conditions"`
	Objective          string `json:"objective"`
}

//rosenbrockValue is the classic banana-valley test objective; its Hessian goes
//singular along a curve, which makes it a useful probe for the field report.
func rosenbrockValue(x *mat.Dense) float64 {
	a := x.At(0, 0)
	b := x.At(1, 0)
	return (1-a)*(1-a) + 100*(b-a*a)*(b-a*a)
}

//field evaluates the Hessian over a batch of probe points and stores the
//per-point condition numbers as npy.
func field(srcConfig string) {
	var fieldConfig FieldConfig
	decodeConfig(srcConfig, &fieldConfig)

	var ddf nrl.F
	switch fieldConfig.Objective {
	case "", "quadratic":
		form, err := nrl.NewQuadraticForm(nrl.ReadNpy(fieldConfig.FileNameMatrix), nrl.ReadNpy(fieldConfig.FileNameLinear))
		nrl.HandleError(err)
		ddf = form.Hessian()
	case "rosenbrock":
		ddf = nrl.NumericalHessian(rosenbrockValue)
	default:
		log.Fatal("unknown objective ", fieldConfig.Objective)
	}

	hessianField := nrl.NewHessianField(ddf, nrl.ReadNpy(fieldConfig.FileNamePoints))
	nrl.WriteNpy(fieldConfig.FileNameConditions, hessianField.ConditionNumbers())
}

type GraphConfig struct {
	FileNameMatrix string  `json:"filename_matrix"`
	FileNameLinear string  `json:"filename_linear"`
	FileNameStart  string  `json:"filename_start"`
	FigureType     string  `json:"figure_type"`
	FileNameFigure string  `json:"filename_figure"`
	GradTol        float64 `json:"grad_tol"`
	MaxIter        int     `json:"max_iter"`
}

//graph runs one minimization and renders its iterate chain as a picture.
func graph(srcConfig string) {
	var graphConfig GraphConfig
	decodeConfig(srcConfig, &graphConfig)

	form, err := nrl.NewQuadraticForm(nrl.ReadNpy(graphConfig.FileNameMatrix), nrl.ReadNpy(graphConfig.FileNameLinear))
	nrl.HandleError(err)
	x := nrl.ReadNpy(graphConfig.FileNameStart)

	trace := nrl.Minimize(form.Gradient(), form.Hessian(), x, nrl.MinimizeParams{
		GradTol: graphConfig.GradTol,
		MaxIter: graphConfig.MaxIter,
	})
	trace.Render(graphConfig.FigureType, graphConfig.FileNameFigure)
}

func main() {
	runMode := flag.String("mode", "quadratic", "you can select either 'quadratic', 'solve', 'multistart', 'field' or 'graph' modes")
	config := flag.String("config", "newton_config.json", "a config file for the run of the program")

	flag.Parse()

	map[string]func(string){
		"quadratic":  quadratic,
		"solve":      solve,
		"multistart": multistart,
		"field":      field,
		"graph":      graph,
	}[*runMode](*config)
}
