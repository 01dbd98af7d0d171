package plotscript

import (
	"math"
	"strconv"
)

// Plot layout, in scene units. The data is scaled into an N by N box;
// A and B offset the axis labels, C and D the bound (tick) labels.
const (
	PlotN = 20.0
	PlotA = 3.0
	PlotB = 3.0
	PlotC = 2.0
	PlotD = 2.0

	plotPointSize     = 0.5
	continuousSamples = 50
	smoothingPasses   = 10
	smoothingAngle    = 175.0 // degrees
)

type plotOptions struct {
	title     Expression
	abscissa  Expression
	ordinate  Expression
	textScale float64
}

func parsePlotOptions(fname string, opts Expression) (plotOptions, error) {
	po := plotOptions{textScale: 1}
	if !opts.IsList() {
		return po, semErrf("Error in call to %s, options not a list", fname)
	}
	for _, opt := range opts.tail {
		if !opt.IsList() || len(opt.tail) != 2 {
			return po, semErrf("Error in call to %s, option is not a (name value) pair", fname)
		}
		key, ok := opt.tail[0].Head().(AtomString)
		if !ok {
			return po, semErrf("Error in call to %s, option name not a string", fname)
		}
		val := opt.tail[1]
		switch key.Unquoted() {
		case "title", "abscissa-label", "ordinate-label":
			if !val.IsHeadString() || len(val.tail) != 0 {
				return po, semErrf("Error in call to %s, %s not a string", fname, key.S)
			}
			switch key.Unquoted() {
			case "title":
				po.title = val
			case "abscissa-label":
				po.abscissa = val
			case "ordinate-label":
				po.ordinate = val
			}
		case "text-scale":
			f, ok := val.AsNumber()
			if !ok || f <= 0 {
				return po, semErrf("Error in call to %s, text-scale must be a positive number", fname)
			}
			po.textScale = f
		default:
			return po, semErrf("Error in call to %s, unknown option %s", fname, key.S)
		}
	}
	return po, nil
}

// plotFrame maps data coordinates into the scene. The y axis is
// flipped so larger values are drawn higher.
type plotFrame struct {
	xmin, xmax float64
	ymin, ymax float64
	xscale     float64
	yscale     float64
}

func newPlotFrame(xs, ys []float64) plotFrame {
	f := plotFrame{
		xmin: math.Inf(1), xmax: math.Inf(-1),
		ymin: math.Inf(1), ymax: math.Inf(-1),
	}
	for _, x := range xs {
		f.xmin = math.Min(f.xmin, x)
		f.xmax = math.Max(f.xmax, x)
	}
	for _, y := range ys {
		f.ymin = math.Min(f.ymin, y)
		f.ymax = math.Max(f.ymax, y)
	}
	if f.xmax == f.xmin {
		f.xmin--
		f.xmax++
	}
	if f.ymax == f.ymin {
		f.ymin--
		f.ymax++
	}
	f.xscale = PlotN / (f.xmax - f.xmin)
	f.yscale = PlotN / (f.ymax - f.ymin)
	return f
}

func (f plotFrame) sx(x float64) float64 { return x * f.xscale }
func (f plotFrame) sy(y float64) float64 { return -y * f.yscale }

func (f plotFrame) left() float64   { return f.sx(f.xmin) }
func (f plotFrame) right() float64  { return f.sx(f.xmax) }
func (f plotFrame) top() float64    { return f.sy(f.ymax) }
func (f plotFrame) bottom() float64 { return f.sy(f.ymin) }

func makePlotPoint(x, y, size float64) Expression {
	return MakeList(MakeNumber(x), MakeNumber(y)).
		SetProperty(PropObjectName, MakeString("point")).
		SetProperty(PropSize, MakeNumber(size))
}

func makePlotLine(x1, y1, x2, y2 float64) Expression {
	return MakeList(makePlotPoint(x1, y1, 0), makePlotPoint(x2, y2, 0)).
		SetProperty(PropObjectName, MakeString("line")).
		SetProperty(PropThickness, MakeNumber(0))
}

func makePlotText(text Expression, x, y, scale, rotation float64) Expression {
	return text.
		SetProperty(PropObjectName, MakeString("text")).
		SetProperty(PropPosition, makePlotPoint(x, y, 0)).
		SetProperty(PropTextScale, MakeNumber(scale)).
		SetProperty(PropTextRotation, MakeNumber(rotation))
}

func tickLabel(v float64) Expression {
	return MakeString(strconv.FormatFloat(v, 'g', 2, 64))
}

// decorations draws the bounding box, the axes that fall inside it,
// the bound labels and whichever titles were requested.
func (f plotFrame) decorations(po plotOptions) []Expression {
	l, r, t, b := f.left(), f.right(), f.top(), f.bottom()
	items := []Expression{
		makePlotLine(l, t, r, t),
		makePlotLine(l, b, r, b),
		makePlotLine(l, t, l, b),
		makePlotLine(r, t, r, b),
	}
	if f.ymin <= 0 && 0 <= f.ymax {
		items = append(items, makePlotLine(l, f.sy(0), r, f.sy(0)))
	}
	if f.xmin <= 0 && 0 <= f.xmax {
		items = append(items, makePlotLine(f.sx(0), t, f.sx(0), b))
	}

	s := po.textScale
	items = append(items,
		makePlotText(tickLabel(f.xmin), l, b+PlotC, s, 0),
		makePlotText(tickLabel(f.xmax), r, b+PlotC, s, 0),
		makePlotText(tickLabel(f.ymin), l-PlotD, b, s, 0),
		makePlotText(tickLabel(f.ymax), l-PlotD, t, s, 0),
	)

	cx, cy := (l+r)/2, (t+b)/2
	if !po.title.IsNone() {
		items = append(items, makePlotText(po.title, cx, t-PlotA, s, 0))
	}
	if !po.abscissa.IsNone() {
		items = append(items, makePlotText(po.abscissa, cx, b+PlotA, s, 0))
	}
	if !po.ordinate.IsNone() {
		items = append(items, makePlotText(po.ordinate, l-PlotB, cy, s, -math.Pi/2))
	}
	return items
}

// DiscretePlotFunction: (discrete-plot (list (list x y) ...) OPTIONS)
// draws each datum as a point with a stem to the abscissa.
func DiscretePlotFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 1 && len(args) != 2 {
		return Expression{}, semErr("Error in call to discrete-plot, need 1 or 2 arguments")
	}
	data := args[0]
	if !data.IsList() || len(data.tail) == 0 {
		return Expression{}, semErr("Error in call to discrete-plot, data must be a non-empty list")
	}
	xs := make([]float64, 0, len(data.tail))
	ys := make([]float64, 0, len(data.tail))
	for _, d := range data.tail {
		if !d.IsList() || len(d.tail) != 2 {
			return Expression{}, semErr("Error in call to discrete-plot, datum not a (list x y)")
		}
		x, okx := d.tail[0].AsNumber()
		y, oky := d.tail[1].AsNumber()
		if !okx || !oky {
			return Expression{}, semErr("Error in call to discrete-plot, datum coordinate not a number")
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	var po plotOptions
	var err error
	if len(args) == 2 {
		po, err = parsePlotOptions(name, args[1])
		if err != nil {
			return Expression{}, err
		}
	} else {
		po.textScale = 1
	}

	f := newPlotFrame(xs, ys)
	items := f.decorations(po)
	stem := f.sy(math.Min(math.Max(0, f.ymin), f.ymax))
	for i := range xs {
		px, py := f.sx(xs[i]), f.sy(ys[i])
		items = append(items,
			makePlotPoint(px, py, plotPointSize),
			makePlotLine(px, py, px, stem),
		)
	}
	return MakeList(items...), nil
}

// ContinuousPlotFunction: (continuous-plot FUNC (list lo hi) OPTIONS)
// samples FUNC and draws it as connected line segments, refining
// sharp bends.
func ContinuousPlotFunction(env *Environment, name string, args []Expression) (Expression, error) {
	if len(args) != 2 && len(args) != 3 {
		return Expression{}, semErr("Error in call to continuous-plot, need 2 or 3 arguments")
	}
	if !env.IsCallable(args[0]) {
		return Expression{}, semErr("Error in call to continuous-plot, first argument not a procedure")
	}
	proc := env.resolveCallable(args[0])
	if Arity(proc) > 1 {
		return Expression{}, semErr("Error in call to continuous-plot, procedure takes more than one argument")
	}
	bounds := args[1]
	if !bounds.IsList() || len(bounds.tail) != 2 {
		return Expression{}, semErr("Error in call to continuous-plot, bounds must be (list lower upper)")
	}
	lo, oklo := bounds.tail[0].AsNumber()
	hi, okhi := bounds.tail[1].AsNumber()
	if !oklo || !okhi || lo >= hi {
		return Expression{}, semErr("Error in call to continuous-plot, invalid bounds")
	}

	var po plotOptions
	var err error
	if len(args) == 3 {
		po, err = parsePlotOptions(name, args[2])
		if err != nil {
			return Expression{}, err
		}
	} else {
		po.textScale = 1
	}

	sample := func(x float64) (float64, error) {
		r, err := env.Call(proc, []Expression{MakeNumber(x)})
		if err != nil {
			return 0, err
		}
		y, ok := r.AsNumber()
		if !ok {
			return 0, semErr("Error in call to continuous-plot, function did not return a number")
		}
		return y, nil
	}

	xs := make([]float64, 0, continuousSamples+1)
	ys := make([]float64, 0, continuousSamples+1)
	step := (hi - lo) / continuousSamples
	for i := 0; i <= continuousSamples; i++ {
		x := lo + float64(i)*step
		if i == continuousSamples {
			x = hi
		}
		y, err := sample(x)
		if err != nil {
			return Expression{}, err
		}
		xs = append(xs, x)
		ys = append(ys, y)
	}

	for pass := 0; pass < smoothingPasses; pass++ {
		bends := findBends(newPlotFrame(xs, ys), xs, ys)
		if len(bends) == 0 {
			break
		}
		nx := make([]float64, 0, len(xs)+2*len(bends))
		ny := make([]float64, 0, len(ys)+2*len(bends))
		for j := 0; j < len(xs)-1; j++ {
			nx = append(nx, xs[j])
			ny = append(ny, ys[j])
			if bends[j] || bends[j+1] {
				mx := (xs[j] + xs[j+1]) / 2
				my, err := sample(mx)
				if err != nil {
					return Expression{}, err
				}
				nx = append(nx, mx)
				ny = append(ny, my)
			}
		}
		xs = append(nx, xs[len(xs)-1])
		ys = append(ny, ys[len(ys)-1])
	}

	f := newPlotFrame(xs, ys)
	items := f.decorations(po)
	for j := 0; j < len(xs)-1; j++ {
		items = append(items, makePlotLine(f.sx(xs[j]), f.sy(ys[j]), f.sx(xs[j+1]), f.sy(ys[j+1])))
	}
	return MakeList(items...), nil
}

// findBends marks interior vertices whose angle, measured in scene
// coordinates, is sharper than smoothingAngle.
func findBends(f plotFrame, xs, ys []float64) map[int]bool {
	bends := make(map[int]bool)
	for i := 1; i < len(xs)-1; i++ {
		ux, uy := f.sx(xs[i-1])-f.sx(xs[i]), f.sy(ys[i-1])-f.sy(ys[i])
		vx, vy := f.sx(xs[i+1])-f.sx(xs[i]), f.sy(ys[i+1])-f.sy(ys[i])
		nu, nv := math.Hypot(ux, uy), math.Hypot(vx, vy)
		if nu == 0 || nv == 0 {
			continue
		}
		cos := (ux*vx + uy*vy) / (nu * nv)
		cos = math.Max(-1, math.Min(1, cos))
		if math.Acos(cos)*180/math.Pi < smoothingAngle {
			bends[i] = true
		}
	}
	return bends
}

func PlotFunctions() map[string]Procedure {
	return map[string]Procedure{
		"discrete-plot":   DiscretePlotFunction,
		"continuous-plot": ContinuousPlotFunction,
	}
}
