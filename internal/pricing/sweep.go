package pricing

import (
	"gonum.org/v1/gonum/floats"
)

// SweepParam names the single input varied by Sweep.
type SweepParam string

const (
	SweepSpot       SweepParam = "spot"
	SweepStrike     SweepParam = "strike"
	SweepVolatility SweepParam = "volatility"
	SweepTime       SweepParam = "time"
)

const (
	// DefaultSweepRange is the symmetric fraction swept around the base
	// value for spot and strike.
	DefaultSweepRange = 0.20
	// DefaultSweepPoints is the sweep resolution when the caller passes a
	// non-positive point count.
	DefaultSweepPoints = 50
	// minSweepTime is the lower bound of the time axis; the interesting
	// boundary is T→0, but the axis stops short of the singularity.
	minSweepTime = 0.01
)

// SensitivitySweep holds price and Greek response curves over one swept
// input. X is strictly ascending; Price and every entry of Greeks are
// index-aligned with it. Greeks is keyed by GreekNames.
type SensitivitySweep struct {
	X      []float64            `json:"x"`
	Price  []float64            `json:"price"`
	Greeks map[string][]float64 `json:"greeks"`
}

// Sweep evaluates price and all five Greeks at `points` linearly spaced
// values of the selected parameter, holding the other inputs fixed:
//
//	spot, strike: [base·(1−rangePct), base·(1+rangePct)]
//	volatility:   [sigma·0.5, sigma·1.5] (rangePct is ignored; the half-to-
//	              one-and-a-half span keeps the axis positive for any sigma)
//	time:         [0.01, T]
//
// rangePct defaults to DefaultSweepRange when non-positive and must stay
// below 1 so the swept axis never crosses zero. points defaults to
// DefaultSweepPoints when less than 2. Each point is an independent
// evaluation of Price and Greeks on a copy of the base inputs; there is no
// iteration-to-iteration state.
func Sweep(in MarketInputs, typ OptionType, param SweepParam, rangePct float64, points int) (*SensitivitySweep, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if rangePct <= 0 {
		rangePct = DefaultSweepRange
	}
	if rangePct >= 1 {
		return nil, domainErrorf("sweep range must be in (0, 1), got %v", rangePct)
	}
	if points < 2 {
		points = DefaultSweepPoints
	}

	x := make([]float64, points)
	switch param {
	case SweepSpot:
		floats.Span(x, in.S*(1-rangePct), in.S*(1+rangePct))
	case SweepStrike:
		floats.Span(x, in.K*(1-rangePct), in.K*(1+rangePct))
	case SweepVolatility:
		floats.Span(x, in.Sigma*0.5, in.Sigma*1.5)
	case SweepTime:
		if in.T <= minSweepTime {
			return nil, domainErrorf("time to expiry %v too small to sweep (floor %v)", in.T, minSweepTime)
		}
		floats.Span(x, minSweepTime, in.T)
	default:
		return nil, domainErrorf("unrecognized sweep parameter %q (want spot, strike, volatility, or time)", param)
	}

	out := &SensitivitySweep{
		X:      x,
		Price:  make([]float64, points),
		Greeks: make(map[string][]float64, len(GreekNames)),
	}
	for _, name := range GreekNames {
		out.Greeks[name] = make([]float64, points)
	}

	for i, v := range x {
		p := in
		switch param {
		case SweepSpot:
			p.S = v
		case SweepStrike:
			p.K = v
		case SweepVolatility:
			p.Sigma = v
		case SweepTime:
			p.T = v
		}

		price, err := Price(p.S, p.K, p.R, p.Sigma, p.T, typ)
		if err != nil {
			return nil, err
		}
		greeks, err := Greeks(p.S, p.K, p.R, p.Sigma, p.T, typ)
		if err != nil {
			return nil, err
		}

		out.Price[i] = price
		for _, name := range GreekNames {
			g, _ := greeks.byName(name)
			out.Greeks[name][i] = g
		}
	}
	return out, nil
}

// DefaultSurfacePoints is the per-axis resolution of SurfaceGrid.
const DefaultSurfacePoints = 30

// GreekSurface is one Greek evaluated over a spot × volatility grid.
// Z is row-major over volatility: Z[i][j] is the Greek at Vol[i], Spot[j].
type GreekSurface struct {
	Spot []float64   `json:"spot"`
	Vol  []float64   `json:"vol"`
	Z    [][]float64 `json:"z"`
}

// SurfaceGrid evaluates the named Greek over a two-dimensional grid: spot
// swept ±20% around the base and volatility swept over sigma·[0.5, 1.5],
// `points` values per axis (DefaultSurfacePoints when less than 2). Grid
// cells are independent evaluations, same as Sweep.
func SurfaceGrid(in MarketInputs, typ OptionType, greek string, points int) (*GreekSurface, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if _, ok := (GreeksResult{}).byName(greek); !ok {
		return nil, domainErrorf("unrecognized greek %q (want one of %v)", greek, GreekNames)
	}
	if points < 2 {
		points = DefaultSurfacePoints
	}

	surf := &GreekSurface{
		Spot: floats.Span(make([]float64, points), in.S*0.8, in.S*1.2),
		Vol:  floats.Span(make([]float64, points), in.Sigma*0.5, in.Sigma*1.5),
		Z:    make([][]float64, points),
	}
	for i, vol := range surf.Vol {
		row := make([]float64, points)
		for j, spot := range surf.Spot {
			greeks, err := Greeks(spot, in.K, in.R, vol, in.T, typ)
			if err != nil {
				return nil, err
			}
			row[j], _ = greeks.byName(greek)
		}
		surf.Z[i] = row
	}
	return surf, nil
}
