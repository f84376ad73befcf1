package pricing

import (
	"errors"
	"math"
	"testing"
)

var sweepBase = MarketInputs{S: 100, K: 100, R: 0.05, Sigma: 0.2, T: 1}

func TestSweepAlignment(t *testing.T) {
	for _, param := range []SweepParam{SweepSpot, SweepStrike, SweepVolatility, SweepTime} {
		sw, err := Sweep(sweepBase, Call, param, 0, 0)
		if err != nil {
			t.Fatalf("%s: %v", param, err)
		}
		if len(sw.X) != DefaultSweepPoints {
			t.Errorf("%s: want %d points, got %d", param, DefaultSweepPoints, len(sw.X))
		}
		if len(sw.Price) != len(sw.X) {
			t.Errorf("%s: price length %d != x length %d", param, len(sw.Price), len(sw.X))
		}
		if len(sw.Greeks) != len(GreekNames) {
			t.Errorf("%s: want %d greek series, got %d", param, len(GreekNames), len(sw.Greeks))
		}
		for _, name := range GreekNames {
			series, ok := sw.Greeks[name]
			if !ok {
				t.Fatalf("%s: missing greek series %q", param, name)
			}
			if len(series) != len(sw.X) {
				t.Errorf("%s/%s: length %d != x length %d", param, name, len(series), len(sw.X))
			}
		}
		for i := 1; i < len(sw.X); i++ {
			if sw.X[i] <= sw.X[i-1] {
				t.Fatalf("%s: x not strictly ascending at %d: %v <= %v", param, i, sw.X[i], sw.X[i-1])
			}
		}
	}
}

func TestSweepAxes(t *testing.T) {
	sw, err := Sweep(sweepBase, Call, SweepSpot, 0.2, 5)
	if err != nil {
		t.Fatalf("spot: %v", err)
	}
	if !approxEqual(sw.X[0], 80, 1e-9) || !approxEqual(sw.X[4], 120, 1e-9) {
		t.Errorf("spot axis endpoints: got [%v, %v], want [80, 120]", sw.X[0], sw.X[4])
	}

	sw, err = Sweep(sweepBase, Call, SweepVolatility, 0.2, 5)
	if err != nil {
		t.Fatalf("volatility: %v", err)
	}
	if !approxEqual(sw.X[0], 0.1, 1e-9) || !approxEqual(sw.X[4], 0.3, 1e-9) {
		t.Errorf("vol axis endpoints: got [%v, %v], want [0.1, 0.3]", sw.X[0], sw.X[4])
	}

	sw, err = Sweep(sweepBase, Call, SweepTime, 0.2, 5)
	if err != nil {
		t.Fatalf("time: %v", err)
	}
	if !approxEqual(sw.X[0], 0.01, 1e-9) || !approxEqual(sw.X[4], sweepBase.T, 1e-9) {
		t.Errorf("time axis endpoints: got [%v, %v], want [0.01, %v]", sw.X[0], sw.X[4], sweepBase.T)
	}
}

func TestSweepValuesMatchPointwise(t *testing.T) {
	sw, err := Sweep(sweepBase, Put, SweepSpot, 0.2, 9)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	for i, s := range sw.X {
		want, err := Price(s, sweepBase.K, sweepBase.R, sweepBase.Sigma, sweepBase.T, Put)
		if err != nil {
			t.Fatalf("price at %v: %v", s, err)
		}
		if sw.Price[i] != want {
			t.Errorf("price at x[%d]=%v: sweep %v != direct %v", i, s, sw.Price[i], want)
		}
		g, err := Greeks(s, sweepBase.K, sweepBase.R, sweepBase.Sigma, sweepBase.T, Put)
		if err != nil {
			t.Fatalf("greeks at %v: %v", s, err)
		}
		if sw.Greeks["delta"][i] != g.Delta {
			t.Errorf("delta at x[%d]: sweep %v != direct %v", i, sw.Greeks["delta"][i], g.Delta)
		}
	}
}

func TestSweepRejectsBadInputs(t *testing.T) {
	var de *DomainError

	_, err := Sweep(sweepBase, Call, SweepParam("rate"), 0, 0)
	if !errors.As(err, &de) {
		t.Errorf("unknown selector: want DomainError, got %v", err)
	}

	_, err = Sweep(MarketInputs{S: -1, K: 100, R: 0.05, Sigma: 0.2, T: 1}, Call, SweepSpot, 0, 0)
	if !errors.As(err, &de) {
		t.Errorf("invalid base inputs: want DomainError, got %v", err)
	}

	_, err = Sweep(sweepBase, Call, SweepSpot, 1.5, 0)
	if !errors.As(err, &de) {
		t.Errorf("range >= 1: want DomainError, got %v", err)
	}

	short := sweepBase
	short.T = 0.005
	_, err = Sweep(short, Call, SweepTime, 0, 0)
	if !errors.As(err, &de) {
		t.Errorf("time sweep below floor: want DomainError, got %v", err)
	}
}

func TestSurfaceGrid(t *testing.T) {
	surf, err := SurfaceGrid(sweepBase, Call, "gamma", 10)
	if err != nil {
		t.Fatalf("surface: %v", err)
	}
	if len(surf.Spot) != 10 || len(surf.Vol) != 10 || len(surf.Z) != 10 {
		t.Fatalf("surface dims: spot=%d vol=%d rows=%d", len(surf.Spot), len(surf.Vol), len(surf.Z))
	}
	for i, row := range surf.Z {
		if len(row) != 10 {
			t.Fatalf("row %d length %d", i, len(row))
		}
	}
	if !approxEqual(surf.Spot[0], 80, 1e-9) || !approxEqual(surf.Spot[9], 120, 1e-9) {
		t.Errorf("spot axis: [%v, %v]", surf.Spot[0], surf.Spot[9])
	}

	// Spot-check one cell against a direct evaluation.
	g, err := Greeks(surf.Spot[3], sweepBase.K, sweepBase.R, surf.Vol[7], sweepBase.T, Call)
	if err != nil {
		t.Fatalf("greeks: %v", err)
	}
	if surf.Z[7][3] != g.Gamma {
		t.Errorf("Z[7][3]: surface %v != direct %v", surf.Z[7][3], g.Gamma)
	}

	if _, err := SurfaceGrid(sweepBase, Call, "charm", 10); err == nil {
		t.Error("SurfaceGrid accepted unknown greek")
	}
}

func TestPayoff(t *testing.T) {
	curve, err := Payoff(sweepBase, Call, 11)
	if err != nil {
		t.Fatalf("payoff: %v", err)
	}
	if len(curve.Spot) != 11 || len(curve.Payoff) != 11 || len(curve.ProfitLoss) != 11 {
		t.Fatal("payoff series misaligned")
	}
	if !approxEqual(curve.Spot[0], 50, 1e-9) || !approxEqual(curve.Spot[10], 150, 1e-9) {
		t.Errorf("spot axis: [%v, %v]", curve.Spot[0], curve.Spot[10])
	}
	// At terminal spot 150 a 100-strike call pays 50.
	if !approxEqual(curve.Payoff[10], 50, 1e-9) {
		t.Errorf("terminal payoff: got %v", curve.Payoff[10])
	}
	if !approxEqual(curve.ProfitLoss[10], 50-curve.Premium, 1e-9) {
		t.Errorf("terminal P/L: got %v", curve.ProfitLoss[10])
	}
	if !approxEqual(curve.Breakeven, sweepBase.K+curve.Premium, 1e-12) {
		t.Errorf("call breakeven: got %v", curve.Breakeven)
	}
	if !math.IsInf(curve.MaxProfit, 1) {
		t.Errorf("call max profit should be unbounded, got %v", curve.MaxProfit)
	}

	put, err := Payoff(sweepBase, Put, 11)
	if err != nil {
		t.Fatalf("put payoff: %v", err)
	}
	if !approxEqual(put.Breakeven, sweepBase.K-put.Premium, 1e-12) {
		t.Errorf("put breakeven: got %v", put.Breakeven)
	}
}
