package pricing

import "testing"

func TestImpliedVolATMRoundTrip(t *testing.T) {
	// With r=0 the ATM call and put premiums coincide, so the quote
	// midpoint equals the call price and Newton recovers sigma exactly.
	for _, sigma := range []float64{0.1, 0.2, 0.45} {
		call, err := Price(refSpot, refStrike, 0, sigma, refExpiry, Call)
		if err != nil {
			t.Fatalf("call: %v", err)
		}
		put, err := Price(refSpot, refStrike, 0, sigma, refExpiry, Put)
		if err != nil {
			t.Fatalf("put: %v", err)
		}

		iv, err := ImpliedVolATM(refSpot, refStrike, refExpiry, 0, call, put)
		if err != nil {
			t.Fatalf("sigma=%v: %v", sigma, err)
		}
		if !approxEqual(iv, sigma, 1e-4) {
			t.Errorf("sigma=%v: recovered %v", sigma, iv)
		}
	}
}

func TestImpliedVolATMFromCallQuote(t *testing.T) {
	call, err := Price(refSpot, refStrike, refRate, refVol, refExpiry, Call)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	// Feeding the call premium on both sides makes the midpoint the call
	// price itself.
	iv, err := ImpliedVolATM(refSpot, refStrike, refExpiry, refRate, call, call)
	if err != nil {
		t.Fatalf("implied vol: %v", err)
	}
	if !approxEqual(iv, refVol, 1e-4) {
		t.Errorf("recovered %v, want %v", iv, refVol)
	}
}

func TestImpliedVolATMInvalidExpiry(t *testing.T) {
	if _, err := ImpliedVolATM(refSpot, refStrike, 0, refRate, 10, 5); err == nil {
		t.Error("accepted zero expiry")
	}
}
