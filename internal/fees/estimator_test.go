package fees

import (
	"math"
	"strings"
	"testing"

	"github.com/pivotlab/regime-core/internal/config"
	"github.com/pivotlab/regime-core/internal/model"
)

func defaultEstimator(t *testing.T) *Estimator {
	t.Helper()
	cfg := config.FeeScheduleConfig{}
	cfg.Setup()
	return NewEstimator(NewSchedule(cfg))
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClassify(t *testing.T) {
	e := defaultEstimator(t)

	tests := []struct {
		ticker       string
		wantEligible bool
		wantDomestic bool
	}{
		{"AAPL", true, false},
		{" aapl ", true, false},
		{"VALE3.SA", false, true},
		{"AAPL.SA", true, true},
		{"XYZ", false, false},
		{"", false, false},
	}

	for _, tt := range tests {
		got := e.Classify(tt.ticker)
		if got.ReceiptEligible != tt.wantEligible || got.Domestic != tt.wantDomestic {
			t.Errorf("Classify(%q) = %+v, want eligible=%v domestic=%v",
				tt.ticker, got, tt.wantEligible, tt.wantDomestic)
		}
	}
}

func TestEstimate_BrokerEligibleIsFree(t *testing.T) {
	e := defaultEstimator(t)

	for _, isSell := range []bool{false, true} {
		b := e.Estimate("AAPL", 17500, 100, isSell, model.FeeModelBroker)
		if b.TotalFee != 0 || b.Commission != 0 || b.ConversionFee != 0 || b.ExchangeFee != 0 || b.RegulatoryFee != 0 {
			t.Errorf("sell=%v: expected all-zero fees for receipt-eligible ticker, got %+v", isSell, b)
		}
		if !b.Classification.ReceiptEligible {
			t.Errorf("sell=%v: expected receipt-eligible classification", isSell)
		}
	}
}

func TestEstimate_BrokerDomesticIsFree(t *testing.T) {
	e := defaultEstimator(t)

	b := e.Estimate("VALE3.SA", 8000, 200, true, model.FeeModelBroker)
	if b.TotalFee != 0 {
		t.Errorf("expected zero fees for domestic ticker, got %+v", b)
	}
	if !b.Classification.Domestic {
		t.Error("expected domestic classification")
	}
}

func TestEstimate_BrokerForeignBuy(t *testing.T) {
	e := defaultEstimator(t)

	b := e.Estimate("XYZ", 10000, 100, false, model.FeeModelBroker)

	if !approx(b.ConversionFee, 175.00) {
		t.Errorf("conversion fee = %.2f, want 175.00", b.ConversionFee)
	}
	if !approx(b.ExchangeFee, 0.50) {
		t.Errorf("exchange fee = %.2f, want 0.50", b.ExchangeFee)
	}
	if b.RegulatoryFee != 0 {
		t.Errorf("buys must not carry the regulatory fee, got %.2f", b.RegulatoryFee)
	}
	if !approx(b.TotalFee, 175.50) {
		t.Errorf("total fee = %.2f, want 175.50", b.TotalFee)
	}
}

func TestEstimate_BrokerForeignSell(t *testing.T) {
	e := defaultEstimator(t)

	b := e.Estimate("XYZ", 5000, 50, true, model.FeeModelBroker)

	if !approx(b.ConversionFee, 87.50) {
		t.Errorf("conversion fee = %.2f, want 87.50", b.ConversionFee)
	}
	if !approx(b.ExchangeFee, 0.25) {
		t.Errorf("exchange fee = %.2f, want 0.25", b.ExchangeFee)
	}
	if !approx(b.RegulatoryFee, 0.14) {
		t.Errorf("regulatory fee = %.2f, want 0.14", b.RegulatoryFee)
	}
	if !approx(b.TotalFee, 87.89) {
		t.Errorf("total fee = %.2f, want 87.89", b.TotalFee)
	}
}

func TestEstimate_RegulatoryFloor(t *testing.T) {
	e := defaultEstimator(t)

	// 100 * 0.0000278 rounds to zero cents; the charge still floors at one cent
	sell := e.Estimate("XYZ", 100, 1, true, model.FeeModelBroker)
	if !approx(sell.RegulatoryFee, 0.01) {
		t.Errorf("regulatory fee = %.2f, want floor 0.01", sell.RegulatoryFee)
	}

	buy := e.Estimate("XYZ", 100, 1, false, model.FeeModelBroker)
	if buy.RegulatoryFee != 0 {
		t.Errorf("buy regulatory fee = %.2f, want 0", buy.RegulatoryFee)
	}
}

func TestEstimate_FlatModel(t *testing.T) {
	e := defaultEstimator(t)

	b := e.Estimate("XYZ", 10000, 100, true, model.FeeModelFlat)

	if !approx(b.Commission, 4.95) || !approx(b.TotalFee, 4.95) {
		t.Errorf("flat model: commission %.2f total %.2f, want 4.95 each", b.Commission, b.TotalFee)
	}
	if b.ConversionFee != 0 || b.ExchangeFee != 0 || b.RegulatoryFee != 0 {
		t.Errorf("flat model must carry commission only, got %+v", b)
	}
}

func TestEstimate_ZeroModel(t *testing.T) {
	e := defaultEstimator(t)

	b := e.Estimate("XYZ", 10000, 100, true, model.FeeModelZero)

	if b.TotalFee != 0 || b.Commission != 0 {
		t.Errorf("zero model: expected no fees, got %+v", b)
	}
}

func TestEstimate_UnrecognizedModelFallsBackToBroker(t *testing.T) {
	e := defaultEstimator(t)

	got := e.Estimate("XYZ", 10000, 100, false, model.FeeModel("premium"))
	want := e.Estimate("XYZ", 10000, 100, false, model.FeeModelBroker)

	if !approx(got.TotalFee, want.TotalFee) || !approx(got.ConversionFee, want.ConversionFee) {
		t.Errorf("unrecognized model = %+v, want broker fees %+v", got, want)
	}
	if !strings.Contains(got.Explanation, `unrecognized fee model "premium"`) {
		t.Errorf("expected explanation to surface the fallback, got %q", got.Explanation)
	}
}

func TestNewSchedule_NormalizesSymbols(t *testing.T) {
	cfg := config.FeeScheduleConfig{
		ReceiptEligible:  []string{" nvda "},
		DomesticSuffixes: []string{".sa"},
	}
	cfg.Setup()
	e := NewEstimator(NewSchedule(cfg))

	if c := e.Classify("NVDA"); !c.ReceiptEligible {
		t.Error("expected lowercase config symbol to match uppercase ticker")
	}
	if c := e.Classify("PETR4.SA"); !c.Domestic {
		t.Error("expected lowercase config suffix to match uppercase ticker")
	}
}
