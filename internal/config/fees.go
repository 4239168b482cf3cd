package config

// FeeScheduleConfig holds the broker fee constants and the instrument
// classification tables. Rates are fractions (0.0175 = 1.75%).
type FeeScheduleConfig struct {
	FlatCommission   float64  `yaml:"flat_commission"`
	FXMarkupRate     float64  `yaml:"fx_markup_rate"`
	ExchangePerShare float64  `yaml:"exchange_per_share"`
	RegulatoryRate   float64  `yaml:"regulatory_rate"`
	ReceiptEligible  []string `yaml:"receipt_eligible"`
	DomesticSuffixes []string `yaml:"domestic_suffixes"`
}

const (
	_flatCommissionDefault   = 4.95
	_fxMarkupRateDefault     = 0.0175
	_exchangePerShareDefault = 0.005
	_regulatoryRateDefault   = 0.0000278
)

// Symbols with a locally-tradable depositary receipt: these settle in local
// currency and skip the conversion and exchange access fees entirely.
var _receiptEligibleDefault = []string{
	"AAPL", "MSFT", "GOOGL", "AMZN", "META", "TSLA", "NVDA", "NFLX",
	"KO", "DIS", "JPM", "V", "MA", "PFE", "XOM", "WMT", "MCD", "BA",
}

var _domesticSuffixesDefault = []string{".SA"}

func (c *FeeScheduleConfig) Setup() {
	if c.FlatCommission <= 0 {
		c.FlatCommission = _flatCommissionDefault
	}
	if c.FXMarkupRate <= 0 {
		c.FXMarkupRate = _fxMarkupRateDefault
	}
	if c.ExchangePerShare <= 0 {
		c.ExchangePerShare = _exchangePerShareDefault
	}
	if c.RegulatoryRate <= 0 {
		c.RegulatoryRate = _regulatoryRateDefault
	}
	// nil means the key was omitted; an explicitly empty list is a valid
	// schedule with no receipt-eligible symbols or domestic suffixes
	if c.ReceiptEligible == nil {
		c.ReceiptEligible = _receiptEligibleDefault
	}
	if c.DomesticSuffixes == nil {
		c.DomesticSuffixes = _domesticSuffixesDefault
	}
}
