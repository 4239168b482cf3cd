package model

type FeeModel string

const (
	FeeModelFlat   FeeModel = "flat"
	FeeModelZero   FeeModel = "zero"
	FeeModelBroker FeeModel = "broker"
)

// FeeClassification is a pure function of the ticker string; callers may
// cache it per ticker within a run.
type FeeClassification struct {
	ReceiptEligible bool
	Domestic        bool
}

// FeeBreakdown itemizes the cost estimate for one trade leg. TotalFee is
// always the sum of the component fields rounded to cents. Explanation is
// presentation metadata only.
type FeeBreakdown struct {
	Commission     float64
	ConversionFee  float64
	ExchangeFee    float64
	RegulatoryFee  float64
	TotalFee       float64
	Classification FeeClassification
	Explanation    string
}
