package fees

import (
	"fmt"
	"strings"

	"github.com/pivotlab/regime-core/internal/config"
	"github.com/pivotlab/regime-core/internal/model"
	"github.com/pivotlab/regime-core/internal/tools"
)

// Schedule is the immutable fee policy injected into an Estimator. Rates
// are fractions of trade value; suffixes and symbols are stored uppercase.
type Schedule struct {
	FlatCommission   float64
	FXMarkupRate     float64
	ExchangePerShare float64
	RegulatoryRate   float64

	receiptEligible  map[string]struct{}
	domesticSuffixes []string
}

func NewSchedule(cfg config.FeeScheduleConfig) Schedule {
	eligible := make(map[string]struct{}, len(cfg.ReceiptEligible))
	for _, sym := range cfg.ReceiptEligible {
		eligible[strings.ToUpper(strings.TrimSpace(sym))] = struct{}{}
	}
	suffixes := make([]string, 0, len(cfg.DomesticSuffixes))
	for _, sfx := range cfg.DomesticSuffixes {
		suffixes = append(suffixes, strings.ToUpper(strings.TrimSpace(sfx)))
	}
	return Schedule{
		FlatCommission:   cfg.FlatCommission,
		FXMarkupRate:     cfg.FXMarkupRate,
		ExchangePerShare: cfg.ExchangePerShare,
		RegulatoryRate:   cfg.RegulatoryRate,
		receiptEligible:  eligible,
		domesticSuffixes: suffixes,
	}
}

// Estimator computes broker-specific fee estimates for simulated trade
// legs. All methods are pure; negative trade values or share counts are a
// caller contract violation and are not validated here.
type Estimator struct {
	schedule Schedule
}

func NewEstimator(schedule Schedule) *Estimator {
	return &Estimator{schedule: schedule}
}

// Classify derives the instrument classification from the ticker string
// alone. An unrecognized ticker is foreign, the most conservative cost
// case. Callers may cache the result per ticker within a run.
func (e *Estimator) Classify(ticker string) model.FeeClassification {
	sym := strings.ToUpper(strings.TrimSpace(ticker))

	domestic := false
	stripped := sym
	for _, sfx := range e.schedule.domesticSuffixes {
		if strings.HasSuffix(sym, sfx) {
			domestic = true
			stripped = strings.TrimSuffix(sym, sfx)
			break
		}
	}

	_, eligible := e.schedule.receiptEligible[sym]
	if !eligible {
		_, eligible = e.schedule.receiptEligible[stripped]
	}

	return model.FeeClassification{
		ReceiptEligible: eligible,
		Domestic:        domestic,
	}
}

// Estimate computes the itemized fee breakdown for one buy or sell leg.
func (e *Estimator) Estimate(ticker string, tradeValue float64, shareCount int, isSell bool, feeModel model.FeeModel) model.FeeBreakdown {
	classification := e.Classify(ticker)

	switch feeModel {
	case model.FeeModelZero:
		return model.FeeBreakdown{
			Classification: classification,
			Explanation:    "zero model: no fees applied",
		}
	case model.FeeModelFlat:
		commission := tools.Round2(e.schedule.FlatCommission)
		return model.FeeBreakdown{
			Commission:     commission,
			TotalFee:       commission,
			Classification: classification,
			Explanation:    fmt.Sprintf("flat model: commission %.2f", commission),
		}
	case model.FeeModelBroker:
		return e.estimateBroker(classification, tradeValue, shareCount, isSell)
	}

	// unrecognized model degrades to the primary one, surfaced in the breakdown
	breakdown := e.estimateBroker(classification, tradeValue, shareCount, isSell)
	breakdown.Explanation += fmt.Sprintf(" [unrecognized fee model %q, using broker]", feeModel)
	return breakdown
}

// estimateBroker is the primary model: commission-free brokerage, with
// conversion and access fees only for foreign instruments that have no
// locally-tradable receipt.
func (e *Estimator) estimateBroker(classification model.FeeClassification, tradeValue float64, shareCount int, isSell bool) model.FeeBreakdown {
	breakdown := model.FeeBreakdown{Classification: classification}

	if classification.ReceiptEligible || classification.Domestic {
		breakdown.Explanation = "settles in local currency: no conversion or exchange access fees"
		return breakdown
	}

	breakdown.ConversionFee = tools.Round2(tradeValue * e.schedule.FXMarkupRate)
	breakdown.ExchangeFee = tools.Round2(float64(shareCount) * e.schedule.ExchangePerShare)

	if isSell {
		regulatory := tradeValue * e.schedule.RegulatoryRate
		rounded := tools.Round2(regulatory)
		// sell-side regulatory charge has a one-cent minimum; buys never carry it
		if rounded < 0.01 && regulatory > 0 {
			rounded = 0.01
		}
		breakdown.RegulatoryFee = rounded
	}

	breakdown.TotalFee = tools.Round2(breakdown.ConversionFee + breakdown.ExchangeFee + breakdown.RegulatoryFee)
	breakdown.Explanation = fmt.Sprintf(
		"foreign instrument: conversion %.2f (%.4f%% of %.2f), exchange access %.2f (%d shares), regulatory %.2f",
		breakdown.ConversionFee, e.schedule.FXMarkupRate*100, tradeValue,
		breakdown.ExchangeFee, shareCount, breakdown.RegulatoryFee)

	return breakdown
}
