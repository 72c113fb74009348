// Package split computes per-person bill shares. All functions are pure;
// amounts stay unrounded float64s and formatting to two decimals is left to
// the presentation layer.
package split

import (
	"errors"

	"tablepay/internal/models"
)

var (
	ErrInvalidNumPeople  = errors.New("number of people must be at least 1")
	ErrNegativeTip       = errors.New("tip percent must not be negative")
	ErrNoSplitsRequested = errors.New("at least one split is required")
)

// EqualSplitResult holds one person's share of an equally-split order.
type EqualSplitResult struct {
	AmountPerPerson float64 `json:"amountPerPerson"`
	TaxPerPerson    float64 `json:"taxPerPerson"`
	TotalPerPerson  float64 `json:"totalPerPerson"`
}

// EqualSplit divides an order evenly between numPeople, adding tipPercent of
// the subtotal on top of the order total.
func EqualSplit(order *models.Order, numPeople int, tipPercent float64) (EqualSplitResult, error) {
	if numPeople < 1 {
		return EqualSplitResult{}, ErrInvalidNumPeople
	}
	if tipPercent < 0 {
		return EqualSplitResult{}, ErrNegativeTip
	}

	tipAmount := order.Subtotal * tipPercent / 100
	totalWithTip := order.TotalAmount + tipAmount
	people := float64(numPeople)

	return EqualSplitResult{
		AmountPerPerson: order.Subtotal / people,
		TaxPerPerson:    order.VATAmount / people,
		TotalPerPerson:  totalWithTip / people,
	}, nil
}

// TipAmount is the tip derived from an order subtotal at the given percent.
func TipAmount(subtotal, tipPercent float64) float64 {
	return subtotal * tipPercent / 100
}

type CustomSplitInput struct {
	Amount     float64 `json:"amount"`
	TipPercent float64 `json:"tipPercent"`
}

type CustomSplitResult struct {
	Amount    float64 `json:"amount"`
	TaxAmount float64 `json:"taxAmount"`
	TipAmount float64 `json:"tipAmount"`
	Total     float64 `json:"total"`
}

// CustomSplit lets each person pick their own base amount; tax and tip are
// applied to each share independently.
func CustomSplit(taxRate float64, splits []CustomSplitInput) ([]CustomSplitResult, error) {
	if len(splits) == 0 {
		return nil, ErrNoSplitsRequested
	}

	results := make([]CustomSplitResult, 0, len(splits))
	for _, s := range splits {
		if s.TipPercent < 0 {
			return nil, ErrNegativeTip
		}
		taxAmount := s.Amount * taxRate / 100
		tipAmount := s.Amount * s.TipPercent / 100
		results = append(results, CustomSplitResult{
			Amount:    s.Amount,
			TaxAmount: taxAmount,
			TipAmount: tipAmount,
			Total:     s.Amount + taxAmount + tipAmount,
		})
	}
	return results, nil
}

type ItemSplitInput struct {
	ItemID    string  `json:"itemId"`
	Quantity  int     `json:"quantity"`
	UnitPrice float64 `json:"unitPrice"`
}

type ItemSplitResult struct {
	Subtotal  float64          `json:"subtotal"`
	TaxAmount float64          `json:"taxAmount"`
	TipAmount float64          `json:"tipAmount"`
	Total     float64          `json:"total"`
	Items     []ItemSplitInput `json:"items"`
}

// ItemBasedSplit totals the items one person claims and applies tax and tip
// to that share.
func ItemBasedSplit(items []ItemSplitInput, taxRate, tipPercent float64) (ItemSplitResult, error) {
	if tipPercent < 0 {
		return ItemSplitResult{}, ErrNegativeTip
	}

	var subtotal float64
	for _, item := range items {
		subtotal += float64(item.Quantity) * item.UnitPrice
	}

	taxAmount := subtotal * taxRate / 100
	tipAmount := subtotal * tipPercent / 100

	return ItemSplitResult{
		Subtotal:  subtotal,
		TaxAmount: taxAmount,
		TipAmount: tipAmount,
		Total:     subtotal + taxAmount + tipAmount,
		Items:     items,
	}, nil
}

type TipPreset struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TipPresets are the choices offered on the pay page; -1 marks the custom
// entry field.
var TipPresets = []TipPreset{
	{Label: "No Tip", Value: 0},
	{Label: "10%", Value: 10},
	{Label: "15%", Value: 15},
	{Label: "20%", Value: 20},
	{Label: "Custom", Value: -1},
}
