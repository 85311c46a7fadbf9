package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func testOwners() []*Owner {
	return []*Owner{
		{ID: 1, Name: "A", EquityPercentage: dec("30")},
		{ID: 2, Name: "B", EquityPercentage: dec("20")},
	}
}

func TestAllocateProfit_OverrideReplacesGlobal(t *testing.T) {
	owners := testOwners()
	overrides := []*ProductEquity{
		{ProductId: 7, OwnerId: 1, EquityPercentage: dec("50")},
	}
	lines := []ProfitLine{
		{Label: "Widget", Amount: dec("100"), ProductId: 7},
	}

	totals := AllocateProfit(owners, overrides, lines)

	if !totals[1].Equal(dec("50")) {
		t.Fatalf("owner A share: expected 50, got %s", totals[1])
	}
	// B has no override for product 7, so the global 20% applies.
	if !totals[2].Equal(dec("20")) {
		t.Fatalf("owner B share: expected 20, got %s", totals[2])
	}
}

func TestAllocateProfit_GlobalLineUsesGlobalPercentageOnly(t *testing.T) {
	owners := testOwners()
	overrides := []*ProductEquity{
		{ProductId: 7, OwnerId: 1, EquityPercentage: dec("50")},
	}
	// Untagged cost line: overrides must not apply.
	lines := []ProfitLine{
		{Label: GlobalCostsLabel, Amount: dec("-100")},
	}

	totals := AllocateProfit(owners, overrides, lines)

	if !totals[1].Equal(dec("-30")) {
		t.Fatalf("owner A debit: expected -30, got %s", totals[1])
	}
	if !totals[2].Equal(dec("-20")) {
		t.Fatalf("owner B debit: expected -20, got %s", totals[2])
	}
}

func TestAllocateProfit_NegativeLinesCarrySign(t *testing.T) {
	owners := testOwners()
	lines := []ProfitLine{
		{Label: "Widget", Amount: dec("200"), ProductId: 7},
		{Label: "Widget refunds", Amount: dec("-200"), ProductId: 7},
	}

	totals := AllocateProfit(owners, nil, lines)

	for id, total := range totals {
		if !total.IsZero() {
			t.Fatalf("owner %d: symmetric +/- lines must cancel, got %s", id, total)
		}
	}
}

func TestAllocateProfit_ZeroPercentageOwnerGetsNothing(t *testing.T) {
	owners := []*Owner{
		{ID: 1, EquityPercentage: dec("0")},
		{ID: 2, EquityPercentage: dec("100")},
	}
	lines := []ProfitLine{
		{Label: "Widget", Amount: dec("55.55"), ProductId: 3},
	}

	totals := AllocateProfit(owners, nil, lines)

	if !totals[1].IsZero() {
		t.Fatalf("zero-percentage owner must get nothing, got %s", totals[1])
	}
	if !totals[2].Equal(dec("55.55")) {
		t.Fatalf("sole owner share: expected 55.55, got %s", totals[2])
	}
}

func TestAllocateProfit_AccumulatesAtFullPrecision(t *testing.T) {
	owners := []*Owner{
		{ID: 1, EquityPercentage: dec("33.33")},
	}
	// Each line's share is 0.03333; rounding per line would collapse to 0.03
	// and drift after many lines. The accumulator must stay exact.
	lines := make([]ProfitLine, 0, 100)
	for i := 0; i < 100; i++ {
		lines = append(lines, ProfitLine{Label: "micro", Amount: dec("0.10"), ProductId: 1})
	}

	totals := AllocateProfit(owners, nil, lines)

	if !totals[1].Equal(dec("3.333")) {
		t.Fatalf("expected exact 3.333, got %s", totals[1])
	}
}

func TestAllocateProfit_NoSumTo100Required(t *testing.T) {
	owners := []*Owner{
		{ID: 1, EquityPercentage: dec("80")},
		{ID: 2, EquityPercentage: dec("80")},
	}
	lines := []ProfitLine{
		{Label: "Widget", Amount: dec("100"), ProductId: 1},
	}

	totals := AllocateProfit(owners, nil, lines)

	// Over-allocation is tolerated; each owner gets their raw percentage.
	if !totals[1].Equal(dec("80")) || !totals[2].Equal(dec("80")) {
		t.Fatalf("expected 80/80, got %s/%s", totals[1], totals[2])
	}
}

func TestEquityBook_ResolutionFallback(t *testing.T) {
	book := newEquityBook([]*ProductEquity{
		{ProductId: 7, OwnerId: 1, EquityPercentage: dec("50")},
	})
	owner := &Owner{ID: 1, EquityPercentage: dec("30")}

	if pct := book.percentageFor(owner, 7); !pct.Equal(dec("50")) {
		t.Fatalf("override product: expected 50, got %s", pct)
	}
	if pct := book.percentageFor(owner, 8); !pct.Equal(dec("30")) {
		t.Fatalf("other product: expected global 30, got %s", pct)
	}
	if pct := book.percentageFor(owner, 0); !pct.Equal(dec("30")) {
		t.Fatalf("company-wide: expected global 30, got %s", pct)
	}
}
