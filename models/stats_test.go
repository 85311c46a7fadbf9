package models

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/utils"
)

func TestSummarizePeriod_Identities(t *testing.T) {
	stats := summarizePeriod("2025-06-01", dec("1000"), dec("400"), dec("150"), dec("50"))

	if !stats.GrossProfit.Equal(stats.Revenue.Sub(stats.Cogs)) {
		t.Fatalf("gross profit identity broken: %s", stats.GrossProfit)
	}
	wantNet := stats.GrossProfit.Sub(stats.AdSpend).Sub(stats.Expenses)
	if !stats.NetProfit.Equal(wantNet) {
		t.Fatalf("net profit identity broken: got %s want %s", stats.NetProfit, wantNet)
	}
	if !stats.NetProfit.Equal(dec("400")) {
		t.Fatalf("expected net 400, got %s", stats.NetProfit)
	}
}

func TestSummarizePeriod_AdSpendWithoutSalesGoesNegative(t *testing.T) {
	stats := summarizePeriod("2025-06-01", decimal.Zero, decimal.Zero, dec("75"), decimal.Zero)

	if !stats.NetProfit.Equal(dec("-75")) {
		t.Fatalf("expected net -75, got %s", stats.NetProfit)
	}
}

func TestSaleRevenue_SignAware(t *testing.T) {
	sale := &Sale{Quantity: 3, SellingPrice: dec("25")}
	ret := &Sale{Quantity: -3, SellingPrice: dec("25")}

	if !sale.Revenue().Equal(dec("75")) {
		t.Fatalf("sale revenue: expected 75, got %s", sale.Revenue())
	}
	if !ret.Revenue().Equal(dec("-75")) {
		t.Fatalf("return revenue: expected -75, got %s", ret.Revenue())
	}
	if !sale.Revenue().Add(ret.Revenue()).IsZero() {
		t.Fatal("a return must cancel the matching sale exactly")
	}
}

func TestBuildHistory_GapFilled(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	activeA := end.AddDate(0, 0, -20)
	activeB := end.AddDate(0, 0, -3)
	reports := map[string]*DailyReport{
		activeA.Format(utils.DateLayout): {
			Date:         activeA,
			TotalAdSpend: dec("10"),
			Sales: []*Sale{
				{Quantity: 2, SellingPrice: dec("50"), CalculatedCogs: dec("40")},
			},
		},
		activeB.Format(utils.DateLayout): {
			Date:         activeB,
			TotalAdSpend: decimal.Zero,
			Sales: []*Sale{
				{Quantity: 1, SellingPrice: dec("30"), CalculatedCogs: dec("12")},
			},
		},
	}
	expenses := map[string]decimal.Decimal{
		activeB.Format(utils.DateLayout): dec("5"),
	}

	history := buildHistory(end, 30, reports, expenses)

	if len(history) != 30 {
		t.Fatalf("expected exactly 30 entries, got %d", len(history))
	}
	for i := 1; i < len(history); i++ {
		if history[i-1].Date >= history[i].Date {
			t.Fatalf("history not in ascending date order at %d: %s >= %s", i, history[i-1].Date, history[i].Date)
		}
	}

	active := 0
	for _, day := range history {
		switch day.Date {
		case activeA.Format(utils.DateLayout):
			active++
			if !day.NetProfit.Equal(dec("50")) { // 100 - 40 - 10
				t.Fatalf("day A net: expected 50, got %s", day.NetProfit)
			}
		case activeB.Format(utils.DateLayout):
			active++
			if !day.NetProfit.Equal(dec("13")) { // 30 - 12 - 5
				t.Fatalf("day B net: expected 13, got %s", day.NetProfit)
			}
		default:
			if !day.Revenue.IsZero() || !day.NetProfit.IsZero() {
				t.Fatalf("inactive day %s must be zeroed, got revenue=%s net=%s", day.Date, day.Revenue, day.NetProfit)
			}
		}
	}
	if active != 2 {
		t.Fatalf("expected the 2 active days inside the window, found %d", active)
	}
}

func TestBuildHistory_Deterministic(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)
	first := buildHistory(end, 7, nil, nil)
	second := buildHistory(end, 7, nil, nil)

	if len(first) != 7 || len(second) != 7 {
		t.Fatalf("expected 7 entries, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Date != second[i].Date || !first[i].NetProfit.Equal(second[i].NetProfit) {
			t.Fatalf("history not deterministic at %d", i)
		}
	}
}

func TestReportNetProfit(t *testing.T) {
	report := &DailyReport{
		TotalAdSpend: dec("20"),
		Sales: []*Sale{
			{Quantity: 5, SellingPrice: dec("10"), CalculatedCogs: dec("25")},
			{Quantity: -1, SellingPrice: dec("10"), CalculatedCogs: dec("-5")},
		},
	}

	// revenue 50-10=40, cogs 25-5=20, ads 20, expenses 7 -> net -7
	net := reportNetProfit(report, dec("7"))
	if !net.Equal(dec("-7")) {
		t.Fatalf("expected net -7, got %s", net)
	}
}
