package models

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/tiktrack/tiktrack_backend/config"
	"github.com/tiktrack/tiktrack_backend/utils"
)

// End-to-end ledger flow against a real MySQL.
//
// Usage: INTEGRATION_TESTS=1 go test ./models -run LedgerFlow -v
// (requires the DB_* env vars to point at a disposable database)

func setupIntegration(t *testing.T) context.Context {
	t.Helper()
	if strings.TrimSpace(os.Getenv("INTEGRATION_TESTS")) == "" {
		t.Skip("set INTEGRATION_TESTS=1 to run integration tests (requires a MySQL instance)")
	}
	if config.GetDB() == nil {
		config.ConnectDatabaseWithRetry()
		MigrateTable()
	}
	return context.Background()
}

func TestLedgerFlow_DuplicateReportDateConflict(t *testing.T) {
	ctx := setupIntegration(t)

	owner, err := CreateOwner(ctx, &NewOwner{Name: "Conflict Owner", EquityPercentage: dec("100")})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	product, err := CreateProduct(ctx, &NewProduct{Name: "Conflict Widget", CostPrice: dec("5")})
	if err != nil {
		t.Fatalf("create product: %v", err)
	}
	_, err = CreateInventoryBatch(ctx, &NewInventoryBatch{ProductId: product.ID, Quantity: 100, LandingPrice: dec("5")})
	if err != nil {
		t.Fatalf("create batch: %v", err)
	}
	_ = owner

	date := time.Date(2031, 1, 15, 0, 0, 0, 0, time.UTC)
	_, err = CreateDailyReport(ctx, &NewDailyReport{
		Date:         date,
		TotalAdSpend: dec("10"),
		Sales: []*NewReportSaleLine{
			{ProductId: product.ID, Quantity: 2, SellingPrice: dec("20")},
		},
	})
	if err != nil {
		t.Fatalf("first report: %v", err)
	}

	before := countSalesForDate(t, ctx, date)

	_, err = CreateDailyReport(ctx, &NewDailyReport{
		Date:         date,
		TotalAdSpend: dec("99"),
		Sales: []*NewReportSaleLine{
			{ProductId: product.ID, Quantity: 5, SellingPrice: dec("20")},
		},
	})
	if utils.KindOf(err) != utils.ErrorKindConflict {
		t.Fatalf("second report for same date: expected ConflictError, got %v", err)
	}

	// The failed attempt must leave no partial sale rows behind.
	after := countSalesForDate(t, ctx, date)
	if before != after {
		t.Fatalf("conflicting report leaked sale rows: before=%d after=%d", before, after)
	}
}

func countSalesForDate(t *testing.T, ctx context.Context, date time.Time) int64 {
	t.Helper()
	report, err := GetDailyReportByDate(ctx, date)
	if err != nil {
		t.Fatalf("get report: %v", err)
	}
	var count int64
	err = config.GetDB().WithContext(ctx).
		Model(&Sale{}).
		Where("report_id = ?", report.ID).
		Count(&count).Error
	if err != nil {
		t.Fatalf("count sales: %v", err)
	}
	return count
}

func TestLedgerFlow_PaymentAffectsBalanceNotProfit(t *testing.T) {
	ctx := setupIntegration(t)

	owner, err := CreateOwner(ctx, &NewOwner{Name: "Balance Owner", EquityPercentage: dec("0")})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}

	balanceBefore, err := GetOwnerBalance(ctx, owner.ID)
	if err != nil {
		t.Fatalf("balance before: %v", err)
	}
	profitsBefore, err := lifetimeOwnerProfits(ctx)
	if err != nil {
		t.Fatalf("profits before: %v", err)
	}

	_, err = CreateOwnerPayment(ctx, &NewOwnerPayment{OwnerId: owner.ID, Amount: dec("40")})
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}

	// Read-after-write: the payment must be reflected in the next query.
	balanceAfter, err := GetOwnerBalance(ctx, owner.ID)
	if err != nil {
		t.Fatalf("balance after: %v", err)
	}
	diff := balanceBefore.Balance.Sub(balanceAfter.Balance)
	if !diff.Equal(dec("40")) {
		t.Fatalf("payment of 40 must move balance by exactly -40, moved %s", diff)
	}

	profitsAfter, err := lifetimeOwnerProfits(ctx)
	if err != nil {
		t.Fatalf("profits after: %v", err)
	}
	if !profitsBefore[owner.ID].Equal(profitsAfter[owner.ID]) {
		t.Fatal("recording a payment must not change total profit")
	}
}

func TestLedgerFlow_PaymentValidation(t *testing.T) {
	ctx := setupIntegration(t)

	_, err := CreateOwnerPayment(ctx, &NewOwnerPayment{OwnerId: 999999, Amount: dec("10")})
	if utils.KindOf(err) != utils.ErrorKindValidation {
		t.Fatalf("payment to unknown owner: expected ValidationError, got %v", err)
	}

	owner, err := CreateOwner(ctx, &NewOwner{Name: "Validation Owner", EquityPercentage: dec("0")})
	if err != nil {
		t.Fatalf("create owner: %v", err)
	}
	_, err = CreateOwnerPayment(ctx, &NewOwnerPayment{OwnerId: owner.ID, Amount: dec("0")})
	if utils.KindOf(err) != utils.ErrorKindValidation {
		t.Fatalf("zero payment: expected ValidationError, got %v", err)
	}
	_, err = CreateOwnerPayment(ctx, &NewOwnerPayment{OwnerId: owner.ID, Amount: dec("-5")})
	if utils.KindOf(err) != utils.ErrorKindValidation {
		t.Fatalf("negative payment: expected ValidationError, got %v", err)
	}
}
