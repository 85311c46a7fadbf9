package models

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tiktrack/tiktrack_backend/utils"
)

func TestNewSaleValidate(t *testing.T) {
	good := &NewSale{ReportId: 1, ProductId: 1, Quantity: 2, SellingPrice: dec("10")}
	if err := good.validate(); err != nil {
		t.Fatalf("valid sale rejected: %v", err)
	}

	ret := &NewSale{ReportId: 1, ProductId: 1, Quantity: -2, SellingPrice: dec("10")}
	if err := ret.validate(); err != nil {
		t.Fatalf("returns are legal line items: %v", err)
	}

	zero := &NewSale{ReportId: 1, ProductId: 1, Quantity: 0, SellingPrice: dec("10")}
	if utils.KindOf(zero.validate()) != utils.ErrorKindValidation {
		t.Fatal("zero quantity must be a ValidationError")
	}

	negPrice := &NewSale{ReportId: 1, ProductId: 1, Quantity: 1, SellingPrice: dec("-1")}
	if utils.KindOf(negPrice.validate()) != utils.ErrorKindValidation {
		t.Fatal("negative price must be a ValidationError")
	}
}

func TestNewDailyReportValidate(t *testing.T) {
	date := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)

	good := &NewDailyReport{
		Date:         date,
		TotalAdSpend: dec("12.50"),
		Sales: []*NewReportSaleLine{
			{ProductId: 1, Quantity: 3, SellingPrice: dec("9.99")},
			{ProductId: 2, Quantity: -1, SellingPrice: dec("9.99")},
		},
	}
	if err := good.validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}

	negAds := &NewDailyReport{Date: date, TotalAdSpend: dec("-1")}
	if utils.KindOf(negAds.validate()) != utils.ErrorKindValidation {
		t.Fatal("negative ad spend must be a ValidationError")
	}

	zeroQty := &NewDailyReport{
		Date:         date,
		TotalAdSpend: decimal.Zero,
		Sales:        []*NewReportSaleLine{{ProductId: 1, Quantity: 0}},
	}
	if utils.KindOf(zeroQty.validate()) != utils.ErrorKindValidation {
		t.Fatal("zero-quantity line must be a ValidationError")
	}
}

func TestNewExpenseValidateAmountAndCategory(t *testing.T) {
	neg := &NewExpense{Date: time.Now(), Category: string(ExpenseCategoryAds), Amount: dec("-3")}
	if utils.KindOf(neg.validate(context.Background())) != utils.ErrorKindValidation {
		t.Fatal("negative amount must be a ValidationError")
	}

	unknown := &NewExpense{Date: time.Now(), Category: "Snacks", Amount: dec("3")}
	if utils.KindOf(unknown.validate(context.Background())) != utils.ErrorKindValidation {
		t.Fatal("unknown category must be a ValidationError")
	}
}
