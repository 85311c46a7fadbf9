package models

// LedgerTransactionType tags owner ledger rows. The ledger is a write-once
// audit trail; rows are never mutated or deleted.
type LedgerTransactionType string

const (
	LedgerTransactionPayout LedgerTransactionType = "PAYOUT"
)

// ExpenseCategory is an open-ended label, but writes are checked against the
// known set so typos don't fragment reporting.
type ExpenseCategory string

const (
	ExpenseCategoryAds       ExpenseCategory = "Ads"
	ExpenseCategoryTools     ExpenseCategory = "Tools"
	ExpenseCategoryEditing   ExpenseCategory = "Editing"
	ExpenseCategoryShipping  ExpenseCategory = "Shipping"
	ExpenseCategoryPackaging ExpenseCategory = "Packaging"
	ExpenseCategoryOther     ExpenseCategory = "Other"
)

func IsKnownExpenseCategory(c string) bool {
	switch ExpenseCategory(c) {
	case ExpenseCategoryAds, ExpenseCategoryTools, ExpenseCategoryEditing,
		ExpenseCategoryShipping, ExpenseCategoryPackaging, ExpenseCategoryOther:
		return true
	}
	return false
}

// GlobalCostsLabel names the breakdown line that carries company-wide costs
// (ad spend plus unattributed expenses) in owner profit summaries.
const GlobalCostsLabel = "Global Costs (Ads & Expenses)"
