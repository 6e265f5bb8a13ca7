package models

import "github.com/shopspring/decimal"

// ExpenseCategory is the closed set of expense categories.
type ExpenseCategory string

const (
	CategoryGroceries      ExpenseCategory = "groceries"
	CategoryUtilities      ExpenseCategory = "utilities"
	CategoryRent           ExpenseCategory = "rent"
	CategoryInternet       ExpenseCategory = "internet"
	CategoryCleaning       ExpenseCategory = "cleaning"
	CategoryMaintenance    ExpenseCategory = "maintenance"
	CategoryEntertainment  ExpenseCategory = "entertainment"
	CategoryFood           ExpenseCategory = "food"
	CategoryTransportation ExpenseCategory = "transportation"
	CategoryOther          ExpenseCategory = "other"
)

// Valid reports whether c is one of the known categories.
func (c ExpenseCategory) Valid() bool {
	switch c {
	case CategoryGroceries, CategoryUtilities, CategoryRent, CategoryInternet,
		CategoryCleaning, CategoryMaintenance, CategoryEntertainment,
		CategoryFood, CategoryTransportation, CategoryOther:
		return true
	}
	return false
}

// PaymentMethod is the closed set of payment methods.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCard          PaymentMethod = "card"
	PaymentBankTransfer  PaymentMethod = "bank_transfer"
	PaymentDigitalWallet PaymentMethod = "digital_wallet"
	PaymentOther         PaymentMethod = "other"
)

// Valid reports whether m is one of the known payment methods.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentBankTransfer, PaymentDigitalWallet, PaymentOther:
		return true
	}
	return false
}

// SplitType selects the strategy for dividing an expense among members.
type SplitType string

const (
	// SplitEqual divides the amount evenly among all household members.
	SplitEqual SplitType = "equal"
	// SplitCustom uses caller-supplied absolute amounts per user.
	SplitCustom SplitType = "custom"
	// SplitPercentage is validated identically to SplitCustom: the caller
	// supplies the resolved absolute amounts, not percentages.
	SplitPercentage SplitType = "percentage"
)

// Valid reports whether t is one of the known split types.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitCustom, SplitPercentage:
		return true
	}
	return false
}

// Expense represents a single expense belonging to a household.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// HouseholdID is the household this expense belongs to.
	HouseholdID string

	// CreatedBy is the user ID of the member who paid and recorded it.
	CreatedBy string

	// Amount is the total expense amount. Always > 0, two decimal places.
	Amount decimal.Decimal

	Description   string
	Category      ExpenseCategory
	PaymentMethod PaymentMethod

	// Date is the Unix timestamp of when the expense occurred.
	Date int64

	// SplitType is fixed at creation; it is never changed by updates.
	SplitType SplitType

	// IsPersonal marks an expense with no splits, attributed entirely to
	// its creator. Fixed at creation.
	IsPersonal bool

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last modification.
	UpdatedAt int64
}

// ExpenseSplit represents one member's owed share of a non-personal expense.
// Splits never outlive their expense.
type ExpenseSplit struct {
	// ID is the unique identifier for the split (UUID format).
	ID string

	// ExpenseID is the parent expense.
	ExpenseID string

	// UserID is the member who owes this share.
	UserID string

	// AmountOwed is this user's share. Always > 0, two decimal places.
	AmountOwed decimal.Decimal

	// IsSettled flips once, from false to true; there is no unsettle.
	IsSettled bool

	// SettledAt is the Unix timestamp of settlement, 0 while unsettled.
	SettledAt int64

	// CreatedAt is the Unix timestamp when the split was created.
	CreatedAt int64
}
