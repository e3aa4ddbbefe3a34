package parser

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

func TestExtractAmount(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"A/c credited Rs. 1,000.00", "1000.00"},
		{"INR 2,50,000 received", "250000"},
		{"debited Rs.45.5 on card", "45.5"},
		{"₹ 799 spent", "799"},
		{"Txn USD 12.99 at STORE", "12.99"},
		{"txn ABC 5 then Rs 7", "7"},
		{"Paid rs:300.", "300"},
		{"₹799 spent", "799"},
		{"Your A/c XXX1234 has been debited by Rs.500.00 on 15-01-2024.", "500.00"},
		{"A/c XXX1234 debited by Rs.500", "500"},
		{"A/c XXX5678 credited with INR 2,000", "2000"},
		{"Acct XXX9012 debited Rs 75", "75"},
		{"Card XTS 40 declined, charged EUR: 9.5", "9.5"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			got, ok := ExtractAmount(tt.body)
			require.True(t, ok)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
		})
	}
}

func TestExtractAmount_Missing(t *testing.T) {
	for _, body := range []string{
		"Your a/c was debited",
		"Rs. is the currency",
		"Rs 0.00 debited",
		"Your A/c XXX1234 was debited",
		"Gold XAU 5 units credited",
	} {
		_, ok := ExtractAmount(body)
		assert.False(t, ok, body)
	}
}

func TestExtractDate(t *testing.T) {
	tests := []struct {
		rule string
		body string
		want time.Time
	}{
		{"dd-mm-yyyy", "debited on 15-01-2024 at X", date(2024, 1, 15)},
		{"dd/mm/yyyy", "on 5/3/2024", date(2024, 3, 5)},
		{"dd mm yyyy", "on 07 08 2023", date(2023, 8, 7)},
		{"dd-mon-yyyy", "on 09-Feb-2024", date(2024, 2, 9)},
		{"dd/mon/yyyy", "on 09/feb/2024", date(2024, 2, 9)},
		{"dd mon yyyy", "on 1 Dec 2022", date(2022, 12, 1)},
		{"yyyy-mm-dd", "on 2024-01-15", date(2024, 1, 15)},
		{"yyyy/mm/dd", "on 2024/11/02", date(2024, 11, 2)},
		{"yyyy mm dd", "on 2021 06 30", date(2021, 6, 30)},
		{"dd-mm-yy", "on 15-01-24", date(2024, 1, 15)},
		{"dd/mm/yy", "on 15/01/24", date(2024, 1, 15)},
		{"dd-mon-yy", "on 03-Mar-24", date(2024, 3, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			got, ok := ExtractDate(tt.body)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractDate_SkipsUnparsableMatch(t *testing.T) {
	// 31-02-2024 matches the first shape but is not a real date; a later
	// rule still gets a chance.
	got, ok := ExtractDate("on 31-02-2024 ref 2024-03-01")
	require.True(t, ok)
	assert.Equal(t, date(2024, 3, 1), got)
}

func TestExtractDate_None(t *testing.T) {
	_, ok := ExtractDate("Rs 100 debited today")
	assert.False(t, ok)
}

func TestExtractDescription(t *testing.T) {
	tests := []struct {
		rule string
		body string
		want string
	}{
		{"info", "Rs 100 debited. Info: UPI-ZOMATO. Avl bal Rs 5", "UPI-ZOMATO"},
		{"ref", "Rs 100 debited Ref: NEFT123 for rent", "NEFT123"},
		{"towards", "Rs 100 debited towards Electricity Bill.", "Electricity Bill"},
		{"for", "Rs 100 paid for Netflix subscription.", "Netflix subscription"},
		{"by", "Rs 100 credited by ACME CORP.", "ACME CORP"},
		{"at", "Rs 100 spent at Big Bazaar on 01-01-2024.", "Big Bazaar on 01-01-2024"},
		{"from", "Rs 100 received from John", "John"},
		{"to", "Rs 100 sent to Jane.", "Jane"},
		{"stops at next anchor", "Rs 100 paid for groceries at DMart.", "groceries"},
	}
	for _, tt := range tests {
		t.Run(tt.rule, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractDescription(tt.body, ledger.DirectionExpense))
		})
	}
}

func TestExtractDescription_Default(t *testing.T) {
	assert.Equal(t, "Expense transaction", ExtractDescription("Rs 100 debited", ledger.DirectionExpense))
	assert.Equal(t, "Income transaction", ExtractDescription("Rs 100 credited", ledger.DirectionIncome))
}

func TestExtractCategory(t *testing.T) {
	tests := []struct {
		body string
		want string
	}{
		{"Salary of Rs 50000 credited", "salary"},
		{"Rs 500 withdrawn at ATM", "atm_withdrawal"},
		{"Rs 20 paid via UPI", "upi_payment"},
		{"Electricity bill of Rs 900 paid", "bill_payment"},
		{"Rs 300 spent at Fresh Mart", "shopping"},
		{"NEFT transfer of Rs 10", "transfer"},
		{"Rs 10 debited", CategoryUncategorized},
		// salary outranks upi
		{"Salary via UPI Rs 1", "salary"},
	}
	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractCategory(tt.body))
		})
	}
}

func TestExtractAccountRefAndBalance(t *testing.T) {
	body := "A/c XX1234 debited Rs 100. Avl Bal: Rs. 5,432.10"

	ref, ok := ExtractAccountRef(body)
	require.True(t, ok)
	assert.Equal(t, "XX1234", ref)

	bal, ok := ExtractBalance(body)
	require.True(t, ok)
	assert.True(t, decimal.RequireFromString("5432.10").Equal(bal))

	_, ok = ExtractAccountRef("Rs 100 spent")
	assert.False(t, ok)
	_, ok = ExtractBalance("Rs 100 spent")
	assert.False(t, ok)
}

func TestExtractor_Extract(t *testing.T) {
	e := NewExtractor()
	fields := e.Extract("A/c no. 98765 credited Rs. 1,000.00 on 15-01-2024 by SALARY ACME.", ledger.DirectionIncome)

	assert.True(t, decimal.RequireFromString("1000").Equal(fields.Amount.GetOrZero()))
	assert.Equal(t, date(2024, 1, 15), fields.Date.GetOrZero())
	assert.Equal(t, "SALARY ACME", fields.Description.GetOrZero())
	assert.Equal(t, "salary", fields.Category.GetOrZero())
	assert.Equal(t, "98765", fields.AccountRef.GetOrZero())
	assert.False(t, fields.Balance.IsValue())
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
