package transaction

import (
	"database/sql"
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/aarondl/opt/null"
	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"

	"github.com/carson-networks/sms-ledger/internal/ledger"
)

const TableName = "transactions"

const dateLayout = "2006-01-02"

var insertColumns = []string{
	"id", "direction", "amount", "date", "bucket", "source", "description",
	"category", "account_ref", "balance", "raw_message", "provenance",
}

var selectColumns = []any{
	"id", "direction", "amount", "date", "bucket", "source", "description",
	"category", "account_ref", "balance", "raw_message", "provenance",
}

// Row is the stored shape of a ledger.Record.
type Row struct {
	ID          uuid.UUID           `db:"id"`
	Direction   string              `db:"direction"`
	Amount      decimal.Decimal     `db:"amount"`
	Date        calendarDate        `db:"date"`
	Bucket      string              `db:"bucket"`
	Source      string              `db:"source"`
	Description string              `db:"description"`
	Category    sql.NullString      `db:"category"`
	AccountRef  sql.NullString      `db:"account_ref"`
	Balance     decimal.NullDecimal `db:"balance"`
	RawMessage  string              `db:"raw_message"`
	Provenance  string              `db:"provenance"`
}

func recordToRow(id uuid.UUID, r ledger.Record) Row {
	balance := decimal.NullDecimal{}
	if b, ok := r.Balance.Get(); ok {
		balance = decimal.NewNullDecimal(b)
	}
	return Row{
		ID:          id,
		Direction:   string(r.Direction),
		Amount:      r.Amount,
		Date:        calendarDate(r.Date),
		Bucket:      ledger.BucketOf(r).String(),
		Source:      r.Source,
		Description: r.Description,
		Category:    nullString(r.Category),
		AccountRef:  nullString(r.AccountRef),
		Balance:     balance,
		RawMessage:  r.RawMessage,
		Provenance:  string(r.Provenance),
	}
}

func rowToRecord(row *Row) ledger.Record {
	rec := ledger.Record{
		ID:          row.ID,
		Direction:   ledger.Direction(row.Direction),
		Amount:      row.Amount,
		Date:        time.Time(row.Date),
		Source:      row.Source,
		Description: row.Description,
		Category:    null.FromCond(row.Category.String, row.Category.Valid),
		AccountRef:  null.FromCond(row.AccountRef.String, row.AccountRef.Valid),
		RawMessage:  row.RawMessage,
		Provenance:  ledger.Provenance(row.Provenance),
	}
	if row.Balance.Valid {
		rec.Balance = null.From(row.Balance.Decimal)
	}
	return rec
}

func nullString(v null.Val[string]) sql.NullString {
	s, ok := v.Get()
	return sql.NullString{String: s, Valid: ok}
}

// calendarDate is stored as YYYY-MM-DD text in sqlite and as DATE in
// postgres. Both scan back to UTC midnight.
type calendarDate time.Time

func (d calendarDate) Value() (driver.Value, error) {
	return time.Time(d).Format(dateLayout), nil
}

func (d *calendarDate) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = calendarDate(ledger.CalendarDate(v))
		return nil
	case string:
		return d.parse(v)
	case []byte:
		return d.parse(string(v))
	}
	return fmt.Errorf("transaction: cannot scan %T into date", src)
}

func (d *calendarDate) parse(s string) error {
	if len(s) < len(dateLayout) {
		return fmt.Errorf("transaction: bad date %q", s)
	}
	t, err := time.Parse(dateLayout, s[:len(dateLayout)])
	if err != nil {
		return fmt.Errorf("transaction: bad date %q: %w", s, err)
	}
	*d = calendarDate(t)
	return nil
}
