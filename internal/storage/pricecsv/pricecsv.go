// Package pricecsv reads and writes headerless name,date,price CSV files.
package pricecsv

import (
	"encoding/csv"
	"io"
	"os"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vadiminshakov/stockcast/internal/domain"
)

const columns = 3

// record is the positional wire form of a row; field order defines column order.
type record struct {
	Name  string `csv:"name"`
	Date  string `csv:"date"`
	Price string `csv:"price"`
}

func (r record) toRow() (domain.Row, error) {
	date, err := domain.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		return domain.Row{}, errors.Wrapf(domain.ErrMalformedRow, "date %q", r.Date)
	}
	price, err := decimal.NewFromString(strings.TrimSpace(r.Price))
	if err != nil {
		return domain.Row{}, errors.Wrapf(domain.ErrMalformedRow, "price %q", r.Price)
	}
	return domain.NewRow(r.Name, date, price), nil
}

func fromRow(row domain.Row) record {
	return record{
		Name:  row.Name,
		Date:  row.DateString(),
		Price: row.PriceString(),
	}
}

// Decode parses price rows from r. Any row with the wrong number of columns or an
// unparseable date or price makes the whole input malformed. Empty input yields no rows.
func Decode(r io.Reader) ([]domain.Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = columns
	reader.TrimLeadingSpace = true

	var records []record
	if err := gocsv.UnmarshalCSVWithoutHeaders(reader, &records); err != nil {
		if errors.Is(err, gocsv.ErrEmptyCSVFile) {
			return nil, nil
		}
		return nil, errors.Wrap(domain.ErrMalformedRow, err.Error())
	}

	rows := make([]domain.Row, 0, len(records))
	for i, rec := range records {
		row, err := rec.toRow()
		if err != nil {
			return nil, errors.Wrapf(err, "line %d", i+1)
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// Encode writes rows to w with prices fixed to two fractional digits.
func Encode(w io.Writer, rows []domain.Row) error {
	records := make([]record, len(rows))
	for i, row := range rows {
		records[i] = fromRow(row)
	}

	if err := gocsv.MarshalWithoutHeaders(&records, w); err != nil {
		return errors.Wrap(err, "encode price rows")
	}
	return nil
}

// Load reads all rows from the file at path.
func Load(path string) ([]domain.Row, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(domain.ErrSourceNotFound, path)
		}
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	rows, err := Decode(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return rows, nil
}

// Save writes rows to path, replacing any existing file.
func Save(path string, rows []domain.Row) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := Encode(f, rows); err != nil {
		return errors.Wrap(err, path)
	}
	return f.Close()
}
