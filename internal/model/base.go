package model

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Status values shared by Cidade and Equipamento. Transitions are one-way:
// rows are flipped to "inativo" and never removed.
const (
	StatusAtivo   = "ativo"
	StatusInativo = "inativo"
	StatusTodos   = "todos"
)

const formatoData = "2006-01-02"

// Data is a date-only value serialized as ISO-8601 (YYYY-MM-DD) on the wire
// and stored as a DATE column.
type Data struct {
	time.Time
}

func NovaData(ano int, mes time.Month, dia int) Data {
	return Data{time.Date(ano, mes, dia, 0, 0, 0, 0, time.UTC)}
}

func (d Data) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(formatoData)
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(formatoData) + `"`), nil
}

func (d *Data) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		d.Time = time.Time{}
		return nil
	}
	t, err := time.Parse(formatoData, s)
	if err != nil {
		return fmt.Errorf("data inválida %q: esperado YYYY-MM-DD", s)
	}
	d.Time = t
	return nil
}

func (d Data) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d *Data) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		d.Time = time.Time{}
	case time.Time:
		d.Time = v
	case []byte:
		t, err := time.Parse(formatoData, string(v))
		if err != nil {
			return err
		}
		d.Time = t
	case string:
		t, err := time.Parse(formatoData, v)
		if err != nil {
			return err
		}
		d.Time = t
	default:
		return fmt.Errorf("cannot scan %T into Data", src)
	}
	return nil
}
