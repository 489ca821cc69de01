package user

import (
	"fmt"
	"time"
)

// SearchParams holds the raw query values of a user search. Pointer fields
// distinguish "absent" from "present but empty".
type SearchParams struct {
	Eliminados         *string
	Nombre             string
	FechaInicioAntes   string
	FechaInicioDespues string
	Status             *string
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDate accepts RFC 3339 timestamps and plain dates (read as UTC).
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// BuildFilter turns search params into a Filter. The status param is applied
// after eliminados, so when both are present status wins.
func (p SearchParams) BuildFilter() (*Filter, error) {
	f := NewFilter()

	if p.Eliminados != nil {
		f.Eq(FieldStatus, *p.Eliminados != "true")
	}
	if p.Nombre != "" {
		f.Like(FieldName, p.Nombre)
	}

	switch {
	case p.FechaInicioAntes != "" && p.FechaInicioDespues != "":
		from, err := ParseDate(p.FechaInicioAntes)
		if err != nil {
			return nil, err
		}
		to, err := ParseDate(p.FechaInicioDespues)
		if err != nil {
			return nil, err
		}
		f.Between(FieldCreatedAt, from, to)
	case p.FechaInicioAntes != "":
		before, err := ParseDate(p.FechaInicioAntes)
		if err != nil {
			return nil, err
		}
		f.Lt(FieldCreatedAt, before)
	case p.FechaInicioDespues != "":
		after, err := ParseDate(p.FechaInicioDespues)
		if err != nil {
			return nil, err
		}
		f.Gt(FieldCreatedAt, after)
	}

	if p.Status != nil {
		f.Eq(FieldStatus, *p.Status == "true")
	}

	return f, nil
}
