// Package resolve locates the period and value fields of a tabular source.
package resolve

import (
	"strings"

	"github.com/huangsam/ensoview/schema"
)

// Field roles reported in a SchemaError.
const (
	RoleDate  = "date"
	RoleYear  = "year"
	RoleMonth = "month"
	RoleValue = "value"
)

// Resolution holds the original (untrimmed) field names chosen for each role.
// Date is empty when the period is composed from Year and Month.
type Resolution struct {
	Date  string
	Year  string
	Month string
	Value string
}

// Split reports whether the period is composed from separate year and month fields.
func (r Resolution) Split() bool {
	return r.Date == "" && r.Year != ""
}

// Fields resolves the header of a source against spec.
// It only inspects field names, never row data.
func Fields(fields []string, spec schema.IndexSourceSpec) (Resolution, error) {
	var res Resolution
	var missing []string
	aliases := map[string][]string{}

	find := func(role string, names []string) string {
		name, ok := Match(fields, names)
		if !ok {
			missing = append(missing, role)
			aliases[role] = names
		}
		return name
	}

	if spec.SplitPeriod() {
		res.Year = find(RoleYear, spec.PeriodFields.YearAliases)
		res.Month = find(RoleMonth, spec.PeriodFields.MonthAliases)
	} else {
		res.Date = find(RoleDate, spec.DateAliases)
	}
	res.Value = find(RoleValue, spec.ValueAliases)

	if len(missing) > 0 {
		found := make([]string, len(fields))
		copy(found, fields)
		return Resolution{}, &schema.SchemaError{
			Index:   spec.Kind,
			Missing: missing,
			Aliases: aliases,
			Found:   found,
		}
	}
	return res, nil
}

// Match returns the first field, in header order, whose trimmed name equals
// one of the aliases ignoring case.
func Match(fields []string, aliases []string) (string, bool) {
	for _, field := range fields {
		name := strings.TrimSpace(field)
		for _, alias := range aliases {
			if strings.EqualFold(name, strings.TrimSpace(alias)) {
				return field, true
			}
		}
	}
	return "", false
}
