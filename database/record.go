package database

import (
	"fmt"
	"regexp"
	"strings"
)

// Column describes one non-key column of a record table. Name must match the
// `db` struct tag of the corresponding field.
type Column struct {
	Name string
	Type string
}

// Record is implemented by any type that can describe its own table. Rows are
// scanned into the type and bound from it through its `db` struct tags, so
// the tag of the key field must be "id".
type Record interface {
	TableName() string
	Columns() []Column
	GetID() int64
}

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// tableSpec is the validated description of a record's table, from which all
// SQL text is built.
type tableSpec struct {
	name    string
	columns []Column
}

func describe(rec Record) (*tableSpec, error) {
	name := rec.TableName()
	if !identifierPattern.MatchString(name) {
		return nil, NewValidationError(fmt.Sprintf("invalid table name %q", name))
	}
	columns := rec.Columns()
	if len(columns) == 0 {
		return nil, NewValidationError(fmt.Sprintf("table %s has no columns", name))
	}
	seen := make(map[string]bool, len(columns))
	for _, col := range columns {
		if !identifierPattern.MatchString(col.Name) {
			return nil, NewValidationError(fmt.Sprintf("invalid column name %q in table %s", col.Name, name))
		}
		if strings.EqualFold(col.Name, "id") {
			return nil, NewValidationError(fmt.Sprintf("table %s must not list the id column", name))
		}
		if seen[col.Name] {
			return nil, NewValidationError(fmt.Sprintf("duplicate column %q in table %s", col.Name, name))
		}
		if strings.ContainsAny(col.Type, ";,()") {
			return nil, NewValidationError(fmt.Sprintf("invalid type %q for column %s", col.Type, col.Name))
		}
		seen[col.Name] = true
	}
	return &tableSpec{name: name, columns: columns}, nil
}

func (s *tableSpec) columnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.Name
	}
	return names
}

func (s *tableSpec) createSQL() string {
	defs := []string{"id INTEGER PRIMARY KEY AUTOINCREMENT"}
	for _, col := range s.columns {
		colType := col.Type
		if colType == "" {
			colType = "TEXT"
		}
		defs = append(defs, col.Name+" "+colType)
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", s.name, strings.Join(defs, ",\n\t"))
}

func (s *tableSpec) insertSQL() string {
	names := s.columnNames()
	params := make([]string, len(names))
	for i, name := range names {
		params[i] = ":" + name
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		s.name, strings.Join(names, ", "), strings.Join(params, ", "))
}

func (s *tableSpec) selectSQL() string {
	return fmt.Sprintf("SELECT id, %s FROM %s", strings.Join(s.columnNames(), ", "), s.name)
}

func (s *tableSpec) updateSQL() string {
	names := s.columnNames()
	sets := make([]string, len(names))
	for i, name := range names {
		sets[i] = name + " = :" + name
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = :id", s.name, strings.Join(sets, ", "))
}

func (s *tableSpec) deleteSQL() string {
	return fmt.Sprintf("DELETE FROM %s WHERE id = $1", s.name)
}
