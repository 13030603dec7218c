package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
)

// Each operation below issues exactly one SQL statement. T must be a struct
// type whose Record methods have value receivers, so that its zero value can
// describe the table.

// InitTable creates the table for T if it does not exist yet. It is safe to
// call on every start.
func InitTable[T Record](db *Database) error {
	var zero T
	table, err := describe(zero)
	if err != nil {
		return err
	}
	if _, err := db.db.Exec(table.createSQL()); err != nil {
		return NewStorageError(fmt.Sprintf("failed to create %s table", table.name), err)
	}
	slog.Debug("Table initialized (if not exists)", "table", table.name)
	return nil
}

// Insert writes every non-id column of rec and returns the key assigned by
// the database. The id carried by rec is ignored.
func Insert[T Record](db *Database, rec T) (int64, error) {
	table, err := describe(rec)
	if err != nil {
		return 0, err
	}
	result, err := db.db.NamedExec(table.insertSQL(), rec)
	if err != nil {
		return 0, NewStorageError(fmt.Sprintf("failed to insert into %s", table.name), err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, NewStorageError(fmt.Sprintf("failed to get id of new %s row", table.name), err)
	}
	return id, nil
}

// GetByID returns the record with the given id. A missing row is reported by
// found == false and a nil error.
func GetByID[T Record](db *Database, id int64) (rec T, found bool, err error) {
	table, err := describe(rec)
	if err != nil {
		return rec, false, err
	}
	err = db.db.Get(&rec, table.selectSQL()+" WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		var zero T
		return zero, false, nil
	}
	if err != nil {
		var zero T
		return zero, false, NewStorageError(fmt.Sprintf("failed to get %s row %d", table.name, id), err)
	}
	return rec, true, nil
}

// Update replaces every non-id column of the row keyed by rec.GetID(). If no
// such row exists nothing is written and a NotFound error is returned.
func Update[T Record](db *Database, rec T) error {
	table, err := describe(rec)
	if err != nil {
		return err
	}
	result, err := db.db.NamedExec(table.updateSQL(), rec)
	if err != nil {
		return NewStorageError(fmt.Sprintf("failed to update %s row %d", table.name, rec.GetID()), err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return NewStorageError("failed to get affected rows", err)
	}
	if rowsAffected == 0 {
		return NewNotFoundError(fmt.Sprintf("no %s row with id %d", table.name, rec.GetID()))
	}
	return nil
}

// Delete removes the row with the given id. Deleting a missing row is not an
// error.
func Delete[T Record](db *Database, id int64) error {
	var zero T
	table, err := describe(zero)
	if err != nil {
		return err
	}
	if _, err := db.db.Exec(table.deleteSQL(), id); err != nil {
		return NewStorageError(fmt.Sprintf("failed to delete %s row %d", table.name, id), err)
	}
	return nil
}

// List returns every row of T's table in id order. An empty table yields an
// empty, non-nil slice.
func List[T Record](db *Database) ([]T, error) {
	var zero T
	table, err := describe(zero)
	if err != nil {
		return nil, err
	}
	ret := []T{}
	if err := db.db.Select(&ret, table.selectSQL()+" ORDER BY id"); err != nil {
		return nil, NewStorageError(fmt.Sprintf("failed to list %s", table.name), err)
	}
	return ret, nil
}
