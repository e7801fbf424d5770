package storage

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ListStorage handles validation list persistence in SQLite. Lists are
// keyed by name; entries are unique within a list.
type ListStorage struct {
	sqlite *SQLite
	logger *zap.SugaredLogger
}

// NewListStorage creates a list storage handler.
func NewListStorage(sqlite *SQLite, logger *zap.SugaredLogger) *ListStorage {
	return &ListStorage{
		sqlite: sqlite,
		logger: logger.Named("storage.lists"),
	}
}

// AddEntries adds entries to the named list. Values are trimmed, blanks are
// skipped and duplicates are ignored. Returns the number of values actually
// written.
func (ls *ListStorage) AddEntries(listName string, values []string) (int, error) {
	tx, err := ls.sqlite.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO validation_entries (list_name, value) VALUES (?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	added := 0
	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		result, err := stmt.Exec(listName, value)
		if err != nil {
			return 0, fmt.Errorf("failed to insert entry %q: %w", value, err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to check insert result: %w", err)
		}
		added += int(affected)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit entries: %w", err)
	}

	ls.logger.Debugw("entries added", "list", listName, "added", added, "offered", len(values))
	return added, nil
}

// GetEntries returns the named list's entries in sorted order. A list with
// no entries yields ErrListNotFound.
func (ls *ListStorage) GetEntries(listName string) ([]string, error) {
	rows, err := ls.sqlite.DB.Query(`
		SELECT value FROM validation_entries WHERE list_name = ? ORDER BY value`, listName)
	if err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	var entries []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, value)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate entries: %w", err)
	}

	if len(entries) == 0 {
		return nil, ErrListNotFound
	}
	return entries, nil
}

// EntryCount returns the number of entries in the named list.
func (ls *ListStorage) EntryCount(listName string) (int64, error) {
	var count int64
	err := ls.sqlite.DB.QueryRow(`
		SELECT COUNT(*) FROM validation_entries WHERE list_name = ?`, listName).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count entries: %w", err)
	}
	return count, nil
}

// ListNames returns the names of all lists with at least one entry, sorted.
func (ls *ListStorage) ListNames() ([]string, error) {
	rows, err := ls.sqlite.DB.Query(`
		SELECT DISTINCT list_name FROM validation_entries ORDER BY list_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query list names: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan list name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate list names: %w", err)
	}
	return names, nil
}

// RemoveEntry removes one entry from the named list.
func (ls *ListStorage) RemoveEntry(listName, value string) error {
	result, err := ls.sqlite.DB.Exec(`
		DELETE FROM validation_entries WHERE list_name = ? AND value = ?`, listName, value)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// DeleteList removes the named list and all its entries.
func (ls *ListStorage) DeleteList(listName string) error {
	result, err := ls.sqlite.DB.Exec(`
		DELETE FROM validation_entries WHERE list_name = ?`, listName)
	if err != nil {
		return fmt.Errorf("failed to delete list: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrListNotFound
	}

	ls.logger.Debugw("list deleted", "list", listName, "entries", affected)
	return nil
}

// ReplaceEntries atomically replaces the named list's entries.
func (ls *ListStorage) ReplaceEntries(listName string, values []string) error {
	tx, err := ls.sqlite.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM validation_entries WHERE list_name = ?`, listName); err != nil {
		return fmt.Errorf("failed to clear list: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT OR IGNORE INTO validation_entries (list_name, value) VALUES (?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, value := range values {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, err := stmt.Exec(listName, value); err != nil {
			return fmt.Errorf("failed to insert entry %q: %w", value, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit list replacement: %w", err)
	}
	return nil
}
