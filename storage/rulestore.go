package storage

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"chesttrack/core"
)

// StoredRule is a correction rule with its storage identity.
type StoredRule struct {
	ID   string
	Rule core.CorrectionRule
}

// RuleStorage handles correction rule persistence in SQLite.
type RuleStorage struct {
	sqlite *SQLite
	logger *zap.SugaredLogger
}

// NewRuleStorage creates a rule storage handler.
func NewRuleStorage(sqlite *SQLite, logger *zap.SugaredLogger) *RuleStorage {
	return &RuleStorage{
		sqlite: sqlite,
		logger: logger.Named("storage.rules"),
	}
}

// SaveRule inserts a rule and returns its generated ID.
func (rs *RuleStorage) SaveRule(rule core.CorrectionRule) (string, error) {
	id := uuid.New().String()

	_, err := rs.sqlite.DB.Exec(`
		INSERT INTO correction_rules (id, from_text, to_text, rule_type, priority, category)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, rule.FromText, rule.ToText, rule.Type.String(), rule.Priority, rule.Category.String())
	if err != nil {
		return "", fmt.Errorf("failed to insert rule: %w", err)
	}

	rs.logger.Debugw("rule saved", "rule_id", id, "from", rule.FromText)
	return id, nil
}

// GetRule retrieves a single rule by ID.
func (rs *RuleStorage) GetRule(id string) (*StoredRule, error) {
	row := rs.sqlite.DB.QueryRow(`
		SELECT id, from_text, to_text, rule_type, priority, category
		FROM correction_rules WHERE id = ?`, id)

	stored, err := scanRule(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query rule: %w", err)
	}
	return stored, nil
}

// GetAllRules retrieves every rule in insertion order.
func (rs *RuleStorage) GetAllRules() ([]StoredRule, error) {
	rows, err := rs.sqlite.DB.Query(`
		SELECT id, from_text, to_text, rule_type, priority, category
		FROM correction_rules ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var result []StoredRule
	for rows.Next() {
		stored, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		result = append(result, *stored)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rules: %w", err)
	}
	return result, nil
}

// RuleCount returns the total number of stored rules.
func (rs *RuleStorage) RuleCount() (int64, error) {
	var count int64
	if err := rs.sqlite.DB.QueryRow("SELECT COUNT(*) FROM correction_rules").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return count, nil
}

// UpdateRule replaces the stored rule under id.
func (rs *RuleStorage) UpdateRule(id string, rule core.CorrectionRule) error {
	result, err := rs.sqlite.DB.Exec(`
		UPDATE correction_rules
		SET from_text = ?, to_text = ?, rule_type = ?, priority = ?, category = ?,
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		rule.FromText, rule.ToText, rule.Type.String(), rule.Priority, rule.Category.String(), id)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// DeleteRule removes the rule under id.
func (rs *RuleStorage) DeleteRule(id string) error {
	result, err := rs.sqlite.DB.Exec("DELETE FROM correction_rules WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return ErrRuleNotFound
	}

	rs.logger.Debugw("rule deleted", "rule_id", id)
	return nil
}

// ReplaceAllRules atomically replaces the full rule set, as when importing
// a rule file. The previous rules are gone only if every insert succeeds.
func (rs *RuleStorage) ReplaceAllRules(rules []core.CorrectionRule) error {
	tx, err := rs.sqlite.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM correction_rules"); err != nil {
		return fmt.Errorf("failed to clear rules: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO correction_rules (id, from_text, to_text, rule_type, priority, category)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rule := range rules {
		_, err := stmt.Exec(uuid.New().String(),
			rule.FromText, rule.ToText, rule.Type.String(), rule.Priority, rule.Category.String())
		if err != nil {
			return fmt.Errorf("failed to insert rule %q: %w", rule.FromText, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit rule replacement: %w", err)
	}

	rs.logger.Infow("rule set replaced", "rules", len(rules))
	return nil
}

// scanTarget is satisfied by *sql.Row and *sql.Rows.
type scanTarget interface {
	Scan(dest ...any) error
}

func scanRule(row scanTarget) (*StoredRule, error) {
	var (
		id, fromText, toText, ruleType, category string
		priority                                 int
	)
	if err := row.Scan(&id, &fromText, &toText, &ruleType, &priority, &category); err != nil {
		return nil, err
	}

	return &StoredRule{
		ID:   id,
		Rule: core.NewRule(fromText, toText, core.ParseRuleType(ruleType), priority, core.ParseCategory(category)),
	}, nil
}
