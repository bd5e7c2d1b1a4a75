package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lendora/screening-service/internal/domain/model"
	"github.com/lendora/screening-service/internal/domain/valueobject"
)

// RuleCatalog implements port.RuleCatalog using PostgreSQL. Rule policy
// lives in the fraud_rules table so analysts can retune severities and
// points without a deploy.
type RuleCatalog struct {
	pool *pgxpool.Pool
}

// NewRuleCatalog creates a new PostgreSQL-backed rule catalog.
func NewRuleCatalog(pool *pgxpool.Pool) *RuleCatalog {
	return &RuleCatalog{pool: pool}
}

// ActiveRules returns the active rule definitions for a category, keyed by
// rule code.
func (c *RuleCatalog) ActiveRules(ctx context.Context, category valueobject.RuleCategory) (map[string]model.RuleDefinition, error) {
	rows, err := c.pool.Query(ctx, `
		SELECT code, severity, points
		FROM fraud_rules
		WHERE category = $1 AND active`,
		category.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query fraud rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[string]model.RuleDefinition)
	for rows.Next() {
		var (
			code        string
			severityStr string
			points      int
		)
		if err := rows.Scan(&code, &severityStr, &points); err != nil {
			return nil, fmt.Errorf("failed to scan fraud rule: %w", err)
		}
		severity, err := valueobject.SeverityFromString(severityStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rule severity: %w", err)
		}
		rules[code] = model.RuleDefinition{
			Code:     code,
			Category: category,
			Severity: severity,
			Points:   points,
			Active:   true,
		}
	}

	return rules, rows.Err()
}
