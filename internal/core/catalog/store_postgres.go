// Copyright (c) 2026 Grimoire. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/grimoire/internal/core/entity"
	"github.com/taibuivan/grimoire/internal/platform/apperr"
	"github.com/taibuivan/grimoire/internal/platform/database/schema"
	"github.com/taibuivan/grimoire/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// tableFor maps a kind to its table descriptor.
func tableFor(kind entity.Kind) (schema.CatalogTable, error) {
	switch kind {
	case entity.KindRule:
		return schema.CoreRule, nil
	case entity.KindSpell:
		return schema.CoreSpell, nil
	case entity.KindTrait:
		return schema.CoreTrait, nil
	case entity.KindFeat:
		return schema.CoreFeat, nil
	}
	return schema.CatalogTable{}, fmt.Errorf("catalog: no table for kind %q", kind)
}

func (repository *PostgresRepository) List(ctx context.Context, kind entity.Kind) ([]Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NULL ORDER BY %s ASC`,
		strings.Join(table.Columns(), ", "), table.Table, table.DeletedAt, table.Name,
	)
	return repository.queryRecords(ctx, kind, query)
}

func (repository *PostgresRepository) Get(ctx context.Context, kind entity.Kind, id string) (*Record, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s IS NULL`,
		strings.Join(table.Columns(), ", "), table.Table, table.ID, table.DeletedAt,
	)

	record, err := scanRecord(repository.db.QueryRow(ctx, query, id), kind)
	if err != nil {
		return nil, dberr.Wrap(err, string(kind))
	}
	return record, nil
}

func (repository *PostgresRepository) Create(ctx context.Context, record *Record) error {
	table, err := tableFor(record.Kind)
	if err != nil {
		return err
	}

	columns := []string{table.ID, table.Name, table.Description, table.Source, table.Status}
	args := []any{record.ID, record.Name, record.Description, record.Source, string(record.Status)}
	if table.SpellAttributes {
		columns = append(columns, table.School, table.Circle)
		args = append(args, record.School, record.Circle)
	}

	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s, %s`,
		table.Table, strings.Join(columns, ", "), placeholders(1, len(columns)),
		table.CreatedAt, table.UpdatedAt,
	)

	err = repository.db.QueryRow(ctx, query, args...).Scan(&record.CreatedAt, &record.UpdatedAt)
	return dberr.Wrap(err, string(record.Kind))
}

func (repository *PostgresRepository) Update(ctx context.Context, record *Record) error {
	table, err := tableFor(record.Kind)
	if err != nil {
		return err
	}

	assignments := []string{table.Name, table.Description, table.Source, table.Status}
	args := []any{record.ID, record.Name, record.Description, record.Source, string(record.Status)}
	if table.SpellAttributes {
		assignments = append(assignments, table.School, table.Circle)
		args = append(args, record.School, record.Circle)
	}

	sets := make([]string, 0, len(assignments)+1)
	for i, column := range assignments {
		sets = append(sets, fmt.Sprintf("%s = $%d", column, i+2))
	}
	sets = append(sets, table.UpdatedAt+" = NOW()")

	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = $1 AND %s IS NULL RETURNING %s`,
		table.Table, strings.Join(sets, ", "), table.ID, table.DeletedAt, table.UpdatedAt,
	)

	err = repository.db.QueryRow(ctx, query, args...).Scan(&record.UpdatedAt)
	return dberr.Wrap(err, string(record.Kind))
}

// Delete soft-deletes the record so audit history and ids stay stable.
func (repository *PostgresRepository) Delete(ctx context.Context, kind entity.Kind, id string) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		table.Table, table.DeletedAt, table.ID, table.DeletedAt,
	)

	command, err := repository.db.Exec(ctx, query, id)
	if err != nil {
		return dberr.Wrap(err, string(kind))
	}
	if command.RowsAffected() == 0 {
		return apperr.NotFound(string(kind))
	}
	return nil
}

func (repository *PostgresRepository) ListMentionCandidates(ctx context.Context, kind entity.Kind) ([]entity.Unified, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s IS NULL AND strpos(%s, '@') > 0 ORDER BY %s ASC`,
		strings.Join(table.Columns(), ", "), table.Table, table.DeletedAt, table.Description, table.Name,
	)

	records, err := repository.queryRecords(ctx, kind, query)
	if err != nil {
		return nil, err
	}

	candidates := make([]entity.Unified, len(records))
	for i, record := range records {
		candidates[i] = record.Unified()
	}
	return candidates, nil
}

func (repository *PostgresRepository) queryRecords(ctx context.Context, kind entity.Kind, query string, args ...any) ([]Record, error) {
	rows, err := repository.db.Query(ctx, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, string(kind))
	}
	defer rows.Close()

	records := make([]Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows, kind)
		if err != nil {
			return nil, dberr.Wrap(err, string(kind))
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, string(kind))
	}
	return records, nil
}

// scanRecord reads one row in [schema.CatalogTable.Columns] order.
func scanRecord(row pgx.Row, kind entity.Kind) (*Record, error) {
	record := &Record{Kind: kind}
	var status string
	var circle *int16

	err := row.Scan(
		&record.ID, &record.Name, &record.Description, &record.Source, &status,
		&record.School, &circle, &record.CreatedAt, &record.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.Status = entity.Status(status)
	if circle != nil {
		level := int(*circle)
		record.Circle = &level
	}
	return record, nil
}

// placeholders renders "$from, ..., $(from+count-1)".
func placeholders(from, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = fmt.Sprintf("$%d", from+i)
	}
	return strings.Join(parts, ", ")
}
