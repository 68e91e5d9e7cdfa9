package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/secure-vault/internal/logger"
	"github.com/MKhiriev/secure-vault/models"
)

// vaultRepository is the SQL-backed implementation of [VaultRepository].
// Every query is scoped to the owning user.
type vaultRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewVaultRepository returns a [VaultRepository] backed by db.
func NewVaultRepository(db *DB, logger *logger.Logger) VaultRepository {
	logger.Debug().Msg("creating vault repository")
	return &vaultRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts item with fresh timestamps and returns the stored row. A
// duplicate id yields ErrVaultItemExists.
func (r *vaultRepository) Create(ctx context.Context, item models.VaultItem) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	now := time.Now().UTC().Truncate(time.Microsecond)
	item.CreatedAt, item.UpdatedAt = now, now

	query, args, err := buildCreateVaultItemQuery(r.db.builder, item)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Create").Msg("error building query")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var created models.VaultItem
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		created, scanErr = scanVaultItem(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Create").Str("item_id", item.ID).Msg("error inserting vault item")

		if r.db.errorClassificator.IsUniqueViolation(err) {
			return models.VaultItem{}, ErrVaultItemExists
		}
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return created, nil
}

// Get returns the item only when it belongs to userID. Anything else yields
// ErrVaultItemNotFound.
func (r *vaultRepository) Get(ctx context.Context, userID, itemID string) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildGetVaultItemQuery(r.db.builder, userID, itemID)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Get").Msg("error building query")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var item models.VaultItem
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		item, scanErr = scanVaultItem(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultItem{}, ErrVaultItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Get").Str("item_id", itemID).Msg("error selecting vault item")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return item, nil
}

// List returns every item of userID, most recently updated first.
func (r *vaultRepository) List(ctx context.Context, userID string) ([]models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListVaultItemsQuery(r.db.builder, userID)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.List").Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var items []models.VaultItem
	err = r.db.withRetry(ctx, func() error {
		var queryErr error
		items, queryErr = r.queryItems(ctx, query, args)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.List").Msg("error listing vault items")
		return nil, err
	}

	return items, nil
}

// Search returns one page of the items matching req together with the total
// number of matches.
func (r *vaultRepository) Search(ctx context.Context, req models.VaultSearchRequest) (models.VaultItemList, error) {
	log := logger.FromContext(ctx)

	countQuery, countArgs, err := buildCountVaultItemsQuery(r.db.builder, req)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Search").Msg("error building count query")
		return models.VaultItemList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}
	query, args, err := buildSearchVaultItemsQuery(r.db.builder, req)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Search").Msg("error building search query")
		return models.VaultItemList{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var (
		total int
		items []models.VaultItem
	)
	err = r.db.withRetry(ctx, func() error {
		if scanErr := r.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); scanErr != nil {
			return fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		var queryErr error
		items, queryErr = r.queryItems(ctx, query, args)
		return queryErr
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Search").Msg("error searching vault items")
		return models.VaultItemList{}, err
	}

	return models.VaultItemList{
		Count:  len(items),
		Total:  total,
		Offset: req.Offset,
		Limit:  req.Limit,
		Items:  items,
	}, nil
}

// Update applies the non-nil fields of update and returns the stored item.
func (r *vaultRepository) Update(ctx context.Context, update models.VaultItemUpdate) (models.VaultItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildUpdateVaultItemQuery(r.db.builder, update, time.Now().UTC().Truncate(time.Microsecond))
	if errors.Is(err, ErrNothingToUpdate) {
		return models.VaultItem{}, err
	}
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Update").Msg("error building query")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.VaultItem
	err = r.db.withRetry(ctx, func() error {
		var scanErr error
		updated, scanErr = scanVaultItem(r.db.QueryRowContext(ctx, query, args...))
		return scanErr
	})
	if errors.Is(err, sql.ErrNoRows) {
		return models.VaultItem{}, ErrVaultItemNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Update").Str("item_id", update.ID).Msg("error updating vault item")
		return models.VaultItem{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return updated, nil
}

// Delete removes the item of userID. Deleting a missing or foreign item
// yields ErrVaultItemNotFound.
func (r *vaultRepository) Delete(ctx context.Context, userID, itemID string) error {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteVaultItemQuery(r.db.builder, userID, itemID)
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Delete").Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var affected int64
	err = r.db.withRetry(ctx, func() error {
		res, execErr := r.db.ExecContext(ctx, query, args...)
		if execErr != nil {
			return execErr
		}
		affected, execErr = res.RowsAffected()
		return execErr
	})
	if err != nil {
		log.Err(err).Str("func", "*vaultRepository.Delete").Str("item_id", itemID).Msg("error deleting vault item")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	if affected == 0 {
		return ErrVaultItemNotFound
	}

	return nil
}

// queryItems runs a SELECT over vault_items and scans every row.
func (r *vaultRepository) queryItems(ctx context.Context, query string, args []any) ([]models.VaultItem, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.VaultItem, 0)
	for rows.Next() {
		item, scanErr := scanVaultItem(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, scanErr)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}
