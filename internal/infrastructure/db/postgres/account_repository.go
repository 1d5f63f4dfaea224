package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/newsdesk/newsreader/internal/core/domain"
	"github.com/newsdesk/newsreader/internal/core/ports"
)

const uniqueViolationCode = "23505"

// AccountRepository persists accounts and profiles in the users/person
// tables. Multi-row writes run inside one transaction; the duplicate-username
// pre-checks are a fast path and the LOWER(username) unique index is the
// final arbiter, surfaced as domain.ErrUsernameTaken either way.
type AccountRepository struct {
	db *sql.DB
}

func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

func (r *AccountRepository) CreateWithProfile(ctx context.Context, account *domain.Account, profile *domain.Profile) (*domain.Account, error) {
	created := *account
	err := withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var existing int64
		err := tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE LOWER(username) = LOWER($1)`,
			account.Username).Scan(&existing)
		if err == nil {
			return domain.ErrUsernameTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check username: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO users (username, password_hash, is_admin)
			 VALUES ($1, $2, $3)
			 RETURNING id`,
			account.Username, account.PasswordHash, account.IsAdmin).Scan(&created.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("insert account: %w", err)
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO person
			   (user_id, first_name, last_name, city, state, country,
			    favorite_topics, favorite_sources, favorite_authors)
			 VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), NULLIF($5, ''),
			         NULLIF($6, ''), NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''))
			 RETURNING id`,
			created.ID, profile.FirstName, profile.LastName, profile.City, profile.State,
			profile.Country, profile.FavoriteTopics, profile.FavoriteSources,
			profile.FavoriteAuthors).Scan(&profile.ID)
		if err != nil {
			return fmt.Errorf("insert profile: %w", err)
		}
		profile.AccountID = created.ID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	return r.scanAccount(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, is_admin
		 FROM users
		 WHERE LOWER(username) = LOWER($1)`, username))
}

func (r *AccountRepository) FindByID(ctx context.Context, id int64) (*domain.Account, error) {
	return r.scanAccount(r.db.QueryRowContext(ctx,
		`SELECT id, username, password_hash, is_admin
		 FROM users
		 WHERE id = $1`, id))
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*domain.Account, error) {
	account := &domain.Account{}
	err := row.Scan(&account.ID, &account.Username, &account.PasswordHash, &account.IsAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

func (r *AccountRepository) IsAdmin(ctx context.Context, id int64) (bool, error) {
	var isAdmin bool
	err := r.db.QueryRowContext(ctx,
		`SELECT is_admin FROM users WHERE id = $1`, id).Scan(&isAdmin)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, domain.ErrAccountNotFound
		}
		return false, fmt.Errorf("read admin flag: %w", err)
	}
	return isAdmin, nil
}

// directoryColumns lists the joined select for account+profile reads. NULL
// profile fields come back as empty strings; the two are equivalent in the
// domain model.
const directoryColumns = `
	u.id, u.username, u.is_admin,
	p.id, p.user_id,
	COALESCE(p.first_name, ''), COALESCE(p.last_name, ''),
	COALESCE(p.city, ''), COALESCE(p.state, ''), COALESCE(p.country, ''),
	COALESCE(p.favorite_topics, ''), COALESCE(p.favorite_sources, ''),
	COALESCE(p.favorite_authors, '')`

const directoryFrom = ` FROM person p JOIN users u ON u.id = p.user_id`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDirectoryEntry(row rowScanner) (*domain.DirectoryEntry, error) {
	e := &domain.DirectoryEntry{}
	err := row.Scan(
		&e.Account.ID, &e.Account.Username, &e.Account.IsAdmin,
		&e.Profile.ID, &e.Profile.AccountID,
		&e.Profile.FirstName, &e.Profile.LastName,
		&e.Profile.City, &e.Profile.State, &e.Profile.Country,
		&e.Profile.FavoriteTopics, &e.Profile.FavoriteSources,
		&e.Profile.FavoriteAuthors,
	)
	if err != nil {
		return nil, err
	}
	return e, nil
}

func (r *AccountRepository) Search(ctx context.Context, term string) ([]*domain.DirectoryEntry, error) {
	query := `SELECT` + directoryColumns + directoryFrom
	var args []any

	if term != "" {
		conds := []string{
			`LOWER(u.username) LIKE $1`,
			`LOWER(COALESCE(p.first_name, '')) LIKE $1`,
			`LOWER(COALESCE(p.last_name, '')) LIKE $1`,
			`LOWER(COALESCE(p.city, '')) LIKE $1`,
			`LOWER(COALESCE(p.state, '')) LIKE $1`,
			`LOWER(COALESCE(p.country, '')) LIKE $1`,
		}
		args = append(args, "%"+strings.ToLower(term)+"%")
		if id, err := strconv.ParseInt(term, 10, 64); err == nil {
			conds = append(conds, `u.id = $2`)
			args = append(args, id)
		}
		query += ` WHERE (` + strings.Join(conds, ` OR `) + `)`
	}
	query += ` ORDER BY p.id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	defer rows.Close()

	var entries []*domain.DirectoryEntry
	for rows.Next() {
		e, err := scanDirectoryEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("search accounts: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("search accounts: %w", err)
	}
	return entries, nil
}

func (r *AccountRepository) FindByProfileID(ctx context.Context, profileID int64) (*domain.DirectoryEntry, error) {
	e, err := scanDirectoryEntry(r.db.QueryRowContext(ctx,
		`SELECT`+directoryColumns+directoryFrom+` WHERE p.id = $1`, profileID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find by profile id: %w", err)
	}
	return e, nil
}

func (r *AccountRepository) FindByAccountID(ctx context.Context, accountID int64) (*domain.DirectoryEntry, error) {
	e, err := scanDirectoryEntry(r.db.QueryRowContext(ctx,
		`SELECT`+directoryColumns+directoryFrom+` WHERE p.user_id = $1`, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find by account id: %w", err)
	}
	return e, nil
}

func (r *AccountRepository) Update(ctx context.Context, params ports.UpdateAccountParams) error {
	return withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var accountID int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM person WHERE id = $1`, params.ProfileID).Scan(&accountID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return domain.ErrAccountNotFound
			}
			return fmt.Errorf("resolve profile: %w", err)
		}

		// Uniqueness check excludes the account being edited: keeping one's
		// own username is not a collision.
		var clash int64
		err = tx.QueryRowContext(ctx,
			`SELECT id FROM users WHERE LOWER(username) = LOWER($1) AND id <> $2`,
			params.Username, accountID).Scan(&clash)
		if err == nil {
			return domain.ErrUsernameTaken
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("check username: %w", err)
		}

		if params.PasswordHash != "" {
			_, err = tx.ExecContext(ctx,
				`UPDATE users SET username = $1, password_hash = $2, is_admin = $3 WHERE id = $4`,
				params.Username, params.PasswordHash, params.IsAdmin, accountID)
		} else {
			_, err = tx.ExecContext(ctx,
				`UPDATE users SET username = $1, is_admin = $2 WHERE id = $3`,
				params.Username, params.IsAdmin, accountID)
		}
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUsernameTaken
			}
			return fmt.Errorf("update account: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`UPDATE person
			 SET first_name = NULLIF($1, ''), last_name = NULLIF($2, ''),
			     city = NULLIF($3, ''), state = NULLIF($4, ''), country = NULLIF($5, ''),
			     favorite_topics = NULLIF($6, ''), favorite_sources = NULLIF($7, ''),
			     favorite_authors = NULLIF($8, '')
			 WHERE id = $9`,
			params.Profile.FirstName, params.Profile.LastName, params.Profile.City,
			params.Profile.State, params.Profile.Country, params.Profile.FavoriteTopics,
			params.Profile.FavoriteSources, params.Profile.FavoriteAuthors,
			params.ProfileID); err != nil {
			return fmt.Errorf("update profile: %w", err)
		}
		return nil
	})
}

func (r *AccountRepository) UpdateProfileByAccountID(ctx context.Context, accountID int64, profile domain.Profile) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE person
		 SET first_name = NULLIF($1, ''), last_name = NULLIF($2, ''),
		     city = NULLIF($3, ''), state = NULLIF($4, ''), country = NULLIF($5, ''),
		     favorite_topics = NULLIF($6, ''), favorite_sources = NULLIF($7, ''),
		     favorite_authors = NULLIF($8, '')
		 WHERE user_id = $9`,
		profile.FirstName, profile.LastName, profile.City, profile.State, profile.Country,
		profile.FavoriteTopics, profile.FavoriteSources, profile.FavoriteAuthors,
		accountID)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n == 0 {
		return domain.ErrAccountNotFound
	}
	return nil
}

// DeleteByProfileID removes the profile row and then its account inside one
// transaction, so an orphaned profile is never observable. Saved articles go
// with the account via the news_posts ON DELETE CASCADE.
func (r *AccountRepository) DeleteByProfileID(ctx context.Context, profileID int64) error {
	return withTx(ctx, r.db, func(ctx context.Context, tx DBTX) error {
		var accountID int64
		err := tx.QueryRowContext(ctx,
			`SELECT user_id FROM person WHERE id = $1`, profileID).Scan(&accountID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				// Already deleted; treat as success.
				return nil
			}
			return fmt.Errorf("resolve profile: %w", err)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM person WHERE id = $1`, profileID); err != nil {
			return fmt.Errorf("delete profile: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, accountID); err != nil {
			return fmt.Errorf("delete account: %w", err)
		}
		return nil
	})
}
