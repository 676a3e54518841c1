package repository

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"partner_cabinet/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, user_id, email, first_name, last_name, phone, country,
	password_hash, referrer_id, referral_code, referral_link, partner_level,
	is_active, created_at, personal_volume, group_volume, earnings,
	available_for_withdrawal, total_referrals, active_referrals`

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GenerateReferralCode generates a 16-char uppercase hex referral code.
func GenerateReferralCode() string {
	buf := make([]byte, 8)
	rand.Read(buf)
	return strings.ToUpper(hex.EncodeToString(buf))
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.UserID, &u.Email, &u.FirstName, &u.LastName, &u.Phone,
		&u.Country, &u.PasswordHash, &u.ReferrerID, &u.ReferralCode,
		&u.ReferralLink, &u.PartnerLevel, &u.IsActive, &u.CreatedAt,
		&u.PersonalVolume, &u.GroupVolume, &u.Earnings,
		&u.AvailableForWithdrawal, &u.TotalReferrals, &u.ActiveReferrals,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// GetByUserID looks a user up by the public 8-digit identity.
func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	return scanUser(row)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	return scanUser(row)
}

// GetByReferralLink resolves the referrer behind a shared "ref-<CODE>" link.
func (r *UserRepository) GetByReferralLink(ctx context.Context, link string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE referral_link = $1`, link)
	return scanUser(row)
}

// Create inserts a new user, assigning the next sequential 8-digit user_id
// and a unique referral code/link. The referral code is retried on the
// (unlikely) unique-constraint collision.
func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var lastID string
	err = tx.QueryRow(ctx,
		`SELECT user_id FROM users ORDER BY id DESC LIMIT 1 FOR UPDATE`,
	).Scan(&lastID)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		u.UserID = "00000001"
	case err != nil:
		return err
	default:
		n, convErr := strconv.Atoi(lastID)
		if convErr != nil {
			return fmt.Errorf("malformed last user_id %q: %w", lastID, convErr)
		}
		u.UserID = fmt.Sprintf("%08d", n+1)
	}

	if u.PartnerLevel == "" {
		u.PartnerLevel = "Beginner"
	}

	for attempt := 0; attempt < 5; attempt++ {
		u.ReferralCode = GenerateReferralCode()
		u.ReferralLink = "ref-" + u.ReferralCode

		err = tx.QueryRow(ctx,
			`INSERT INTO users (user_id, email, first_name, last_name, phone, country,
				password_hash, referrer_id, referral_code, referral_link, partner_level, is_active)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			 ON CONFLICT (referral_code) DO NOTHING
			 RETURNING id, created_at`,
			u.UserID, u.Email, u.FirstName, u.LastName, u.Phone, u.Country,
			u.PasswordHash, u.ReferrerID, u.ReferralCode, u.ReferralLink,
			u.PartnerLevel, true,
		).Scan(&u.ID, &u.CreatedAt)
		if errors.Is(err, pgx.ErrNoRows) {
			continue // referral code collision, regenerate
		}
		if err != nil {
			return err
		}
		u.IsActive = true
		break
	}
	if u.ID == 0 {
		return fmt.Errorf("could not assign a unique referral code")
	}

	if u.ReferrerID != nil {
		_, err = tx.Exec(ctx,
			`UPDATE users SET total_referrals = total_referrals + 1,
				active_referrals = active_referrals + 1
			 WHERE id = $1`,
			*u.ReferrerID,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

// Children returns the direct referrals of the user identified by the public
// user_id. Children are always derived by query, never stored forward.
func (r *UserRepository) Children(ctx context.Context, userID string) ([]domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+`
		 FROM users
		 WHERE referrer_id = (SELECT id FROM users WHERE user_id = $1)
		 ORDER BY id`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var children []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		children = append(children, *u)
	}
	return children, rows.Err()
}

// AdjustVolumes applies a business-event delta to the locally maintained
// aggregates. The CHECK constraints keep counters from going negative.
func (r *UserRepository) AdjustVolumes(ctx context.Context, id int64, personal, group, earnings float64) error {
	_, err := r.db.Exec(ctx,
		`UPDATE users SET
			personal_volume = personal_volume + $2,
			group_volume = group_volume + $3,
			earnings = earnings + $4,
			available_for_withdrawal = available_for_withdrawal + $4
		 WHERE id = $1`,
		id, personal, group, earnings,
	)
	return err
}
