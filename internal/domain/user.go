package domain

import "time"

// User is a partner-cabinet account. Users form a referral hierarchy through
// ReferrerID; children are always discovered by query, never stored.
type User struct {
	ID           int64      `db:"id" json:"id"`
	UserID       string     `db:"user_id" json:"user_id"` // public 8-digit identity, e.g. "00000001"
	Email        string     `db:"email" json:"email"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	Phone        string     `db:"phone" json:"phone"`
	Country      string     `db:"country" json:"country"`
	PasswordHash string     `db:"password_hash" json:"-"`
	ReferrerID   *int64     `db:"referrer_id" json:"referrer_id,omitempty"`
	ReferralCode string     `db:"referral_code" json:"referral_code"`
	ReferralLink string     `db:"referral_link" json:"referral_link"`
	PartnerLevel string     `db:"partner_level" json:"partner_level"`
	IsActive     bool       `db:"is_active" json:"is_active"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`

	// Locally maintained aggregates. These approximate the same concepts the
	// stats service reports instantaneously; the two are never reconciled,
	// the stats service is authoritative for the dashboard read path.
	PersonalVolume         float64 `db:"personal_volume" json:"personal_volume"`
	GroupVolume            float64 `db:"group_volume" json:"group_volume"`
	Earnings               float64 `db:"earnings" json:"earnings"`
	AvailableForWithdrawal float64 `db:"available_for_withdrawal" json:"available_for_withdrawal"`
	TotalReferrals         int     `db:"total_referrals" json:"total_referrals"`
	ActiveReferrals        int     `db:"active_referrals" json:"active_referrals"`
}

// FullName joins the name parts for display.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
