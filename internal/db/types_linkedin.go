package db

import "time"

// LinkedInToken is a LinkedIn access token with the member it was issued for.
// It is stored either against an owner or, before association, against the
// OAuth state of the authorization that produced it.
type LinkedInToken struct {
	AccessToken    string    `json:"-"`
	ExpiresAt      time.Time `json:"expires_at"`
	LinkedInUserID string    `json:"linkedin_user_id"`
	LinkedInName   string    `json:"linkedin_name"`
	LinkedInEmail  string    `json:"linkedin_email"`
	CreatedAt      time.Time `json:"created_at"`
}

// Expired reports whether the token is no longer usable at now.
func (t *LinkedInToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
