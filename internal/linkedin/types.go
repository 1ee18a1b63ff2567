package linkedin

import (
	"encoding/json"
	"fmt"
)

// UserInfo is the OpenID Connect userinfo payload.
type UserInfo struct {
	Sub           string `json:"sub"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Locale        Locale `json:"locale"`
}

// Locale accepts both the "en_US" string form and the
// {"language":"en","country":"US"} object form.
type Locale string

// UnmarshalJSON implements json.Unmarshaler.
func (l *Locale) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = Locale(s)
		return nil
	}

	var obj struct {
		Language string `json:"language"`
		Country  string `json:"country"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("invalid locale: %w", err)
	}
	switch {
	case obj.Language != "" && obj.Country != "":
		*l = Locale(obj.Language + "_" + obj.Country)
	default:
		*l = Locale(obj.Language + obj.Country)
	}
	return nil
}

// APIError is a non-2xx reply from a LinkedIn API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("linkedin api returned status %d", e.Status)
}
