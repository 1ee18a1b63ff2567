//nolint:revive // types is a standard Go package name pattern
package types

// LinkedInAssociateRequest links a pending LinkedIn authorization to the caller.
type LinkedInAssociateRequest struct {
	State string `json:"state" validate:"required,notblank"`
}

// Validate validates the LinkedInAssociateRequest.
func (r *LinkedInAssociateRequest) Validate() error {
	return validate.Struct(r)
}

// LinkedInProfile is the basic profile returned by the OpenID userinfo endpoint.
type LinkedInProfile struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	PictureURL string `json:"pictureUrl"`
	LinkedInID string `json:"linkedInId"`
	Locale     string `json:"locale"`
}

// SuccessResponse acknowledges an operation that returns no data.
type SuccessResponse struct {
	Success bool `json:"success"`
}
