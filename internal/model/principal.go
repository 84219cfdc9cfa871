package model

// Principal identifies the authenticated caller extracted from the access
// token.
type Principal struct {
	UserID         int64
	OrganizationID int64
	Role           string
}
