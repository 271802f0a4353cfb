package organization

import "errors"

var (
	ErrOrganizationNotFound = errors.New("organization not found")
	ErrNotMember            = errors.New("user is not a member of this organization")
)
