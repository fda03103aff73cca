package auth

// OwnsResource reports whether the principal owns a resource. True only
// when both ids are present (non-zero) and equal. Applied before every
// listing mutation and, through the inquiry's listing, before every
// inquiry status transition.
func OwnsResource(principalID, ownerID int64) bool {
	return principalID != 0 && ownerID != 0 && principalID == ownerID
}
