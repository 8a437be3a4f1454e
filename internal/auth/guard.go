package auth

// CanAccess reports whether the holder of p may reach protected views.
// Only the presence of an authenticated principal is checked; the role
// is not consulted here. Admin-only affordances (like the referrer
// prefill) are rendered conditionally by the caller instead.
func CanAccess(p *Principal) bool {
	return p != nil && p.Authenticated
}
