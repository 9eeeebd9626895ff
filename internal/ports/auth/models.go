package auth

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	// Role es el rol que asigna el backend ("authenticated", "anon", ...).
	Role string
}
