package auth

// Claims representa la identidad extraída de un token válido.
type Claims struct {
	UserID string
	Email  string
}
