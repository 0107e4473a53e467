package auth

// Claims representa la identidad resuelta para el request.
type Claims struct {
	UserID string
	Email  string
}
