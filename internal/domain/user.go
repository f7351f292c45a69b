package domain

// AdminUsername is the root account that can never be deleted.
const AdminUsername = "admin"

// User represents an account in the directory. The username is the
// immutable, case-sensitive key.
type User struct {
	Username string // Login username
	Password string // bcrypt hash, or plaintext for legacy records
	IsAdmin  bool   // Grants access to administrative operations
}
