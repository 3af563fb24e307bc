package ports

// Metrics records the outcomes of directory and account operations.
type Metrics interface {
	// UserOperation counts a directory operation by its result label.
	UserOperation(operation, result string)
	// UserCacheLookup counts a cache lookup as "hit", "miss" or "error".
	UserCacheLookup(result string)
	RoleCreated(role string)
	// Login counts a login attempt as "ok" or "failed".
	Login(result string)
	Registration()
}
