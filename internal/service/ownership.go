package service

// IsAuthorized reports whether a path user id may reach the task store.
//
// Only the shape of the id is checked: it is never compared with the
// caller's verified identity. Enable STRICT_OWNERSHIP for that comparison.
func IsAuthorized(pathUserID int64) bool {
	return pathUserID > 0
}
