package domain

// User is the authenticated Toggl account.
type User struct {
	FullName           string
	Email              string
	DefaultWorkspaceID int64
}
