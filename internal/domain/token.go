package domain

// TokenInfo is the decoded state of a quota token lineage after an issue,
// refresh or consume operation.
type TokenInfo struct {
	Token             string
	MessagesUsed      int
	MessagesLimit     int
	ResetAt           int64
	ExpiresIn         int64
	MessagesRemaining int
}
