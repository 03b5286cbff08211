package entity

// User is one persisted account record. The JSON field names match the
// flat-file user database format.
type User struct {
	Username     string `json:"username"`
	PasswordHash string `json:"password"`
}
