package db

// Token is the persisted credential pair. No expiry metadata is kept; an
// expired access token is discovered by a 401 from the API. Access goes
// through TokenRepository and CredentialStore.
type Token struct {
	ID           uint   `gorm:"primaryKey" json:"-"`
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
}
