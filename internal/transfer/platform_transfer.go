package transfer

// AccountConnection is the request body of POST /api/platforms/connect.
type AccountConnection struct {
	Platform    string `json:"platform"`
	AccountID   string `json:"account_id"`
	AccountName string `json:"account_name"`
	AccessToken string `json:"access_token"`
}
