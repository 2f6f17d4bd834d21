package model

// AccessToken is the payload of the signed token identifying the acting user.
type AccessToken struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
