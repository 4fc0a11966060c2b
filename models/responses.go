package models

// LoginResponse is returned by a successful login: the authenticated user
// plus a freshly minted access/refresh token pair.
type LoginResponse struct {
	User         User   `json:"user"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// RefreshResponse carries the new access token minted from a still-valid
// refresh token.
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// MessageResponse is the generic {"message": ...} body used by endpoints
// that have nothing else to return.
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the uniform error body produced by the HTTP error mapper.
type ErrorResponse struct {
	Error string `json:"error"`
}
