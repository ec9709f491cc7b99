package model

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// FavoriteMutation is the body returned by POST/DELETE on
// /favorites/{target}/{id}, mirroring the acting user's email.
type FavoriteMutation struct {
	Status   string `json:"status"`
	Email    string `json:"email"`
	Target   string `json:"target"`
	TargetID int64  `json:"target_id"`
}
