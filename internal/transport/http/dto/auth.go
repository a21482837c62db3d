package dto

type LoginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResp struct {
	UserID    int64  `json:"user_id"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
	ExpiresIn int64  `json:"expires_in"`
}

type RegisterReq struct {
	Username        string `json:"username" validate:"required,min=5,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=255"`
	RetypedPassword string `json:"retyped_password" validate:"required"`
	Email           string `json:"email" validate:"required,email,max=255"`
	FirstName       string `json:"first_name" validate:"required,min=2,max=255"`
	LastName        string `json:"last_name" validate:"required,min=2,max=255"`
}

type UserResp struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type RegisterResp struct {
	User      UserResp `json:"user"`
	Token     string   `json:"token"`
	TokenType string   `json:"token_type"`
	ExpiresIn int64    `json:"expires_in"`
}
