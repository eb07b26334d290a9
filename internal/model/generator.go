package model

// GenerateRequest represents a password generation request.
// Pointer bools allow distinguishing between missing (nil -> default true) and explicit false.
type GenerateRequest struct {
	Length    int   `json:"length" validate:"gte=0"`
	Uppercase *bool `json:"uppercase"`
	Lowercase *bool `json:"lowercase"`
	Numbers   *bool `json:"numbers"`
	Symbols   *bool `json:"symbols"`
	// Hash asks for an Argon2id hash of the password alongside it.
	Hash bool `json:"hash"`
}

// BatchGenerateRequest asks for Count passwords sharing the same options.
type BatchGenerateRequest struct {
	GenerateRequest
	Count int `json:"count" validate:"gte=0"`
}

// GenerateResponse represents a password generation response.
type GenerateResponse struct {
	Password string `json:"password"`
	Length   int    `json:"length"`
	Hash     string `json:"hash,omitempty"`
}

// BatchGenerateResponse carries the passwords of a batch request.
type BatchGenerateResponse struct {
	Passwords []GenerateResponse `json:"passwords"`
}
