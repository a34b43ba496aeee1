package model

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
	Senha string `json:"senha" binding:"required"`
}

type LoginResponse struct {
	AccessToken string   `json:"access_token"`
	Usuario     *Usuario `json:"usuario"`
}

// RegisterRequest is the open self-registration payload. NivelAcesso
// defaults to view-only.
type RegisterRequest struct {
	NomeCompleto string `json:"nome_completo" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Senha        string `json:"senha" binding:"required,min=6"`
	NivelAcesso  int    `json:"nivel_acesso" binding:"omitempty,min=1,max=4"`
	CidadeID     *int64 `json:"cidade_id"`
}
