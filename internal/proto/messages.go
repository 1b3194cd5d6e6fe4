// Package proto defines the gophvault.VaultService wire contract. Every
// method takes and returns a google.protobuf.Struct; the typed request and
// response values below are converted to and from it with Encode and Decode.
package proto

// Credential is one stored login. It mirrors the JSON form of the vault
// plaintext.
type Credential struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type PingRequest struct {
	Echo string `json:"echo,omitempty"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type CredentialsRequest struct {
	Email          string `json:"email"`
	MasterPassword string `json:"master_password"`
}

type RegisterRequest = CredentialsRequest

type LoginRequest = CredentialsRequest

type TokenResponse struct {
	UserID       string `json:"user_id,omitempty"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type StoreVaultRequest struct {
	MasterPassword string                `json:"master_password"`
	Vault          map[string]Credential `json:"vault"`
}

type StoreVaultResponse struct {
	Result string `json:"result"`
}

type RetrieveVaultRequest struct {
	MasterPassword string `json:"master_password"`
}

type RetrieveVaultResponse struct {
	Vault map[string]Credential `json:"vault"`
}

type ExportVaultRequest struct{}

type ExportVaultResponse struct {
	URL string `json:"url"`
}

type FetchEnvelopeRequest struct{}

// EnvelopeResponse carries the sealed vault as stored on the server.
type EnvelopeResponse struct {
	Envelope string `json:"envelope"`
}

type PutEnvelopeRequest struct {
	MasterPassword string `json:"master_password"`
	Envelope       string `json:"envelope"`
}

type PutEnvelopeResponse struct {
	Result string `json:"result"`
}
