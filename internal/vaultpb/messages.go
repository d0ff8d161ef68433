package vaultpb

type RegisterRequest struct {
	Email            string `json:"email"`
	SecurityQuestion string `json:"security_question,omitempty"`
	SecurityAnswer   string `json:"security_answer,omitempty"`
}

type RegisterResponse struct {
	Status string `json:"status"`
}

type RecoveryRequest struct {
	Email string `json:"email"`
}

type RecoveryResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type GetVaultRequest struct{}

// GetVaultResponse carries the vault blob. It is empty when nothing was
// ever stored. Blobs are raw bytes, base64 in JSON, so any content survives
// the codec.
type GetVaultResponse struct {
	Blob []byte `json:"blob"`
}

type SetVaultRequest struct {
	Blob []byte `json:"blob"`
}

type SetVaultResponse struct {
	Status string `json:"status"`
}

type StatusRequest struct{}

type StatusResponse struct {
	Status     string `json:"status"`
	Server     string `json:"server"`
	Version    string `json:"version"`
	Encryption string `json:"encryption"`
	Address    string `json:"address"`
}

type TestEmailRequest struct {
	Email string `json:"email"`
}

type TestEmailResponse struct {
	Status string `json:"status"`
}

// Status messages the server attaches to error codes. Clients match on
// MessageMailFailed to tell a mail failure from an unreachable server, both
// of which arrive as codes.Unavailable.
const (
	MessageEmailRequired = "email required"
	MessageEmailNotFound = "email not found in database"
	MessageMailFailed    = "failed to send email"
	MessageInternal      = "internal error"
)
