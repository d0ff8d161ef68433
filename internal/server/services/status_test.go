package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	st := NewStatusService("0.0.0.0:59999").Status()

	assert.Equal(t, Status{
		Status:     "online",
		Server:     "CYBER VAULT",
		Version:    "2.0",
		Encryption: "Fernet (AES-128-CBC)",
		Address:    "0.0.0.0:59999",
	}, st)
}
