package vaultpb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/encoding"
)

func TestCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	require.NotNil(t, c)
	assert.Equal(t, CodecName, c.Name())
}

func TestCodec_WireNames(t *testing.T) {
	c := jsonCodec{}

	b, err := c.Marshal(&RegisterRequest{Email: "u@x.com", SecurityQuestion: "q"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"u@x.com","security_question":"q"}`, string(b))

	var out RegisterRequest
	require.NoError(t, c.Unmarshal([]byte(`{"email":"a@b.c","security_answer":"x"}`), &out))
	assert.Equal(t, RegisterRequest{Email: "a@b.c", SecurityAnswer: "x"}, out)
}

func TestCodec_EmptyPayload(t *testing.T) {
	var out GetVaultRequest
	require.NoError(t, jsonCodec{}.Unmarshal(nil, &out))
}

func TestCodec_BadPayload(t *testing.T) {
	var out RegisterRequest
	require.Error(t, jsonCodec{}.Unmarshal([]byte("{"), &out))
}
