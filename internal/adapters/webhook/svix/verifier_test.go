package svix

import (
	"encoding/base64"
	"net/http"
	"strconv"
	"testing"
	"time"

	svix "github.com/svix/svix-webhooks/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifier(t *testing.T) {
	secret := "whsec_" + base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	payload := []byte(`{"type":"user.created","data":{"id":"user_1"}}`)

	signer, err := svix.NewWebhook(secret)
	require.NoError(t, err)

	now := time.Now()
	signature, err := signer.Sign("msg_1", now, payload)
	require.NoError(t, err)

	headers := http.Header{}
	headers.Set("svix-id", "msg_1")
	headers.Set("svix-timestamp", strconv.FormatInt(now.Unix(), 10))
	headers.Set("svix-signature", signature)

	verifier, err := NewVerifier(secret)
	require.NoError(t, err)

	assert.NoError(t, verifier.Verify(payload, headers))
	assert.Error(t, verifier.Verify([]byte(`{"type":"user.deleted"}`), headers))
	assert.Error(t, verifier.Verify(payload, http.Header{}))
}
