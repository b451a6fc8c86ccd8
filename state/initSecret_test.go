package state

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestPublicKey(t *testing.T, dir string) string {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)

	path := filepath.Join(dir, "public.pem")
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	require.NoError(t, os.WriteFile(path, pemBytes, 0o600))

	return path
}

func TestInitSecret_Success(t *testing.T) {
	path := writeTestPublicKey(t, t.TempDir())

	secret, err := InitSecret(path)

	require.NoError(t, err)
	require.NotNil(t, secret)
	assert.NotNil(t, secret.Public, "public key should be parsed")
}

func TestInitSecret_MissingFile(t *testing.T) {
	secret, err := InitSecret(filepath.Join(t.TempDir(), "nope.pem"))

	assert.Error(t, err)
	assert.Nil(t, secret)
}

func TestInitSecret_InvalidPEM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.pem")
	require.NoError(t, os.WriteFile(path, []byte("not a pem"), 0o600))

	secret, err := InitSecret(path)

	assert.Error(t, err)
	assert.Nil(t, secret)
	assert.Contains(t, err.Error(), "invalid public key")
}
