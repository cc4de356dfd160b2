package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gallery-go/internal/gallery"
)

// testMagic prefixes every value sealed by TestEncryptor.
var testMagic = []byte("GALLERY-TEST\n")

// testMask is XORed over the payload so sealed values never contain the
// plaintext verbatim.
const testMask = 0x5a

// ErrNotTestSealed is returned when decrypting data TestEncryptor did not write.
var ErrNotTestSealed = errors.New("value was not sealed by the test encryptor")

// TestEncryptor is a keyless, deterministic Encryptor for tests and for the
// "test" encryption type. It offers no secrecy.
type TestEncryptor struct {
	setups int
}

var _ gallery.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

// Setup accepts any passphrase and counts the call.
func (e *TestEncryptor) Setup(string) error {
	e.setups++
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading plaintext: %w", err)
	}
	mask(data)
	if _, err := w.Write(append(append([]byte{}, testMagic...), data...)); err != nil {
		return fmt.Errorf("writing sealed value: %w", err)
	}
	return nil
}

// Unlock accepts any passphrase.
func (e *TestEncryptor) Unlock(string) (gallery.DecryptionContext, error) {
	return TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool { return true }

// TestDecryptionContext reverses TestEncryptor.
type TestDecryptionContext struct{}

var _ gallery.DecryptionContext = TestDecryptionContext{}

func (TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading sealed value: %w", err)
	}
	payload, ok := bytes.CutPrefix(data, testMagic)
	if !ok {
		return ErrNotTestSealed
	}
	mask(payload)
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("writing plaintext: %w", err)
	}
	return nil
}

func mask(b []byte) {
	for i := range b {
		b[i] ^= testMask
	}
}
