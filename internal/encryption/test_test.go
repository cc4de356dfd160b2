package encryption

import (
	"bytes"
	"errors"
	"testing"
)

func testSeal(t *testing.T, e *TestEncryptor, plaintext []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	if err := e.Encrypt(bytes.NewReader(plaintext), &out); err != nil {
		t.Fatalf("Encrypt() error = %v", err)
	}
	return out.Bytes()
}

func TestTestEncryptor_RoundTrip(t *testing.T) {
	inputs := map[string][]byte{
		"collection": []byte(`[{"id":"1","uri":"file:///a.jpg","type":"image"}]`),
		"empty":      {},
		"binary":     {0x00, 0x5a, 0xff},
	}

	for name, plaintext := range inputs {
		t.Run(name, func(t *testing.T) {
			e := NewTestEncryptor()
			sealed := testSeal(t, e, plaintext)

			if !bytes.HasPrefix(sealed, testMagic) {
				t.Errorf("sealed value %q lacks magic prefix", sealed)
			}
			if len(plaintext) > 3 && bytes.Contains(sealed, plaintext) {
				t.Error("sealed value contains the plaintext")
			}

			dec, err := e.Unlock("")
			if err != nil {
				t.Fatalf("Unlock() error = %v", err)
			}
			var out bytes.Buffer
			if err := dec.Decrypt(bytes.NewReader(sealed), &out); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(out.Bytes(), plaintext) {
				t.Errorf("Decrypt() = %q, want %q", out.Bytes(), plaintext)
			}
		})
	}
}

func TestTestEncryptor_Setup(t *testing.T) {
	e := NewTestEncryptor()
	for range 2 {
		if err := e.Setup("ignored"); err != nil {
			t.Fatalf("Setup() error = %v", err)
		}
	}
	if e.setups != 2 {
		t.Errorf("setups = %d, want 2", e.setups)
	}
	if !e.IsConfigured() {
		t.Error("IsConfigured() = false")
	}
}

func TestTestDecryptionContext_RejectsForeignData(t *testing.T) {
	for _, in := range [][]byte{nil, []byte("[]"), []byte("GALLERY-TES")} {
		var out bytes.Buffer
		err := TestDecryptionContext{}.Decrypt(bytes.NewReader(in), &out)
		if !errors.Is(err, ErrNotTestSealed) {
			t.Errorf("Decrypt(%q) error = %v, want ErrNotTestSealed", in, err)
		}
	}
}
