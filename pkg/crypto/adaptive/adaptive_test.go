package adaptive

import (
	"bytes"
	"errors"
	"testing"
)

var (
	key16 = make([]byte, 16)
	key32 = make([]byte, 32)
)

func init() {
	for i := range key16 {
		key16[i] = byte(i)
	}
	for i := range key32 {
		key32[i] = byte(i)
	}
}

func TestNew(t *testing.T) {
	c, err := New(key32)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if typ := c.Type(); typ != CipherAESGCM && typ != CipherChaCha20 {
		t.Errorf("New() returned unknown cipher type: %s", typ)
	}
}

func TestNewWithType(t *testing.T) {
	tests := []struct {
		name    string
		typ     CipherType
		key     []byte
		want    CipherType
		wantErr bool
	}{
		{"aes-gcm 256", CipherAESGCM, key32, CipherAESGCM, false},
		{"aes-gcm 128", CipherAESGCM, key16, CipherAESGCM, false},
		{"chacha20", CipherChaCha20, key32, CipherChaCha20, false},
		{"chacha20 short key", CipherChaCha20, key16, "", true},
		{"aes-gcm bad key", CipherAESGCM, make([]byte, 17), "", true},
		{"unknown", "rot13", key32, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewWithType(tt.key, tt.typ)
			if tt.wantErr {
				if err == nil {
					t.Error("NewWithType() should return error")
				}
				return
			}
			if err != nil {
				t.Fatalf("NewWithType() error = %v", err)
			}
			if c.Type() != tt.want {
				t.Errorf("Type() = %s, want %s", c.Type(), tt.want)
			}
		})
	}
}

func TestEncryptDecrypt(t *testing.T) {
	for _, typ := range []CipherType{CipherAESGCM, CipherChaCha20} {
		t.Run(string(typ), func(t *testing.T) {
			c, err := NewWithType(key32, typ)
			if err != nil {
				t.Fatal(err)
			}

			plaintext := []byte(`{"controls":{"pitch":"axis1"}}`)
			aad := []byte("gcp_profile_Airbus")

			sealed, err := c.Encrypt(plaintext, aad)
			if err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if bytes.Contains(sealed, plaintext) {
				t.Error("ciphertext contains plaintext")
			}

			opened, err := c.Decrypt(sealed, aad)
			if err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(opened, plaintext) {
				t.Errorf("Decrypt() = %q, want %q", opened, plaintext)
			}

			if _, err := c.Decrypt(sealed, []byte("gcp_profile_other")); !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("Decrypt() with wrong aad error = %v, want ErrDecryptionFailed", err)
			}

			tampered := append([]byte(nil), sealed...)
			tampered[len(tampered)-1] ^= 0xff
			if _, err := c.Decrypt(tampered, aad); !errors.Is(err, ErrDecryptionFailed) {
				t.Errorf("Decrypt() tampered error = %v, want ErrDecryptionFailed", err)
			}

			if _, err := c.Decrypt([]byte{1, 2, 3}, aad); !errors.Is(err, ErrCiphertextShort) {
				t.Errorf("Decrypt() short error = %v, want ErrCiphertextShort", err)
			}
		})
	}
}

func TestEncrypt_Uniqueness(t *testing.T) {
	c, err := New(key32)
	if err != nil {
		t.Fatal(err)
	}

	a, _ := c.Encrypt([]byte("same"), nil)
	b, _ := c.Encrypt([]byte("same"), nil)
	if bytes.Equal(a, b) {
		t.Error("two encryptions of the same plaintext should differ")
	}
}

func TestDeriveKey(t *testing.T) {
	secret := []byte("correct horse battery staple")

	k1, err := DeriveKey(secret, "payload")
	if err != nil {
		t.Fatalf("DeriveKey() error = %v", err)
	}
	k2, _ := DeriveKey(secret, "payload")
	k3, _ := DeriveKey(secret, "other")

	if len(k1) != KeySize {
		t.Errorf("len = %d, want %d", len(k1), KeySize)
	}
	if !bytes.Equal(k1, k2) {
		t.Error("same secret and info should derive the same key")
	}
	if bytes.Equal(k1, k3) {
		t.Error("different info should derive different keys")
	}

	if _, err := DeriveKey([]byte("short"), "payload"); !errors.Is(err, ErrSecretTooShort) {
		t.Errorf("DeriveKey() short secret error = %v", err)
	}
}

func TestFromSecret_Stable(t *testing.T) {
	secret := []byte("0123456789abcdef0123")

	c1, err := FromSecret(secret, CipherChaCha20, "payload")
	if err != nil {
		t.Fatal(err)
	}
	c2, err := FromSecret(secret, CipherChaCha20, "payload")
	if err != nil {
		t.Fatal(err)
	}

	sealed, _ := c1.Encrypt([]byte("value"), nil)
	opened, err := c2.Decrypt(sealed, nil)
	if err != nil || string(opened) != "value" {
		t.Errorf("cipher from the same secret failed to open: %q, %v", opened, err)
	}
}

func TestZeroKey(t *testing.T) {
	key := []byte{1, 2, 3}
	ZeroKey(key)
	for _, b := range key {
		if b != 0 {
			t.Fatal("ZeroKey left non-zero bytes")
		}
	}
}

func BenchmarkEncrypt_1KB(b *testing.B) {
	c, _ := New(key32)
	data := make([]byte, 1024)
	b.SetBytes(int64(len(data)))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.Encrypt(data, nil)
	}
}
