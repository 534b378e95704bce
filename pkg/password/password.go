// Package password hashea y verifica contraseñas con PBKDF2-SHA256 y sal por contraseña.
//
// El formato es compatible con passlib (pbkdf2_sha256), el mismo que usaban las cuentas
// existentes: $pbkdf2-sha256$<rondas>$<sal>$<hash>, con base64 "adaptado" ('.' en lugar de '+', sin relleno).
// Los hashes bcrypt ($2a$/$2b$) se siguen aceptando al verificar.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultRounds rondas por defecto de passlib para pbkdf2_sha256.
	DefaultRounds = 29000
	saltSize      = 16
	keySize       = sha256.Size
	prefix        = "$pbkdf2-sha256$"
)

// ErrMalformedHash el hash almacenado no tiene un formato reconocido.
var ErrMalformedHash = errors.New("password: hash con formato inválido")

var adaptedB64 = base64.NewEncoding("ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789./").WithPadding(base64.NoPadding)

// Hasher genera hashes con un número fijo de rondas.
type Hasher struct {
	Rounds int
}

// NewHasher construye un Hasher; rounds <= 0 usa DefaultRounds.
func NewHasher(rounds int) *Hasher {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	return &Hasher{Rounds: rounds}
}

// Hash devuelve el hash PBKDF2 de plain con una sal aleatoria nueva.
func (h *Hasher) Hash(plain string) (string, error) {
	if plain == "" {
		return "", errors.New("password: contraseña vacía")
	}
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generar sal: %w", err)
	}
	key := pbkdf2.Key([]byte(plain), salt, h.Rounds, keySize, sha256.New)
	return fmt.Sprintf("%s%d$%s$%s", prefix, h.Rounds, adaptedB64.EncodeToString(salt), adaptedB64.EncodeToString(key)), nil
}

// Verify compara plain contra el hash almacenado en tiempo constante.
func (h *Hasher) Verify(plain, stored string) (bool, error) {
	switch {
	case strings.HasPrefix(stored, prefix):
		return verifyPBKDF2(plain, stored)
	case strings.HasPrefix(stored, "$2a$"), strings.HasPrefix(stored, "$2b$"), strings.HasPrefix(stored, "$2y$"):
		err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("password: bcrypt: %w", err)
		}
		return true, nil
	}
	return false, ErrMalformedHash
}

func verifyPBKDF2(plain, stored string) (bool, error) {
	parts := strings.Split(strings.TrimPrefix(stored, prefix), "$")
	if len(parts) != 3 {
		return false, ErrMalformedHash
	}
	rounds, err := strconv.Atoi(parts[0])
	if err != nil || rounds <= 0 {
		return false, ErrMalformedHash
	}
	salt, err := adaptedB64.DecodeString(parts[1])
	if err != nil {
		return false, ErrMalformedHash
	}
	want, err := adaptedB64.DecodeString(parts[2])
	if err != nil || len(want) == 0 {
		return false, ErrMalformedHash
	}
	got := pbkdf2.Key([]byte(plain), salt, rounds, len(want), sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
