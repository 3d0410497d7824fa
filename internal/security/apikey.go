package security

import "golang.org/x/crypto/bcrypt"

// HashAPIKey hashes a plain operator API key with bcrypt. The hash is what
// goes into API_KEY_HASH; the raw key is never stored anywhere.
func HashAPIKey(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)

	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// helper that compares the stored bcrypt hash with a presented key.

func CheckAPIKey(hash, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
}
