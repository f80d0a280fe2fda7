package auth

import (
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// GenerateTOTP creates a new authenticator secret for the staff account.
// It returns the base32 secret and the otpauth:// URL for QR enrolment.
func GenerateTOTP(issuer, account string) (string, string, error) {
	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      issuer,
		AccountName: account,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
	})
	if err != nil {
		return "", "", err
	}
	return key.Secret(), key.URL(), nil
}

// VerifyTOTP checks a six-digit code against the secret
func VerifyTOTP(code, secret string) bool {
	return totp.Validate(code, secret)
}
