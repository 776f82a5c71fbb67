package validators

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// KeyLengthValidation validates a key length field (in bytes) against the
// algorithm family named by the parent struct's Algorithm field. Generic
// engines accept any non-negative length.
func KeyLengthValidation(fl validator.FieldLevel) bool {
	algorithm := ""
	if s, ok := fl.Parent().FieldByName("Algorithm").Interface().(fmt.Stringer); ok {
		algorithm = s.String()
	}
	keyLen := fl.Field().Int()

	switch algorithm {
	case "AES-CTR-128", "AES-GCM-128":
		return keyLen == 16
	case "AES-CTR-256", "AES-GCM-256":
		return keyLen == 32
	case "ChaCha20-Poly1305":
		return keyLen == 32
	default:
		return keyLen >= 0
	}
}
