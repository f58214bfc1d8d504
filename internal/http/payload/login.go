package payload

import (
	"regexp"

	"github.com/jellydator/validation"
)

var addressRegex = regexp.MustCompile(`^0x[0-9a-fA-F]+$`)

type LoginRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature"`
}

func (l LoginRequest) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Address, validation.Required, validation.Match(addressRegex)),
		validation.Field(&l.Signature, validation.Required),
	)
}
