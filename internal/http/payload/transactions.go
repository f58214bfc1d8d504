package payload

import (
	"github.com/jellydator/validation"
)

type CreateTransactionRequest struct {
	Recipient string `json:"recipient"`
	Amount    string `json:"amount"`
}

func (t CreateTransactionRequest) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Recipient, validation.Required),
		validation.Field(&t.Amount, validation.Required),
	)
}
