package domain

import (
	"errors"
	"fmt"
)

var ErrAccountNotFound = errors.New("account not found")
var ErrDestinationNotFound = errors.New("destination account not found")
var ErrInsufficientFunds = errors.New("insufficient funds")
var ErrAccountInactive = errors.New("account inactive")
var ErrDailyLimitExceeded = errors.New("exceeds daily limit")

type DuplicateAccountError struct {
	AccountID string
}

func (e DuplicateAccountError) Error() string {
	return fmt.Sprintf("Account %s already exists", e.AccountID)
}
