package models

import (
	"errors"
	"strings"

	"github.com/api-sage/temporal-ledger/src/internal/commons"
)

// Requests mirror the script tuple format. Timestamp is empty for the
// plain variants and a wire-format instant for the _AT variants.

type CreateAccountRequest struct {
	Timestamp string
	AccountID string
	Owner     string
	Amount    string
}

func (r CreateAccountRequest) Validate() error {
	var errs []string

	errs = appendTimestampErr(errs, r.Timestamp)
	if strings.TrimSpace(r.AccountID) == "" {
		errs = append(errs, "account id is required")
	}
	if strings.TrimSpace(r.Owner) == "" {
		errs = append(errs, "owner is required")
	}
	errs = appendAmountErr(errs, r.Amount)

	return joinErrs(errs)
}

type GetBalanceRequest struct {
	Timestamp string
	AccountID string
}

func (r GetBalanceRequest) Validate() error {
	return validateAccountOnly(r.Timestamp, r.AccountID)
}

type DepositRequest struct {
	Timestamp string
	AccountID string
	Amount    string
}

func (r DepositRequest) Validate() error {
	return validateAccountAndAmount(r.Timestamp, r.AccountID, r.Amount)
}

type WithdrawRequest struct {
	Timestamp string
	AccountID string
	Amount    string
}

func (r WithdrawRequest) Validate() error {
	return validateAccountAndAmount(r.Timestamp, r.AccountID, r.Amount)
}

type TransferRequest struct {
	Timestamp     string
	SourceID      string
	DestinationID string
	Amount        string
}

func (r TransferRequest) Validate() error {
	var errs []string

	errs = appendTimestampErr(errs, r.Timestamp)
	src := strings.TrimSpace(r.SourceID)
	dst := strings.TrimSpace(r.DestinationID)
	if src == "" {
		errs = append(errs, "source account id is required")
	}
	if dst == "" {
		errs = append(errs, "destination account id is required")
	}
	if src != "" && src == dst {
		errs = append(errs, "source and destination cannot be the same")
	}
	errs = appendAmountErr(errs, r.Amount)

	return joinErrs(errs)
}

type FreezeAccountRequest struct {
	Timestamp string
	AccountID string
}

func (r FreezeAccountRequest) Validate() error {
	return validateAccountOnly(r.Timestamp, r.AccountID)
}

type UnfreezeAccountRequest struct {
	Timestamp string
	AccountID string
}

func (r UnfreezeAccountRequest) Validate() error {
	return validateAccountOnly(r.Timestamp, r.AccountID)
}

type RollbackRequest struct {
	Timestamp string
}

func (r RollbackRequest) Validate() error {
	if strings.TrimSpace(r.Timestamp) == "" {
		return errors.New("timestamp is required")
	}
	if _, err := commons.ParseTimestamp(r.Timestamp); err != nil {
		return err
	}
	return nil
}

type CreateAccountResponse struct {
	AccountID string
	Owner     string
	Balance   string
	Status    string
	CreatedAt string
}

type GetBalanceResponse struct {
	AccountID string
	Balance   string
	AsOf      string
}

type DepositResponse struct {
	AccountID  string
	Amount     string
	NewBalance string
}

type WithdrawResponse struct {
	AccountID  string
	Amount     string
	NewBalance string
}

type TransferResponse struct {
	SourceID      string
	DestinationID string
	Amount        string
}

type FreezeAccountResponse struct {
	AccountID string
	Status    string
}

type RollbackResponse struct {
	Cutoff  string
	Removed int
}

func validateAccountOnly(timestamp, accountID string) error {
	var errs []string
	errs = appendTimestampErr(errs, timestamp)
	if strings.TrimSpace(accountID) == "" {
		errs = append(errs, "account id is required")
	}
	return joinErrs(errs)
}

func validateAccountAndAmount(timestamp, accountID, amount string) error {
	var errs []string
	errs = appendTimestampErr(errs, timestamp)
	if strings.TrimSpace(accountID) == "" {
		errs = append(errs, "account id is required")
	}
	errs = appendAmountErr(errs, amount)
	return joinErrs(errs)
}

func appendTimestampErr(errs []string, timestamp string) []string {
	if strings.TrimSpace(timestamp) == "" {
		return errs
	}
	if _, err := commons.ParseTimestamp(timestamp); err != nil {
		return append(errs, err.Error())
	}
	return errs
}

func appendAmountErr(errs []string, amount string) []string {
	trimmed := strings.TrimSpace(amount)
	if trimmed == "" {
		return append(errs, "amount is required")
	}
	if strings.HasPrefix(trimmed, "-") {
		return append(errs, "amount cannot be negative")
	}
	return errs
}

func joinErrs(errs []string) error {
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
