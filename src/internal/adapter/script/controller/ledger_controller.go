package controller

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/api-sage/temporal-ledger/src/internal/adapter/script/models"
	"github.com/api-sage/temporal-ledger/src/internal/usecase/service_interfaces"
)

// LedgerController turns (NAME, args...) operation tuples into service
// calls and returns exactly one result line per operation.
type LedgerController struct {
	service service_interfaces.LedgerService
}

func NewLedgerController(service service_interfaces.LedgerService) *LedgerController {
	return &LedgerController{service: service}
}

func (c *LedgerController) ExecuteAll(ctx context.Context, operations [][]string) []string {
	results := make([]string, 0, len(operations))
	for _, op := range operations {
		results = append(results, c.Execute(ctx, op))
	}
	return results
}

func (c *LedgerController) Execute(ctx context.Context, operation []string) string {
	if len(operation) == 0 {
		return "error: empty operation"
	}

	name := operation[0]
	args := operation[1:]
	line := c.dispatch(ctx, name, args)
	logOperation(name, args, line)
	return line
}

// dispatch is a closed enumeration of the operation vocabulary; an unknown
// name is a result line, not a failure of the run.
func (c *LedgerController) dispatch(ctx context.Context, name string, args []string) string {
	switch name {
	case "CREATE_ACCOUNT":
		if len(args) != 3 {
			return argCountError(name, 3, len(args))
		}
		resp, _ := c.service.CreateAccount(ctx, models.CreateAccountRequest{
			AccountID: args[0], Owner: args[1], Amount: args[2],
		})
		return resp.Message
	case "CREATE_ACCOUNT_AT":
		if len(args) != 4 {
			return argCountError(name, 4, len(args))
		}
		resp, _ := c.service.CreateAccount(ctx, models.CreateAccountRequest{
			Timestamp: args[0], AccountID: args[1], Owner: args[2], Amount: args[3],
		})
		return resp.Message
	case "GET_BALANCE":
		if len(args) != 1 {
			return argCountError(name, 1, len(args))
		}
		resp, _ := c.service.GetBalance(ctx, models.GetBalanceRequest{AccountID: args[0]})
		return resp.Message
	case "GET_BALANCE_AT":
		if len(args) != 2 {
			return argCountError(name, 2, len(args))
		}
		resp, _ := c.service.GetBalance(ctx, models.GetBalanceRequest{
			Timestamp: args[0], AccountID: args[1],
		})
		return resp.Message
	case "DEPOSIT":
		if len(args) != 2 {
			return argCountError(name, 2, len(args))
		}
		resp, _ := c.service.Deposit(ctx, models.DepositRequest{
			AccountID: args[0], Amount: args[1],
		})
		return resp.Message
	case "DEPOSIT_AT":
		if len(args) != 3 {
			return argCountError(name, 3, len(args))
		}
		resp, _ := c.service.Deposit(ctx, models.DepositRequest{
			Timestamp: args[0], AccountID: args[1], Amount: args[2],
		})
		return resp.Message
	case "WITHDRAW":
		if len(args) != 2 {
			return argCountError(name, 2, len(args))
		}
		resp, _ := c.service.Withdraw(ctx, models.WithdrawRequest{
			AccountID: args[0], Amount: args[1],
		})
		return resp.Message
	case "WITHDRAW_AT":
		if len(args) != 3 {
			return argCountError(name, 3, len(args))
		}
		resp, _ := c.service.Withdraw(ctx, models.WithdrawRequest{
			Timestamp: args[0], AccountID: args[1], Amount: args[2],
		})
		return resp.Message
	case "TRANSFER":
		if len(args) != 3 {
			return argCountError(name, 3, len(args))
		}
		resp, _ := c.service.Transfer(ctx, models.TransferRequest{
			SourceID: args[0], DestinationID: args[1], Amount: args[2],
		})
		return resp.Message
	case "TRANSFER_AT":
		if len(args) != 4 {
			return argCountError(name, 4, len(args))
		}
		resp, _ := c.service.Transfer(ctx, models.TransferRequest{
			Timestamp: args[0], SourceID: args[1], DestinationID: args[2], Amount: args[3],
		})
		return resp.Message
	case "FREEZE_ACCOUNT":
		if len(args) != 1 {
			return argCountError(name, 1, len(args))
		}
		resp, _ := c.service.FreezeAccount(ctx, models.FreezeAccountRequest{AccountID: args[0]})
		return resp.Message
	case "FREEZE_ACCOUNT_AT":
		if len(args) != 2 {
			return argCountError(name, 2, len(args))
		}
		resp, _ := c.service.FreezeAccount(ctx, models.FreezeAccountRequest{
			Timestamp: args[0], AccountID: args[1],
		})
		return resp.Message
	case "UNFREEZE_ACCOUNT":
		if len(args) != 1 {
			return argCountError(name, 1, len(args))
		}
		resp, _ := c.service.UnfreezeAccount(ctx, models.UnfreezeAccountRequest{AccountID: args[0]})
		return resp.Message
	case "UNFREEZE_ACCOUNT_AT":
		if len(args) != 2 {
			return argCountError(name, 2, len(args))
		}
		resp, _ := c.service.UnfreezeAccount(ctx, models.UnfreezeAccountRequest{
			Timestamp: args[0], AccountID: args[1],
		})
		return resp.Message
	case "ROLLBACK_AT":
		if len(args) != 1 {
			return argCountError(name, 1, len(args))
		}
		resp, _ := c.service.Rollback(ctx, models.RollbackRequest{Timestamp: args[0]})
		return resp.Message
	default:
		return fmt.Sprintf("error: unknown operation %s", name)
	}
}

func argCountError(name string, want, got int) string {
	return fmt.Sprintf("error: %s expects %d arguments, got %d", name, want, got)
}

// ParseLine splits a script line into an operation tuple. Double quotes
// group a multi-word field, e.g. owner names.
func ParseLine(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case unicode.IsSpace(r) && !inQuotes:
			if current.Len() > 0 {
				fields = append(fields, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		fields = append(fields, current.String())
	}

	return fields
}
