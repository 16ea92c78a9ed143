package service_interfaces

import (
	"context"

	"github.com/api-sage/temporal-ledger/src/internal/adapter/script/models"
	"github.com/api-sage/temporal-ledger/src/internal/commons"
)

type LedgerService interface {
	CreateAccount(ctx context.Context, req models.CreateAccountRequest) (commons.Response[models.CreateAccountResponse], error)
	GetBalance(ctx context.Context, req models.GetBalanceRequest) (commons.Response[models.GetBalanceResponse], error)
	Deposit(ctx context.Context, req models.DepositRequest) (commons.Response[models.DepositResponse], error)
	Withdraw(ctx context.Context, req models.WithdrawRequest) (commons.Response[models.WithdrawResponse], error)
	Transfer(ctx context.Context, req models.TransferRequest) (commons.Response[models.TransferResponse], error)
	FreezeAccount(ctx context.Context, req models.FreezeAccountRequest) (commons.Response[models.FreezeAccountResponse], error)
	UnfreezeAccount(ctx context.Context, req models.UnfreezeAccountRequest) (commons.Response[models.FreezeAccountResponse], error)
	Rollback(ctx context.Context, req models.RollbackRequest) (commons.Response[models.RollbackResponse], error)
}
