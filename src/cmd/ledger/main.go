package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/api-sage/temporal-ledger/src/internal/adapter/repository/memory"
	"github.com/api-sage/temporal-ledger/src/internal/adapter/script/controller"
	"github.com/api-sage/temporal-ledger/src/internal/config"
	"github.com/api-sage/temporal-ledger/src/internal/domain"
	"github.com/api-sage/temporal-ledger/src/internal/usecase/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	dailyLimit, err := domain.ParseMoney(cfg.DailyWithdrawalLimit)
	if err != nil {
		log.Fatalf("parse daily withdrawal limit: %v", err)
	}

	path := cfg.ScriptPath
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	input := os.Stdin
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("open script: %v", err)
		}
		defer f.Close()
		input = f
	}

	eventLog := memory.NewEventLog()
	service := services.NewLedgerService(eventLog, dailyLimit, nil)
	ctrl := controller.NewLedgerController(service)

	ctx := context.Background()
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fmt.Println(ctrl.Execute(ctx, controller.ParseLine(line)))
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("read script: %v", err)
	}
}
