package main

import (
	"context"
	"os/signal"
	"syscall"

	"valepedagio/cmd"
	"valepedagio/infra"
)

// @title API Vale-Pedágio
// @version 1.0
// @description Retaguarda de emissão de Vale-Pedágio Obrigatório via NDD Cargo, integrada ao ERP Progress.
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGKILL)
	defer stop()

	loadingEnv := infra.NewConfig()
	container := infra.NewContainerDI(loadingEnv)

	cmd.StartAPI(ctx, container)
}
