package cmd

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "valepedagio/docs"
	"valepedagio/infra"
	_midlleware "valepedagio/infra/middleware"
)

func StartAPI(ctx context.Context, container *infra.ContainerDI) {
	e := echo.New()

	go func() {
		for {
			select {
			case <-ctx.Done():
				if err := e.Shutdown(ctx); err != nil {
					panic(err)
				}
				return
			default:
				time.Sleep(1 * time.Second)
			}
		}
	}()

	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowMethods: middleware.DefaultCORSConfig.AllowMethods,
	}))

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.POST("/vpo/emissao/iniciar", container.HandlerEmissao.IniciarEmissaoHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/emissao/:uuid", container.HandlerEmissao.GetEmissaoHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/emissao/:uuid/resultado", container.HandlerEmissao.ConsultarResultadoHandler, _midlleware.CheckAuthorization)
	e.POST("/vpo/emissao/:uuid/cancelar", container.HandlerEmissao.CancelarHandler, _midlleware.CheckAuthorization)
	e.POST("/vpo/emissao/:uuid/cancelar-ndd", container.HandlerEmissao.CancelarNddHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/emissao/pacote/:codpac", container.HandlerEmissao.ListarPorPacoteHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/emissoes", container.HandlerEmissao.ListarEmissoesHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/emissoes/estatisticas", container.HandlerEmissao.EstatisticasHandler, _midlleware.CheckAuthorization)

	e.GET("/vpo/pacote/:codpac/validar", container.HandlerEmissao.ValidarPacoteHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/pacote/:codpac/waypoints", container.HandlerEmissao.WaypointsPacoteHandler, _midlleware.CheckAuthorization)
	e.POST("/vpo/roteirizador/consultar", container.HandlerEmissao.ConsultarRoteirizadorHandler, _midlleware.CheckAuthorization)

	e.POST("/vpo/transportador/:codtrn/sincronizar", container.HandlerTransportador.SincronizarHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/transportador/:codtrn", container.HandlerTransportador.GetTransportadorHandler, _midlleware.CheckAuthorization)
	e.PUT("/vpo/transportador/:codtrn", container.HandlerTransportador.AtualizarManualHandler, _midlleware.CheckAuthorization)
	e.POST("/vpo/transportador/sincronizar-lote", container.HandlerTransportador.SincronizarLoteHandler, _midlleware.CheckAuthorization)

	e.GET("/vpo/logs", container.HandlerEmissaoLog.ListarLogsHandler, _midlleware.CheckAuthorization)
	e.GET("/vpo/logs/estatisticas", container.HandlerEmissaoLog.EstatisticasLogsHandler, _midlleware.CheckAuthorization)

	e.GET("/ws/emissoes", container.WsHandler.HandleWs, _midlleware.CheckAuthorization)

	e.Logger.Fatal(e.Start(container.Config.ServerPort))
}
