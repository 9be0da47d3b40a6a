package transportador

import (
	"net/http"

	"valepedagio/validation"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewTransportadorHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// SincronizarHandler godoc
// @Summary Sincronizar Transportador
// @Description Sincroniza os dados do transportador a partir do ERP Progress, cache de motoristas e consulta ANTT, gravando o perfil consolidado no cache local.
// @Tags Transportadores
// @Accept json
// @Produce json
// @Param codtrn path int true "Código do Transportador"
// @Param codmot query int false "Código do Motorista (empresas)"
// @Param placa query string false "Placa do Veículo"
// @Param force query bool false "Forçar consulta ANTT ignorando o cache de 24h"
// @Success 200 {object} TransportadorResponse "Perfil consolidado"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /vpo/transportador/{codtrn}/sincronizar [post]
// @Security ApiKeyAuth
func (h *Handler) SincronizarHandler(c echo.Context) error {
	codtrn, err := validation.ParseStringToInt64(c.Param("codtrn"))
	if err != nil || codtrn <= 0 {
		return c.JSON(http.StatusBadRequest, "Código do transportador inválido")
	}

	codmot, err := validation.ParseStringToInt64(c.QueryParam("codmot"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Código do motorista inválido")
	}

	data := SincronizarDto{
		Codtrn:          codtrn,
		Codmot:          codmot,
		Placa:           c.QueryParam("placa"),
		ForceAnttUpdate: c.QueryParam("force") == "true" || c.QueryParam("force") == "1",
	}

	result, err := h.InterfaceService.SincronizarService(c.Request().Context(), data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// GetTransportadorHandler godoc
// @Summary Buscar Transportador
// @Description Retorna o perfil consolidado do transportador gravado no cache local, incluindo campos faltantes e score de qualidade.
// @Tags Transportadores
// @Accept json
// @Produce json
// @Param codtrn path int true "Código do Transportador"
// @Param codmot query int false "Código do Motorista (empresas)"
// @Success 200 {object} TransportadorResponse "Perfil consolidado"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /vpo/transportador/{codtrn} [get]
// @Security ApiKeyAuth
func (h *Handler) GetTransportadorHandler(c echo.Context) error {
	codtrn, err := validation.ParseStringToInt64(c.Param("codtrn"))
	if err != nil || codtrn <= 0 {
		return c.JSON(http.StatusBadRequest, "Código do transportador inválido")
	}

	codmot, err := validation.ParseStringToInt64(c.QueryParam("codmot"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Código do motorista inválido")
	}

	result, err := h.InterfaceService.GetTransportadorService(c.Request().Context(), codtrn, codmot)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// AtualizarManualHandler godoc
// @Summary Atualizar Transportador Manualmente
// @Description Atualiza campos do perfil do transportador preenchidos pelo operador. Campos editados manualmente são preservados nas próximas sincronizações.
// @Tags Transportadores
// @Accept json
// @Produce json
// @Param codtrn path int true "Código do Transportador"
// @Param codmot query int false "Código do Motorista (empresas)"
// @Param request body AtualizarManualRequest true "Campos a atualizar"
// @Success 200 {object} TransportadorResponse "Perfil atualizado"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /vpo/transportador/{codtrn} [put]
// @Security ApiKeyAuth
func (h *Handler) AtualizarManualHandler(c echo.Context) error {
	codtrn, err := validation.ParseStringToInt64(c.Param("codtrn"))
	if err != nil || codtrn <= 0 {
		return c.JSON(http.StatusBadRequest, "Código do transportador inválido")
	}

	codmot, err := validation.ParseStringToInt64(c.QueryParam("codmot"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Código do motorista inválido")
	}

	var request AtualizarManualRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, "Corpo da requisição inválido")
	}

	if request.CpfCnpj != "" && !validation.ValidateDocumento(request.CpfCnpj) {
		return c.JSON(http.StatusBadRequest, "CPF/CNPJ inválido")
	}
	if request.Placa != "" && !validation.ValidatePlaca(request.Placa) {
		return c.JSON(http.StatusBadRequest, "Placa inválida")
	}

	data := AtualizarManualDto{
		AtualizarManualRequest: request,
		Codtrn:                 codtrn,
		Codmot:                 codmot,
	}

	result, err := h.InterfaceService.AtualizarManualService(c.Request().Context(), data)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// SincronizarLoteHandler godoc
// @Summary Sincronizar Transportadores em Lote
// @Description Sincroniza uma lista de transportadores em sequência, com intervalo entre as consultas.
// @Tags Transportadores
// @Accept json
// @Produce json
// @Param request body SincronizarLoteRequest true "Códigos dos Transportadores"
// @Success 200 {object} SincronizarLoteResponse "Resultado por transportador"
// @Failure 400 {string} string "Requisição Inválida"
// @Failure 500 {string} string "Erro Interno do Servidor"
// @Router /vpo/transportador/sincronizar-lote [post]
// @Security ApiKeyAuth
func (h *Handler) SincronizarLoteHandler(c echo.Context) error {
	var request SincronizarLoteRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, "Corpo da requisição inválido")
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, "Informe ao menos um código de transportador")
	}

	result, err := h.InterfaceService.SincronizarLoteService(c.Request().Context(), request)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}
