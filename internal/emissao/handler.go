package emissao

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"valepedagio/internal/get_token"
	"valepedagio/validation"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewEmissaoHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// IniciarEmissaoHandler godoc
// @Summary      Inicia a emissão de vale-pedágio de um pacote
// @Description  Sincroniza o perfil do transportador, monta e assina o XML da operação e envia à NDD Cargo. Retorna a emissão criada com o estado inicial.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        request  body  IniciarEmissaoRequest  true  "Dados da emissão"
// @Success      201  {object}  EmissaoResponse
// @Failure      400  {object}  string
// @Failure      422  {object}  ValidacaoPacoteResponse
// @Failure      500  {object}  string
// @Router       /vpo/emissao/iniciar [post]
// @Security     ApiKeyAuth
func (h *Handler) IniciarEmissaoHandler(c echo.Context) error {
	var request IniciarEmissaoRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, "Dados da emissão inválidos")
	}
	if err := validation.Validate(request); err != nil {
		return c.JSON(http.StatusBadRequest, "Informe o código do pacote")
	}

	usuario := get_token.GetUserPayloadToken(c)
	auditoria := Auditoria{
		UsuarioID: usuario.ID,
		IpAddress: c.RealIP(),
		UserAgent: c.Request().UserAgent(),
	}

	resultado, err := h.InterfaceService.IniciarEmissaoService(c.Request().Context(), request, auditoria)
	if err != nil {
		var recusa *ErroValidacao
		if errors.As(err, &recusa) {
			return c.JSON(http.StatusUnprocessableEntity, recusa.Relatorio)
		}
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, resultado)
}

// GetEmissaoHandler godoc
// @Summary      Consulta uma emissão
// @Description  Retorna o estado atual de uma emissão de vale-pedágio pelo seu UUID.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        uuid  path  string  true  "UUID da emissão"
// @Success      200  {object}  EmissaoResponse
// @Failure      400  {object}  string
// @Failure      404  {object}  string
// @Router       /vpo/emissao/{uuid} [get]
// @Security     ApiKeyAuth
func (h *Handler) GetEmissaoHandler(c echo.Context) error {
	resultado, err := h.InterfaceService.GetEmissaoService(c.Request().Context(), c.Param("uuid"))
	if err != nil {
		if err.Error() == "emissão não encontrada" {
			return c.JSON(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// ConsultarResultadoHandler godoc
// @Summary      Consulta o resultado da emissão na NDD Cargo
// @Description  Consulta o andamento da emissão na NDD Cargo. Enquanto estiver processando, retry_after indica em quantos segundos consultar de novo. Com force_retry=true uma emissão falhada por timeout ou limite de consultas volta para a fila.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        uuid         path   string  true   "UUID da emissão"
// @Param        force_retry  query  bool    false  "Força nova tentativa de emissão falhada"
// @Success      200  {object}  ResultadoResponse
// @Failure      400  {object}  string
// @Failure      404  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/emissao/{uuid}/resultado [get]
// @Security     ApiKeyAuth
func (h *Handler) ConsultarResultadoHandler(c echo.Context) error {
	forceRetry := c.QueryParam("force_retry") == "true"

	resultado, err := h.InterfaceService.ConsultarResultadoService(c.Request().Context(), c.Param("uuid"), forceRetry)
	if err != nil {
		if err.Error() == "emissão não encontrada" {
			return c.JSON(http.StatusNotFound, err.Error())
		}
		if err.Error() == "uuid de emissão inválido" {
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// CancelarHandler godoc
// @Summary      Cancela uma emissão localmente
// @Description  Cancela uma emissão pendente ou em processamento. Emissões já concluídas devem usar o cancelamento na NDD Cargo.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        uuid     path  string           true   "UUID da emissão"
// @Param        request  body  CancelarRequest  false  "Motivo do cancelamento"
// @Success      200  {object}  EmissaoResponse
// @Failure      400  {object}  string
// @Failure      404  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/emissao/{uuid}/cancelar [post]
// @Security     ApiKeyAuth
func (h *Handler) CancelarHandler(c echo.Context) error {
	var request CancelarRequest
	_ = c.Bind(&request)

	resultado, err := h.InterfaceService.CancelarService(c.Request().Context(), c.Param("uuid"), request.Motivo)
	if err != nil {
		if err.Error() == "emissão não encontrada" {
			return c.JSON(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// CancelarNddHandler godoc
// @Summary      Cancela um vale-pedágio emitido na NDD Cargo
// @Description  Envia o cancelamento da operação à NDD Cargo (ProcessCode 2020), identificando-a pelo NDVP quando informado ou pelo número interno do pacote.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        uuid     path  string              true   "UUID da emissão"
// @Param        request  body  CancelarNddRequest  false  "Identificação e motivo do cancelamento"
// @Success      200  {object}  EmissaoResponse
// @Failure      400  {object}  string
// @Failure      404  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/emissao/{uuid}/cancelar-ndd [post]
// @Security     ApiKeyAuth
func (h *Handler) CancelarNddHandler(c echo.Context) error {
	var request CancelarNddRequest
	_ = c.Bind(&request)

	resultado, err := h.InterfaceService.CancelarNddService(c.Request().Context(), c.Param("uuid"), request)
	if err != nil {
		if err.Error() == "emissão não encontrada" {
			return c.JSON(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// ListarPorPacoteHandler godoc
// @Summary      Lista as emissões de um pacote
// @Description  Retorna todas as emissões de vale-pedágio vinculadas ao pacote, da mais recente para a mais antiga.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        codpac  path  int  true  "Código do pacote"
// @Success      200  {array}   EmissaoResponse
// @Failure      400  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/emissao/pacote/{codpac} [get]
// @Security     ApiKeyAuth
func (h *Handler) ListarPorPacoteHandler(c echo.Context) error {
	codpac, err := validation.ParseStringToInt64(c.Param("codpac"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Código do pacote inválido")
	}

	resultado, err := h.InterfaceService.ListarPorPacoteService(c.Request().Context(), codpac)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// ListarEmissoesHandler godoc
// @Summary      Lista emissões com filtros
// @Description  Lista emissões de vale-pedágio com filtros por status, pacote e período, paginadas.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        status    query  string  false  "Status (pending, processing, completed, failed, cancelled)"
// @Param        codpac    query  int     false  "Código do pacote"
// @Param        de        query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate       query  string  false  "Data final (AAAA-MM-DD)"
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Itens por página"
// @Success      200  {object}  ListaEmissoesResponse
// @Failure      400  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/emissoes [get]
// @Security     ApiKeyAuth
func (h *Handler) ListarEmissoesHandler(c echo.Context) error {
	var filtro FiltroEmissoesDto
	if err := c.Bind(&filtro); err != nil {
		return c.JSON(http.StatusBadRequest, "Filtros inválidos")
	}
	if codpac := c.QueryParam("codpac"); codpac != "" {
		parsed, err := validation.ParseStringToInt64(codpac)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "Código do pacote inválido")
		}
		filtro.Codpac = parsed
	}

	resultado, err := h.InterfaceService.ListarEmissoesService(c.Request().Context(), filtro)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// EstatisticasHandler godoc
// @Summary      Estatísticas das emissões
// @Description  Retorna totais por status, taxa de sucesso e tempo médio de emissão no período informado.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        de   query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate  query  string  false  "Data final (AAAA-MM-DD)"
// @Success      200  {object}  EstatisticasEmissoesResponse
// @Failure      400  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/emissoes/estatisticas [get]
// @Security     ApiKeyAuth
func (h *Handler) EstatisticasHandler(c echo.Context) error {
	resultado, err := h.InterfaceService.EstatisticasService(c.Request().Context(), c.QueryParam("de"), c.QueryParam("ate"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// ValidarPacoteHandler godoc
// @Summary      Valida um pacote para emissão
// @Description  Roda a sincronização do transportador sem emitir e retorna os campos faltantes, avisos e o score de qualidade dos dados.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        codpac  path  int  true  "Código do pacote"
// @Success      200  {object}  ValidacaoPacoteResponse
// @Failure      400  {object}  string
// @Failure      404  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/pacote/{codpac}/validar [get]
// @Security     ApiKeyAuth
func (h *Handler) ValidarPacoteHandler(c echo.Context) error {
	codpac, err := validation.ParseStringToInt64(c.Param("codpac"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Código do pacote inválido")
	}

	resultado, err := h.InterfaceService.ValidarPacoteService(c.Request().Context(), codpac)
	if err != nil {
		if err.Error() == "pacote não encontrado no Progress" {
			return c.JSON(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// WaypointsPacoteHandler godoc
// @Summary      Pontos de parada da rota do pacote
// @Description  Monta a sequência de pontos de parada da rota do pacote, com as coordenadas GPS da primeira e da última entrega quando disponíveis.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        codpac   path   int  true   "Código do pacote"
// @Param        rota_id  query  int  false  "Rota SemParar"
// @Success      200  {object}  WaypointsPacoteResponse
// @Failure      400  {object}  string
// @Failure      404  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/pacote/{codpac}/waypoints [get]
// @Security     ApiKeyAuth
func (h *Handler) WaypointsPacoteHandler(c echo.Context) error {
	codpac, err := validation.ParseStringToInt64(c.Param("codpac"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, "Código do pacote inválido")
	}

	rotaID := int64(0)
	if raw := c.QueryParam("rota_id"); raw != "" {
		parsed, err := validation.ParseStringToInt64(raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, "Rota inválida")
		}
		rotaID = parsed
	}

	resultado, err := h.InterfaceService.WaypointsPacoteService(c.Request().Context(), codpac, rotaID)
	if err != nil {
		if err.Error() == "pacote não encontrado no Progress" {
			return c.JSON(http.StatusNotFound, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// ConsultarRoteirizadorHandler godoc
// @Summary      Consulta praças de pedágio da rota
// @Description  Consulta o roteirizador da NDD Cargo (ProcessCode 2027) e retorna as praças de pedágio da rota com custo estimado, enriquecidas com coordenadas do cadastro ANTT.
// @Tags         Emissões
// @Accept       json
// @Produce      json
// @Param        request  body  ConsultarRoteirizadorRequest  true  "Rota a consultar"
// @Success      200  {object}  RoteirizadorResponse
// @Failure      400  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/roteirizador/consultar [post]
// @Security     ApiKeyAuth
func (h *Handler) ConsultarRoteirizadorHandler(c echo.Context) error {
	var request ConsultarRoteirizadorRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, "Dados da consulta inválidos")
	}

	resultado, err := h.InterfaceService.ConsultarRoteirizadorService(c.Request().Context(), request)
	if err != nil {
		if err.Error() == "informe os pontos de parada ou um pacote com rota" {
			return c.JSON(http.StatusBadRequest, err.Error())
		}
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}
