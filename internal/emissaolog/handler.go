package emissaolog

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"valepedagio/validation"
)

type Handler struct {
	InterfaceService InterfaceService
}

func NewEmissaoLogHandler(InterfaceService InterfaceService) *Handler {
	return &Handler{InterfaceService}
}

// ListarLogsHandler godoc
// @Summary      Lista logs de auditoria das emissões
// @Description  Lista os registros de auditoria das emissões de VPO com filtros por fase, status, pacote e período.
// @Tags         Logs
// @Accept       json
// @Produce      json
// @Param        fase      query  string  false  "Fase da emissão"
// @Param        status    query  string  false  "Status do registro (info, sucesso, erro)"
// @Param        codpac    query  int     false  "Código do pacote"
// @Param        de        query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate       query  string  false  "Data final (AAAA-MM-DD)"
// @Param        page      query  int     false  "Página"
// @Param        per_page  query  int     false  "Itens por página"
// @Success      200  {object}  ListaLogsResponse
// @Failure      400  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/logs [get]
// @Security     ApiKeyAuth
func (h *Handler) ListarLogsHandler(c echo.Context) error {
	var filtro FiltroLogsDto
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

	resultado, err := h.InterfaceService.ListarLogsService(c.Request().Context(), filtro)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}

// EstatisticasLogsHandler godoc
// @Summary      Estatísticas dos logs de emissão
// @Description  Retorna totais, taxa de sucesso e duração média das emissões no período informado.
// @Tags         Logs
// @Accept       json
// @Produce      json
// @Param        de   query  string  false  "Data inicial (AAAA-MM-DD)"
// @Param        ate  query  string  false  "Data final (AAAA-MM-DD)"
// @Success      200  {object}  EstatisticasResponse
// @Failure      400  {object}  string
// @Failure      500  {object}  string
// @Router       /vpo/logs/estatisticas [get]
// @Security     ApiKeyAuth
func (h *Handler) EstatisticasLogsHandler(c echo.Context) error {
	resultado, err := h.InterfaceService.EstatisticasService(c.Request().Context(), c.QueryParam("de"), c.QueryParam("ate"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, resultado)
}
