package transportador

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"strconv"
	"time"

	db "valepedagio/db/sqlc"
	"valepedagio/internal/progress"
	"valepedagio/pkg/antt"
	"valepedagio/validation"
)

const anttCacheTTL = 24 * time.Hour

const veiculoTipoPadrao = "Não especificado"

type InterfaceService interface {
	SincronizarService(ctx context.Context, data SincronizarDto) (TransportadorResponse, error)
	GetTransportadorService(ctx context.Context, codtrn, codmot int64) (TransportadorResponse, error)
	AtualizarManualService(ctx context.Context, data AtualizarManualDto) (TransportadorResponse, error)
	SincronizarLoteService(ctx context.Context, request SincronizarLoteRequest) (SincronizarLoteResponse, error)
	RegistrarUsoService(ctx context.Context, codtrn, codmot int64) error
}

type Service struct {
	InterfaceService InterfaceRepository
	Progress         progress.InterfaceRepository
	ConsultaAntt     func(rntrc string) (*antt.ResultadoRntrc, error)
}

func NewTransportadorService(
	InterfaceService InterfaceRepository,
	Progress progress.InterfaceRepository,
) *Service {
	return &Service{
		InterfaceService: InterfaceService,
		Progress:         Progress,
		ConsultaAntt:     antt.ConsultarRntrc,
	}
}

// SincronizarService monta o perfil canônico do transportador mesclando
// ERP, cache de motoristas e ANTT, e grava o resultado no cache local.
// Prioridade dos campos: cache de motoristas > trnmot > transporte.
func (p *Service) SincronizarService(ctx context.Context, data SincronizarDto) (TransportadorResponse, error) {
	transporte, err := p.Progress.GetTransporte(ctx, data.Codtrn)
	if errors.Is(err, sql.ErrNoRows) {
		return TransportadorResponse{}, errors.New("transportador não encontrado no Progress")
	}
	if err != nil {
		return TransportadorResponse{}, err
	}

	// flgautonomo do ERP não é confiável: CPF (11 dígitos) = autônomo,
	// CNPJ (14 dígitos) = empresa.
	documento := validation.OnlyDigits(transporte.Codcnpjcpf.String)
	isAutonomo := len(documento) != 14

	destipcam := veiculoTipoPadrao
	if transporte.Tipcam.Valid {
		if desc, err := p.Progress.GetDescricaoTipoVeiculo(ctx, transporte.Tipcam.Int64); err == nil && desc != "" {
			destipcam = desc
		}
	}

	var dados DadosVpo
	if isAutonomo {
		dados = p.montarDadosAutonomo(ctx, transporte, destipcam, documento)
	} else {
		dados = p.montarDadosEmpresa(ctx, transporte, destipcam, documento, data.Codmot, data.Placa)
	}

	cached, err := p.InterfaceService.GetTransportadorCache(ctx, db.GetTransportadorCacheParams{
		Codtrn: dados.Codtrn,
		Codmot: dados.Codmot,
	})
	temCache := err == nil
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return TransportadorResponse{}, err
	}

	agora := time.Now()
	syncAntt := time.Time{}
	if temCache && cached.UltimaSyncAntt.Valid {
		syncAntt = cached.UltimaSyncAntt.Time
	}

	needsAnttUpdate := data.ForceAnttUpdate ||
		!temCache ||
		syncAntt.IsZero() ||
		agora.Sub(syncAntt) > anttCacheTTL

	if needsAnttUpdate && dados.AnttRntrc != "" {
		p.enriquecerComAntt(&dados)
		syncAntt = agora
	} else if temCache {
		if cached.AnttStatus.String != "" {
			dados.AnttStatus = cached.AnttStatus.String
		}
		if dados.AnttValidade.IsZero() && cached.AnttValidade.Valid {
			dados.AnttValidade = cached.AnttValidade.Time
		}
		dados.AnttFonte = cached.AnttFonte.String
	}

	if temCache && cached.EditadoManualmente {
		preservarCamposEditados(cached, &dados)
	}

	relatorio := ValidarCompletude(dados, agora, agora)
	score := CalcularScoreQualidade(dados, agora, agora)

	row, err := p.InterfaceService.UpsertTransportadorCache(
		ctx,
		dados.ParseToUpsertParams(score, relatorio.Faltantes, relatorio.Avisos, agora, syncAntt),
	)
	if err != nil {
		return TransportadorResponse{}, err
	}

	response := TransportadorResponse{}
	response.ParseFromCacheObject(row)

	return response, nil
}

func (p *Service) GetTransportadorService(ctx context.Context, codtrn, codmot int64) (TransportadorResponse, error) {
	row, err := p.InterfaceService.GetTransportadorCache(ctx, db.GetTransportadorCacheParams{
		Codtrn: codtrn,
		Codmot: codmot,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return TransportadorResponse{}, errors.New("transportador não encontrado")
	}
	if err != nil {
		return TransportadorResponse{}, err
	}

	response := TransportadorResponse{}
	response.ParseFromCacheObject(row)

	return response, nil
}

func (p *Service) AtualizarManualService(ctx context.Context, data AtualizarManualDto) (TransportadorResponse, error) {
	_, err := p.InterfaceService.GetTransportadorCache(ctx, db.GetTransportadorCacheParams{
		Codtrn: data.Codtrn,
		Codmot: data.Codmot,
	})
	if errors.Is(err, sql.ErrNoRows) {
		return TransportadorResponse{}, errors.New("transportador não encontrado")
	}
	if err != nil {
		return TransportadorResponse{}, err
	}

	row, err := p.InterfaceService.UpdateTransportadorCacheManual(ctx, data.ParseToUpdateParams())
	if err != nil {
		return TransportadorResponse{}, err
	}

	response := TransportadorResponse{}
	response.ParseFromCacheObject(row)

	return response, nil
}

func (p *Service) SincronizarLoteService(ctx context.Context, request SincronizarLoteRequest) (SincronizarLoteResponse, error) {
	response := SincronizarLoteResponse{
		Total:      len(request.Codtrns),
		Resultados: []ResultadoLote{},
	}

	for i, codtrn := range request.Codtrns {
		result, err := p.SincronizarService(ctx, SincronizarDto{
			Codtrn:          codtrn,
			ForceAnttUpdate: request.ForceAnttUpdate,
		})

		item := ResultadoLote{Codtrn: codtrn, Sucesso: err == nil}
		if err != nil {
			response.Falhas++
			item.Mensagem = err.Error()
		} else {
			response.Sucessos++
			item.Mensagem = "sincronizado com score " + strconv.Itoa(int(result.ScoreQualidade))
		}
		response.Resultados = append(response.Resultados, item)

		// Rate limit entre consultas ao ERP e à ANTT.
		if i < len(request.Codtrns)-1 {
			select {
			case <-ctx.Done():
				return response, ctx.Err()
			case <-time.After(100 * time.Millisecond):
			}
		}
	}

	return response, nil
}

func (p *Service) RegistrarUsoService(ctx context.Context, codtrn, codmot int64) error {
	return p.InterfaceService.RegisterTransportadorCacheUso(ctx, db.RegisterTransportadorCacheUsoParams{
		Codtrn: codtrn,
		Codmot: codmot,
	})
}

func (p *Service) montarDadosAutonomo(
	ctx context.Context,
	t progress.Transporte,
	destipcam string,
	documento string,
) DadosVpo {
	bairro, cidade, estado := p.buscarLocalidade(ctx, t.Codbai, t.Codmun, t.Codest)

	condutorRg := t.Numrg.String
	if condutorRg == "" {
		condutorRg = t.Numhab.String
	}

	return DadosVpo{
		Codtrn:      t.Codtrn,
		Codmot:      0,
		Numpla:      t.Numpla.String,
		Flgautonomo: true,

		CpfCnpj:                documento,
		AnttRntrc:              t.Cdantt.String,
		AnttNome:               t.Nomtrn,
		AnttValidade:           t.Datvldantt.Time,
		AnttStatus:             "Ativo",
		Placa:                  FormatPlaca(t.Numpla.String),
		VeiculoTipo:            destipcam,
		VeiculoModelo:          t.Desvei.String,
		CondutorRg:             condutorRg,
		CondutorNome:           t.Nomtrn,
		CondutorSexo:           "M",
		CondutorNomeMae:        t.Nommae.String,
		CondutorDataNascimento: t.Datnas.Time,
		EnderecoRua:            FormatEndereco(t.Desend.String, t.Numend.String),
		EnderecoBairro:         bairro,
		EnderecoCidade:         cidade,
		EnderecoEstado:         estado,
		ContatoCelular:         FormatTelefone(t.Dddcel.String, t.Numcel.String),
		ContatoEmail:           t.Email.String,

		FontesDados: map[string]any{
			"progress_transporte": true,
			"progress_tipcam":     destipcam != veiculoTipoPadrao,
		},
	}
}

func (p *Service) montarDadosEmpresa(
	ctx context.Context,
	t progress.Transporte,
	destipcam string,
	documento string,
	codmot int64,
	placa string,
) DadosVpo {
	var motorista progress.Motorista
	var err error

	if codmot > 0 {
		motorista, err = p.Progress.GetMotorista(ctx, t.Codtrn, codmot)
	} else {
		motorista, err = p.Progress.GetPrimeiroMotorista(ctx, t.Codtrn)
	}

	// Empresa sem motorista cadastrado: comum em empresas pequenas onde o
	// dono dirige. Cai para os dados do próprio transporte.
	if err != nil {
		dados := p.montarDadosAutonomo(ctx, t, destipcam, documento)
		dados.Flgautonomo = false
		dados.FontesDados["progress_trnmot"] = false
		dados.FontesDados["fallback_to_transporte"] = true
		return dados
	}

	placaBusca := placa
	if placaBusca == "" {
		placaBusca = t.Numpla.String
	}

	var veiculo progress.Veiculo
	temVeiculo := false
	if placaBusca != "" {
		if veiculo, err = p.Progress.GetVeiculo(ctx, t.Codtrn, placaBusca); err == nil {
			temVeiculo = true
		}
	}

	veiculoModelo := t.Desvei.String
	if temVeiculo && veiculo.Modvei.String != "" {
		veiculoModelo = veiculo.Modvei.String
	}

	motoristaCache, err := p.InterfaceService.GetMotoristaEmpresaCache(ctx, db.GetMotoristaEmpresaCacheParams{
		Codtrn: t.Codtrn,
		Codmot: motorista.Codmot,
	})
	usouCache := err == nil && motoristaCache.DadosCompletos

	bairro, cidade, estado := p.buscarLocalidade(ctx, motorista.Codbai, motorista.Codmun, motorista.Codest)

	cpf := validation.OnlyDigits(motorista.Codcpf.String)
	if usouCache && motoristaCache.Cpf.String != "" {
		cpf = validation.OnlyDigits(motoristaCache.Cpf.String)
	}

	rntrc := motorista.Codrntrc.String
	if rntrc == "" {
		rntrc = t.Cdantt.String
	}

	nome := motorista.Nommot.String
	if usouCache && motoristaCache.Nome.String != "" {
		nome = motoristaCache.Nome.String
	}

	rg := motorista.Numrg.String
	if rg == "" && usouCache {
		rg = motoristaCache.Rg.String
	}

	sexo := "M"
	if usouCache && motoristaCache.Sexo.String != "" {
		sexo = motoristaCache.Sexo.String
	}

	nomeMae := motorista.Nommae.String
	if usouCache && motoristaCache.NomeMae.String != "" {
		nomeMae = motoristaCache.NomeMae.String
	}

	nascimento := motorista.Datnas.Time
	if usouCache && motoristaCache.DataNascimento.Valid {
		nascimento = motoristaCache.DataNascimento.Time
	}

	celular := FormatTelefone(motorista.Dddtel.String, motorista.Numtel.String)
	if usouCache && motoristaCache.Celular.String != "" {
		celular = validation.OnlyDigits(motoristaCache.Celular.String)
	}

	email := motorista.Email.String
	if usouCache && motoristaCache.Email.String != "" {
		email = motoristaCache.Email.String
	}
	if email == "" {
		email = t.Email.String
	}

	return DadosVpo{
		Codtrn:      t.Codtrn,
		Codmot:      motorista.Codmot,
		Numpla:      placaBusca,
		Flgautonomo: false,

		CpfCnpj:                cpf,
		AnttRntrc:              rntrc,
		AnttNome:               nome,
		AnttValidade:           motorista.Datvldrntrc.Time,
		AnttStatus:             "Ativo",
		Placa:                  FormatPlaca(placaBusca),
		VeiculoTipo:            destipcam,
		VeiculoModelo:          veiculoModelo,
		CondutorRg:             rg,
		CondutorNome:           nome,
		CondutorSexo:           sexo,
		CondutorNomeMae:        nomeMae,
		CondutorDataNascimento: nascimento,
		EnderecoRua:            FormatEndereco(motorista.Desend.String, ""),
		EnderecoBairro:         bairro,
		EnderecoCidade:         cidade,
		EnderecoEstado:         estado,
		ContatoCelular:         celular,
		ContatoEmail:           email,

		FontesDados: map[string]any{
			"progress_transporte": true,
			"progress_trnmot":     true,
			"progress_trnvei":     temVeiculo,
			"progress_tipcam":     destipcam != veiculoTipoPadrao,
			"cache_motorista":     usouCache,
		},
	}
}

func (p *Service) enriquecerComAntt(dados *DadosVpo) {
	resultado, err := p.ConsultaAntt(dados.AnttRntrc)
	if err != nil || resultado == nil {
		// Dados abertos indisponíveis: assume ativo e valida pela data de
		// validade registrada no ERP.
		log.Printf("consulta ANTT indisponível para rntrc %s: %v", dados.AnttRntrc, err)
		dados.AnttStatus = "Ativo"
		dados.AnttFonte = "fallback"
		return
	}

	if resultado.Situacao != "" {
		dados.AnttStatus = resultado.Situacao
	}
	if resultado.Validade != "" {
		if validade, err := time.Parse("2006-01-02", resultado.Validade); err == nil {
			dados.AnttValidade = validade
		}
	}

	dados.AnttFonte = resultado.Fonte
	if dados.AnttFonte == "" {
		dados.AnttFonte = "dados_abertos"
	}
}

func (p *Service) buscarLocalidade(
	ctx context.Context,
	codbai, codmun, codest sql.NullInt64,
) (bairro, cidade, estado string) {
	if codbai.Valid {
		bairro, _ = p.Progress.GetBairroNome(ctx, codbai.Int64)
	}
	if codmun.Valid {
		cidade, _ = p.Progress.GetMunicipioNome(ctx, codmun.Int64)
	}
	if codest.Valid {
		estado, _ = p.Progress.GetEstadoSigla(ctx, codest.Int64)
	}
	return bairro, cidade, estado
}

// preservarCamposEditados mantém os valores preenchidos manualmente pelo
// operador: a sincronização nunca sobrescreve campo editado não-vazio.
func preservarCamposEditados(cached db.VpoTransportadoresCache, dados *DadosVpo) {
	preservar := func(destino *string, valor sql.NullString) {
		if valor.String != "" {
			*destino = valor.String
		}
	}

	preservar(&dados.AnttRntrc, cached.AnttRntrc)
	preservar(&dados.AnttStatus, cached.AnttStatus)
	preservar(&dados.Placa, cached.Placa)
	preservar(&dados.VeiculoTipo, cached.VeiculoTipo)
	preservar(&dados.VeiculoModelo, cached.VeiculoModelo)
	preservar(&dados.CondutorRg, cached.CondutorRg)
	preservar(&dados.CondutorNome, cached.CondutorNome)
	preservar(&dados.CondutorSexo, cached.CondutorSexo)
	preservar(&dados.CondutorNomeMae, cached.CondutorNomeMae)
	preservar(&dados.EnderecoRua, cached.EnderecoRua)
	preservar(&dados.EnderecoBairro, cached.EnderecoBairro)
	preservar(&dados.EnderecoCidade, cached.EnderecoCidade)
	preservar(&dados.EnderecoEstado, cached.EnderecoEstado)
	preservar(&dados.ContatoCelular, cached.ContatoCelular)
	preservar(&dados.ContatoEmail, cached.ContatoEmail)

	if cached.AnttValidade.Valid {
		dados.AnttValidade = cached.AnttValidade.Time
	}
	if cached.CondutorDataNascimento.Valid {
		dados.CondutorDataNascimento = cached.CondutorDataNascimento.Time
	}
}
