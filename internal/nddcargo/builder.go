package nddcargo

import (
	"strconv"
	"strings"

	"valepedagio/validation"
)

const (
	NsNddCargo         = "http://www.nddigital.com.br/nddcargo"
	VersaoLayoutPadrao = "4.2.12.0"
)

// Builder monta os documentos do layout NDD Cargo 4.2.12.0. A saída é
// determinística e já canônica (sem declaração XML, sem auto-fechamento,
// atributos em ordem fixa): o mesmo conjunto de dados produz sempre os
// mesmos bytes, requisito da assinatura digital.
type Builder struct {
	CnpjEmpresa  string
	Token        string
	PtEmissor    string
	VersaoLayout string
}

func NewBuilder(cnpjEmpresa, token, ptEmissor, versaoLayout string) *Builder {
	if ptEmissor == "" {
		ptEmissor = cnpjEmpresa
	}
	if versaoLayout == "" {
		versaoLayout = VersaoLayoutPadrao
	}
	return &Builder{
		CnpjEmpresa:  cnpjEmpresa,
		Token:        token,
		PtEmissor:    ptEmissor,
		VersaoLayout: versaoLayout,
	}
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// MontarVpoEnvio monta o operacaoValePedagio_envio. Waypoints sem código
// IBGE são descartados; lista de praças vazia é legal (rota sem pedágio);
// codigoTag vazio omite o bloco informacoesTag.
func (b *Builder) MontarVpoEnvio(guid string, dados DadosVpo, waypoints []Waypoint, pracas []PracaPedagio, codigoTag string) string {
	waypoints = filtrarWaypoints(waypoints)

	var sb strings.Builder
	sb.WriteString(`<operacaoValePedagio_envio xmlns="` + NsNddCargo + `" token="` + escaper.Replace(b.Token) + `" versao="` + b.VersaoLayout + `">`)
	sb.WriteString(`<infOperacaoValePedagio Id="` + escaper.Replace(guid) + `" tipoPagamento="1">`)

	elem(&sb, "cnpj", b.CnpjEmpresa)

	sb.WriteString("<ide>")
	elem(&sb, "cnpj", b.CnpjEmpresa)
	elem(&sb, "numero", validation.OnlyDigits(dados.Numero))
	elem(&sb, "serie", "1016")
	elem(&sb, "ptEmissor", b.PtEmissor)
	sb.WriteString("</ide>")

	sb.WriteString("<transportador>")
	rntrc := padLeft(validation.OnlyDigits(dados.AnttRntrc), 9)
	elem(&sb, "rntrc", rntrc)

	// O tamanho do documento decide o elemento: até 11 dígitos é CPF de
	// transportador autônomo, acima disso é CNPJ. O flag do ERP não é
	// consultado aqui porque há cadastros inconsistentes.
	documento := validation.OnlyDigits(dados.CpfCnpj)
	if len(documento) <= 11 {
		elem(&sb, "cpfTransportador", padLeft(documento, 11))
	} else {
		elem(&sb, "cnpjTransportador", padLeft(documento, 14))
	}

	sb.WriteString("<infTransportador>")
	sb.WriteString("<ide><tac>")
	nome := strings.TrimSpace(dados.CondutorNome)
	if nome == "" {
		nome = strings.TrimSpace(dados.AnttNome)
	}
	// O XSD exige todos os elementos do TAC, mesmo sem dado no cadastro.
	elemPadrao(&sb, "nomeCompleto", nome, "NAO INFORMADO")
	elemPadrao(&sb, "nomeMae", strings.TrimSpace(dados.CondutorNomeMae), "NAO INFORMADA")
	nascimento := ""
	if !dados.CondutorDataNascimento.IsZero() {
		nascimento = dados.CondutorDataNascimento.Format("2006-01-02")
	}
	elemPadrao(&sb, "dataNascimento", nascimento, "1980-01-01")
	elemPadrao(&sb, "identidade", strings.TrimSpace(dados.CondutorRg), "000000000")
	sb.WriteString("</tac></ide>")

	// A ordem UF, cidade, bairro, logradouro, numero é fixada pelo XSD.
	sb.WriteString("<endereco>")
	elemPadrao(&sb, "UF", strings.TrimSpace(dados.EnderecoEstado), "SP")
	elemPadrao(&sb, "cidade", strings.TrimSpace(dados.EnderecoCidade), "NAO INFORMADO")
	elemPadrao(&sb, "bairro", strings.TrimSpace(dados.EnderecoBairro), "CENTRO")
	elemPadrao(&sb, "logradouro", strings.TrimSpace(dados.EnderecoRua), "NAO INFORMADO")
	elemPadrao(&sb, "numero", validation.OnlyDigits(dados.EnderecoNumero), "0")
	sb.WriteString("</endereco>")

	elem(&sb, "telefone", validation.OnlyDigits(dados.ContatoCelular))
	sb.WriteString("</infTransportador>")
	sb.WriteString("</transportador>")

	sb.WriteString("<infRota>")
	var categoria int
	if dados.Eixos > 0 {
		categoria = CategoriaPedagioPorEixos(dados.Eixos)
	} else {
		categoria = CategoriaPedagioPorTipo(dados.VeiculoTipo)
	}
	elem(&sb, "categoriaPedagio", strconv.Itoa(categoria))

	sb.WriteString("<rota>")
	rotaErp := nomeRotaErp(dados.RotaNome, waypoints)
	elem(&sb, "rotaERP", rotaErp)

	if len(waypoints) > 0 {
		sb.WriteString("<informacoes>")
		elem(&sb, "nome", rotaErp)

		sb.WriteString("<pontosParada>")
		for _, w := range waypoints {
			sb.WriteString("<pontoParada>")
			elem(&sb, "codigoIBGE", validation.OnlyDigits(w.CodigoIbge))
			elem(&sb, "tipoRotaEspecifico", "1")
			sb.WriteString("</pontoParada>")
		}
		sb.WriteString("</pontosParada>")

		// 2 = praças informadas manualmente, sem roteirizador interno.
		elem(&sb, "utilizarRoteirizador", "2")

		if len(pracas) > 0 {
			sb.WriteString("<pedagios>")
			for _, p := range pracas {
				sb.WriteString("<pedagio>")
				elem(&sb, "cnp", p.Codigo)
				nomePraca := p.Nome
				if nomePraca == "" {
					nomePraca = "Praca " + p.Codigo
				}
				elem(&sb, "nomePraca", truncar(nomePraca, 255))
				elem(&sb, "valorPraca", strconv.FormatFloat(p.Valor, 'f', 2, 64))
				sb.WriteString("</pedagio>")
			}
			sb.WriteString("</pedagios>")
		}
		sb.WriteString("</informacoes>")
	}
	sb.WriteString("</rota>")
	sb.WriteString("</infRota>")

	sb.WriteString("<veiculo>")
	elem(&sb, "placa", placaLimpa(dados.Placa))
	sb.WriteString("<informacoes>")
	elemPadrao(&sb, "modelo", strings.TrimSpace(dados.VeiculoModelo), "CAMINHAO")
	elem(&sb, "tipo", TipoVeiculoNdd(dados.VeiculoTipo))
	elem(&sb, "RNTRCTransportador", rntrc)
	sb.WriteString("</informacoes>")
	sb.WriteString("</veiculo>")

	// Com TAG as praças são obrigatórias no bloco pedagios; fornecedor 2
	// é o SemParar.
	if strings.TrimSpace(codigoTag) != "" {
		sb.WriteString("<informacoesTag>")
		elem(&sb, "codigoFornecedor", "2")
		elem(&sb, "codigoTag", strings.TrimSpace(codigoTag))
		sb.WriteString("</informacoesTag>")
	}

	sb.WriteString("</infOperacaoValePedagio>")
	sb.WriteString("</operacaoValePedagio_envio>")

	return sb.String()
}

// MontarRoteirizadorEnvio monta o consultarRoteirizador_envio usado para
// obter as praças de pedágio de uma rota.
func (b *Builder) MontarRoteirizadorEnvio(guid string, waypoints []Waypoint, categoriaPedagio int) string {
	var sb strings.Builder
	sb.WriteString(`<consultarRoteirizador_envio xmlns="` + NsNddCargo + `" token="` + escaper.Replace(b.Token) + `" versao="` + b.VersaoLayout + `">`)
	sb.WriteString(`<infConsultarRoteirizador ID="` + escaper.Replace(guid) + `">`)

	elem(&sb, "cnpj", b.CnpjEmpresa)

	sb.WriteString("<consulta>")
	elem(&sb, "cnpjContratante", b.CnpjEmpresa)
	elem(&sb, "categoriaPedagio", strconv.Itoa(categoriaPedagio))

	sb.WriteString("<informacoes>")
	elem(&sb, "tipoRotaPadrao", "1")

	sb.WriteString("<pontosParada>")
	for _, w := range waypoints {
		ibge := validation.OnlyDigits(w.CodigoIbge)
		cep := validation.OnlyDigits(w.Cep)
		if ibge == "" && cep == "" {
			continue
		}
		sb.WriteString("<pontoParada>")
		if ibge != "" {
			elem(&sb, "codigoIBGE", ibge)
		} else {
			elem(&sb, "cep", cep)
		}
		sb.WriteString("</pontoParada>")
	}
	sb.WriteString("</pontosParada>")

	sb.WriteString("<configuracaoRoteirizador>")
	elem(&sb, "evitarPedagios", "0")
	elem(&sb, "priorizarRodovias", "1")
	elem(&sb, "tipoRota", "1")
	elem(&sb, "tipoVeiculo", "2")
	elem(&sb, "retornarTrecho", "1")
	sb.WriteString("</configuracaoRoteirizador>")

	sb.WriteString("</informacoes>")
	sb.WriteString("</consulta>")
	sb.WriteString("</infConsultarRoteirizador>")
	sb.WriteString("</consultarRoteirizador_envio>")

	return sb.String()
}

// MontarCancelamentoEnvio monta o cancelarOperacaoValePedagio_envio
// (ProcessCode 2020). A identificação pode ser por NDVP ou por
// número/série interno.
func (b *Builder) MontarCancelamentoEnvio(guid string, identificacao IdentificacaoCancelamento, motivo string) string {
	var sb strings.Builder
	sb.WriteString(`<cancelarOperacaoValePedagio_envio xmlns="` + NsNddCargo + `" token="` + escaper.Replace(b.Token) + `" versao="` + b.VersaoLayout + `">`)
	sb.WriteString(`<infCancelarOperacaoValePedagio Id="` + escaper.Replace(guid) + `">`)

	cnpj := padLeft(validation.OnlyDigits(b.CnpjEmpresa), 14)
	elem(&sb, "cnpj", cnpj)

	sb.WriteString("<autorizacao>")
	elem(&sb, "cnpj", cnpj)
	if identificacao.Tipo == "ndvp" {
		sb.WriteString("<ndvp>")
		elem(&sb, "numero", validation.OnlyDigits(identificacao.Numero))
		elem(&sb, "ndvpCodVerificador", validation.OnlyDigits(identificacao.CodVerificador))
		sb.WriteString("</ndvp>")
	} else {
		serie := identificacao.Serie
		if serie == "" {
			serie = "1016"
		}
		sb.WriteString("<ide>")
		elem(&sb, "numero", identificacao.Numero)
		elem(&sb, "serie", serie)
		sb.WriteString("</ide>")
	}
	sb.WriteString("</autorizacao>")

	motivo = truncar(strings.TrimSpace(motivo), 500)
	if motivo == "" {
		motivo = "Cancelamento solicitado pelo usuário"
	}
	elem(&sb, "motivoCancelamento", motivo)

	sb.WriteString("</infCancelarOperacaoValePedagio>")
	sb.WriteString("</cancelarOperacaoValePedagio_envio>")

	return sb.String()
}

// CategoriaPedagioPorEixos segue o mapeamento oficial para caminhões:
// 5 = leve (até 2 eixos), 6 = médio (3-5), 7 = pesado (6+).
func CategoriaPedagioPorEixos(eixos int) int {
	if eixos <= 2 {
		return 5
	}
	if eixos <= 5 {
		return 6
	}
	return 7
}

func CategoriaPedagioPorTipo(tipoVeiculo string) int {
	tipo := strings.ToLower(tipoVeiculo)

	switch {
	case strings.Contains(tipo, "moto"):
		return 1
	case strings.Contains(tipo, "auto"), strings.Contains(tipo, "carro"):
		return 2
	case strings.Contains(tipo, "truck"), strings.Contains(tipo, "3/4"):
		return 3
	case strings.Contains(tipo, "toco"):
		return 4
	case strings.Contains(tipo, "carreta"):
		return 6
	}
	return 5
}

// TipoVeiculoNdd devolve "1" (tração) ou "2" (reboque), os únicos valores
// aceitos pela API.
func TipoVeiculoNdd(tipoVeiculo string) string {
	tipo := strings.ToLower(tipoVeiculo)
	if strings.Contains(tipo, "reboque") || strings.Contains(tipo, "semi") || strings.Contains(tipo, "carreta") {
		return "2"
	}
	return "1"
}

func filtrarWaypoints(waypoints []Waypoint) []Waypoint {
	filtrados := make([]Waypoint, 0, len(waypoints))
	for _, w := range waypoints {
		if validation.OnlyDigits(w.CodigoIbge) != "" {
			filtrados = append(filtrados, w)
		}
	}
	return filtrados
}

func nomeRotaErp(rotaNome string, waypoints []Waypoint) string {
	rotaErp := strings.TrimSpace(rotaNome)
	if rotaErp == "" || len(rotaErp) > 30 {
		primeiro, ultimo := "0000000", "0000000"
		if len(waypoints) > 0 {
			primeiro = validation.OnlyDigits(waypoints[0].CodigoIbge)
			ultimo = validation.OnlyDigits(waypoints[len(waypoints)-1].CodigoIbge)
		}
		rotaErp = primeiro + " x " + ultimo
	}
	return truncar(rotaErp, 30)
}

func elem(sb *strings.Builder, name, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	sb.WriteString("<" + name + ">" + escaper.Replace(value) + "</" + name + ">")
}

func elemPadrao(sb *strings.Builder, name, value, padrao string) {
	if strings.TrimSpace(value) == "" {
		value = padrao
	}
	sb.WriteString("<" + name + ">" + escaper.Replace(strings.TrimSpace(value)) + "</" + name + ">")
}

func padLeft(s string, size int) string {
	for len(s) < size {
		s = "0" + s
	}
	return s
}

func placaLimpa(placa string) string {
	placa = strings.ToUpper(placa)
	var sb strings.Builder
	for _, r := range placa {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func truncar(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
