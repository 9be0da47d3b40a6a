package nddcargo

import (
	"encoding/xml"
	"html"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// Códigos de erro que marcam falha mesmo quando a resposta traz um
// contêiner de resultado aparentemente bem-sucedido.
var codigosErroConhecidos = map[int]bool{
	751: true,
	778: true,
}

var frasesFalhaConhecidas = []string{
	"Não foi possível emitir a Operação de Vale-Pedágio",
	"Operação de Vale-Pedágio não autorizada",
}

type mensagemNdd struct {
	codigo int
	tipo   string
	texto  string
}

type extracao struct {
	codigo         int
	codigoPresente bool
	protocolo      string
	pracas         []PracaPedagio
	distanciaKm    float64
	tempoMinutos   int
	custoTotal     float64
	mensagens      []mensagemNdd
}

func (e extracao) vazia() bool {
	return !e.codigoPresente && e.protocolo == "" && len(e.pracas) == 0 && len(e.mensagens) == 0
}

// Classificar interpreta o SendResult bruto da NDD Cargo. A resposta pode
// chegar em três formas: XML bem formado, XML com entidades HTML escapadas
// dentro de um campo string do SOAP, ou XML truncado/malformado. A cadeia
// de tentativas é: parse estrutural, decodificar entidades e reparsear,
// extração por regex sobre o texto decodificado.
//
// Falha é verificada ANTES de sucesso: uma resposta pode trazer contêiner
// de resultado e ao mesmo tempo uma lista de mensagens com o erro real.
func Classificar(raw string) RespostaNdd {
	limpo := limparControle(raw)
	if strings.TrimSpace(limpo) == "" {
		return RespostaNdd{Status: EmProcessamento}
	}

	extraido, ok := extrairEstruturado(limpo)
	if !ok {
		decodificado := html.UnescapeString(limpo)
		extraido, ok = extrairEstruturado(decodificado)
		if !ok {
			extraido = extrairRegex(decodificado)
		}
	}

	return classificarExtracao(extraido)
}

func classificarExtracao(e extracao) RespostaNdd {
	// Em processamento: código 202 explícito ou contêiner de resultado vazio.
	if e.codigoPresente && e.codigo == 202 {
		return RespostaNdd{Status: EmProcessamento, Codigo: e.codigo}
	}
	if e.vazia() {
		return RespostaNdd{Status: EmProcessamento}
	}

	falha := e.codigoPresente && (e.codigo == 0 || e.codigo >= 300)
	codigoFalha := e.codigo
	for _, m := range e.mensagens {
		if codigosErroConhecidos[m.codigo] {
			falha = true
			codigoFalha = m.codigo
			continue
		}
		for _, frase := range frasesFalhaConhecidas {
			if strings.Contains(m.texto, frase) {
				falha = true
			}
		}
	}

	if falha {
		mensagem := montarMensagem(e.mensagens)
		if mensagem == "" {
			mensagem = "Erro desconhecido na NDD Cargo"
		}
		return RespostaNdd{Status: Falha, Codigo: codigoFalha, Mensagem: mensagem}
	}

	if (e.codigoPresente && e.codigo == 200) || e.protocolo != "" {
		custo := e.custoTotal
		if custo == 0 {
			for _, p := range e.pracas {
				custo += p.Valor
			}
		}
		return RespostaNdd{
			Status:       Concluido,
			Protocolo:    e.protocolo,
			Pracas:       e.pracas,
			CustoTotal:   custo,
			DistanciaKm:  e.distanciaKm,
			TempoMinutos: e.tempoMinutos,
			Codigo:       e.codigo,
			Mensagem:     montarMensagem(e.mensagens),
		}
	}

	return RespostaNdd{Status: EmProcessamento, Codigo: e.codigo, Mensagem: montarMensagem(e.mensagens)}
}

// montarMensagem concatena as mensagens únicas, prefixadas por categoria,
// para dar ao operador o contexto completo do vocabulário de erro da NDD.
func montarMensagem(mensagens []mensagemNdd) string {
	vistas := map[string]bool{}
	partes := []string{}
	for _, m := range mensagens {
		texto := strings.TrimSpace(m.texto)
		if texto == "" {
			continue
		}
		prefixo := "[Info] "
		if strings.Contains(strings.ToLower(m.tipo), "err") || codigosErroConhecidos[m.codigo] {
			prefixo = "[Erro] "
		}
		linha := prefixo + texto
		if vistas[linha] {
			continue
		}
		vistas[linha] = true
		partes = append(partes, linha)
	}
	return strings.Join(partes, "; ")
}

func extrairEstruturado(conteudo string) (extracao, bool) {
	var e extracao
	decoder := xml.NewDecoder(strings.NewReader(conteudo))
	// O conteúdo já está em UTF-8 mesmo quando a declaração diz utf-16.
	decoder.CharsetReader = func(charset string, input io.Reader) (io.Reader, error) {
		return input, nil
	}

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			// XML truncado: aproveita o que já foi extraído.
			break
		}

		se, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		nome := strings.ToLower(se.Name.Local)
		switch nome {
		case "praca", "pedagio":
			campos, err := lerCampos(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			e.pracas = append(e.pracas, PracaPedagio{
				Codigo:  primeiro(campos, "codigo", "cnp"),
				Nome:    primeiro(campos, "nome", "nomepraca"),
				Rodovia: campos["rodovia"],
				Km:      parseFloat(campos["km"]),
				Valor:   parseFloat(primeiro(campos, "valor", "valorpraca")),
			})
		case "ocorrencia", "evento":
			campos, err := lerCampos(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			e.mensagens = append(e.mensagens, mensagemNdd{
				codigo: int(parseFloat(campos["codigo"])),
				tipo:   primeiro(campos, "tipo", "categoria"),
				texto:  primeiro(campos, "descricao", "mensagem", "_texto"),
			})
		case "mensagem", "xmotivo", "motivo":
			texto, err := lerTexto(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			if strings.TrimSpace(texto) != "" {
				e.mensagens = append(e.mensagens, mensagemNdd{texto: texto})
			}
		case "status", "codigo", "cstat":
			texto, err := lerTexto(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			if !e.codigoPresente {
				if valor, err := strconv.Atoi(strings.TrimSpace(texto)); err == nil {
					e.codigo = valor
					e.codigoPresente = true
				}
			}
		case "protocolo", "nprot", "numeroprotocolo":
			texto, err := lerTexto(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			if e.protocolo == "" {
				e.protocolo = strings.TrimSpace(texto)
			}
		case "distancia", "distanciakm":
			texto, err := lerTexto(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			e.distanciaKm = parseFloat(texto)
		case "tempo", "tempominutos":
			texto, err := lerTexto(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			e.tempoMinutos = int(parseFloat(texto))
		case "valortotal", "custototal":
			texto, err := lerTexto(decoder, se)
			if err != nil {
				return e, !e.vazia()
			}
			e.custoTotal = parseFloat(texto)
		}
	}

	return e, !e.vazia()
}

// lerCampos consome o elemento até o fechamento, capturando o texto de
// cada filho direto (chave em minúsculas) e o texto solto em "_texto".
func lerCampos(decoder *xml.Decoder, inicio xml.StartElement) (map[string]string, error) {
	campos := map[string]string{}
	atual := ""
	profundidade := 0

	for {
		tok, err := decoder.Token()
		if err != nil {
			return campos, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			profundidade++
			if profundidade == 1 {
				atual = strings.ToLower(t.Name.Local)
			}
		case xml.EndElement:
			if profundidade == 0 {
				return campos, nil
			}
			profundidade--
			atual = ""
		case xml.CharData:
			texto := strings.TrimSpace(string(t))
			if texto == "" {
				continue
			}
			if atual != "" {
				campos[atual] += texto
			} else {
				campos["_texto"] += texto
			}
		}
	}
}

func lerTexto(decoder *xml.Decoder, inicio xml.StartElement) (string, error) {
	var conteudo struct {
		Valor string `xml:",chardata"`
	}
	if err := decoder.DecodeElement(&conteudo, &inicio); err != nil {
		return "", err
	}
	return conteudo.Valor, nil
}

var (
	reProtocolo = regexp.MustCompile(`(?is)<(?:protocolo|nProt|numeroProtocolo)>\s*([^<]+?)\s*</`)
	reCodigo    = regexp.MustCompile(`(?is)<(?:status|codigo|cStat)>\s*(\d+)\s*</`)
	rePraca     = regexp.MustCompile(`(?is)<(?:praca|pedagio)>(.*?)</(?:praca|pedagio)>`)
	reOcorr     = regexp.MustCompile(`(?is)<(?:ocorrencia|evento)>(.*?)</(?:ocorrencia|evento)>`)
	reMensagem  = regexp.MustCompile(`(?is)<(?:mensagem|descricao|xMotivo|motivo)>\s*([^<]+?)\s*</`)
	reDistancia = regexp.MustCompile(`(?is)<distancia(?:Km)?>\s*([\d.,]+)\s*</`)
	reTempo     = regexp.MustCompile(`(?is)<tempo(?:Minutos)?>\s*(\d+)\s*</`)
	reValor     = regexp.MustCompile(`(?is)<(?:valorTotal|custoTotal)>\s*([\d.,]+)\s*</`)
)

// extrairRegex é o último recurso para respostas que nem depois da
// decodificação de entidades formam XML válido.
func extrairRegex(texto string) extracao {
	var e extracao

	if m := reCodigo.FindStringSubmatch(texto); m != nil {
		if valor, err := strconv.Atoi(m[1]); err == nil {
			e.codigo = valor
			e.codigoPresente = true
		}
	}
	if m := reProtocolo.FindStringSubmatch(texto); m != nil {
		e.protocolo = strings.TrimSpace(m[1])
	}

	for _, bloco := range rePraca.FindAllStringSubmatch(texto, -1) {
		e.pracas = append(e.pracas, PracaPedagio{
			Codigo:  primeiroRegex(bloco[1], "codigo", "cnp"),
			Nome:    primeiroRegex(bloco[1], "nome", "nomePraca"),
			Rodovia: primeiroRegex(bloco[1], "rodovia"),
			Km:      parseFloat(primeiroRegex(bloco[1], "km")),
			Valor:   parseFloat(primeiroRegex(bloco[1], "valor", "valorPraca")),
		})
	}

	for _, bloco := range reOcorr.FindAllStringSubmatch(texto, -1) {
		e.mensagens = append(e.mensagens, mensagemNdd{
			codigo: int(parseFloat(primeiroRegex(bloco[1], "codigo"))),
			tipo:   primeiroRegex(bloco[1], "tipo", "categoria"),
			texto:  primeiroRegex(bloco[1], "descricao", "mensagem"),
		})
	}
	if len(e.mensagens) == 0 {
		for _, m := range reMensagem.FindAllStringSubmatch(texto, -1) {
			e.mensagens = append(e.mensagens, mensagemNdd{texto: strings.TrimSpace(m[1])})
		}
	}

	if m := reDistancia.FindStringSubmatch(texto); m != nil {
		e.distanciaKm = parseFloat(m[1])
	}
	if m := reTempo.FindStringSubmatch(texto); m != nil {
		e.tempoMinutos = int(parseFloat(m[1]))
	}
	if m := reValor.FindStringSubmatch(texto); m != nil {
		e.custoTotal = parseFloat(m[1])
	}

	return e
}

func primeiroRegex(bloco string, nomes ...string) string {
	for _, nome := range nomes {
		re := regexp.MustCompile(`(?is)<` + nome + `>\s*([^<]+?)\s*</`)
		if m := re.FindStringSubmatch(bloco); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

func primeiro(campos map[string]string, nomes ...string) string {
	for _, nome := range nomes {
		if campos[nome] != "" {
			return campos[nome]
		}
	}
	return ""
}

func parseFloat(texto string) float64 {
	texto = strings.TrimSpace(texto)
	if texto == "" {
		return 0
	}
	texto = strings.ReplaceAll(texto, ",", ".")
	valor, err := strconv.ParseFloat(texto, 64)
	if err != nil {
		return 0
	}
	return valor
}

// Remove BOM e caracteres de controle inválidos em XML.
func limparControle(texto string) string {
	texto = strings.TrimPrefix(texto, "\uFEFF")
	var sb strings.Builder
	sb.Grow(len(texto))
	for _, r := range texto {
		if r == '\t' || r == '\n' || r == '\r' || r >= 0x20 {
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
