package antt

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	baseURL       = "https://dados.antt.gov.br/api/3/action"
	datasetRntrc  = "rntrc"
	cacheTTL      = 24 * time.Hour
	resourceTTL   = 24 * time.Hour
	requestLimite = 60 * time.Second
)

var (
	rdb *redis.Client
	ctx = context.Background()
)

func Init(client *redis.Client) {
	rdb = client
}

// ConsultarRntrc busca a situação cadastral de um RNTRC nos dados abertos da
// ANTT, com cache de 24h. Erros de rede ou de formato sobem para o chamador
// aplicar o fallback.
func ConsultarRntrc(rntrc string) (*ResultadoRntrc, error) {
	rntrc = strings.TrimSpace(rntrc)
	if rntrc == "" {
		return nil, fmt.Errorf("rntrc vazio")
	}

	cacheKey := "antt:rntrc:" + rntrc
	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resultado ResultadoRntrc
			if err := json.Unmarshal([]byte(cached), &resultado); err == nil {
				return &resultado, nil
			}
		}
	}

	client := &http.Client{Timeout: requestLimite}

	resourceID, err := buscarResourceID(client)
	if err != nil {
		return nil, err
	}

	registro, err := buscarRegistro(client, resourceID, rntrc)
	if err != nil {
		return nil, err
	}

	resultado := &ResultadoRntrc{
		Rntrc:    rntrc,
		Nome:     campoTexto(registro, "nome", "razao_social", "nm_transportador"),
		Situacao: campoTexto(registro, "situacao", "situacao_rntrc", "ds_situacao"),
		Validade: campoTexto(registro, "validade", "data_validade", "dt_validade"),
		Fonte:    "dados_abertos",
	}

	if rdb != nil {
		if body, err := json.Marshal(resultado); err == nil {
			if err := rdb.Set(ctx, cacheKey, body, cacheTTL).Err(); err != nil {
				log.Println("antt: falha ao salvar cache:", err)
			}
		}
	}

	return resultado, nil
}

func buscarResourceID(client *http.Client) (string, error) {
	cacheKey := "antt:resource_id"
	if rdb != nil {
		if cached, err := rdb.Get(ctx, cacheKey).Result(); err == nil && cached != "" {
			return cached, nil
		}
	}

	showURL := fmt.Sprintf("%s/package_show?id=%s", baseURL, datasetRntrc)
	resp, err := client.Get(showURL)
	if err != nil {
		return "", fmt.Errorf("erro ao consultar package_show da ANTT: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("erro ao ler resposta da ANTT: %w", err)
	}

	var show PackageShowResponse
	if err := json.Unmarshal(body, &show); err != nil {
		return "", fmt.Errorf("erro ao decodificar package_show da ANTT: %w", err)
	}
	if !show.Success || len(show.Result.Resources) == 0 {
		return "", fmt.Errorf("dataset RNTRC indisponível na ANTT")
	}

	resourceID := show.Result.Resources[0].ID
	for _, r := range show.Result.Resources {
		if strings.Contains(strings.ToUpper(r.Name), "RNTRC") {
			resourceID = r.ID
			break
		}
	}

	if rdb != nil {
		if err := rdb.Set(ctx, cacheKey, resourceID, resourceTTL).Err(); err != nil {
			log.Println("antt: falha ao salvar resource_id no cache:", err)
		}
	}

	return resourceID, nil
}

func buscarRegistro(client *http.Client, resourceID, rntrc string) (map[string]interface{}, error) {
	searchURL := fmt.Sprintf("%s/datastore_search?resource_id=%s&q=%s&limit=1",
		baseURL, url.QueryEscape(resourceID), url.QueryEscape(rntrc))

	resp, err := client.Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("erro ao consultar datastore_search da ANTT: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler resposta da ANTT: %w", err)
	}

	var search DatastoreSearchResponse
	if err := json.Unmarshal(body, &search); err != nil {
		return nil, fmt.Errorf("erro ao decodificar datastore_search da ANTT: %w", err)
	}
	if !search.Success || len(search.Result.Records) == 0 {
		return nil, fmt.Errorf("RNTRC %s não encontrado na ANTT", rntrc)
	}

	return search.Result.Records[0], nil
}

func campoTexto(registro map[string]interface{}, chaves ...string) string {
	for _, chave := range chaves {
		if v, ok := registro[chave]; ok && v != nil {
			s := strings.TrimSpace(fmt.Sprintf("%v", v))
			if s != "" {
				return s
			}
		}
	}
	return ""
}
