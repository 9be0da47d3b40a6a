package antt

// Estruturas da API CKAN de dados abertos da ANTT.

type PackageShowResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Resources []struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Format string `json:"format"`
		} `json:"resources"`
	} `json:"result"`
}

type DatastoreSearchResponse struct {
	Success bool `json:"success"`
	Result  struct {
		Records []map[string]interface{} `json:"records"`
		Total   int                      `json:"total"`
	} `json:"result"`
}

// ResultadoRntrc é o registro já normalizado para o merge de dados VPO.
type ResultadoRntrc struct {
	Rntrc    string `json:"rntrc"`
	Nome     string `json:"nome"`
	Situacao string `json:"situacao"`
	Validade string `json:"validade"`
	Fonte    string `json:"fonte"`
}
