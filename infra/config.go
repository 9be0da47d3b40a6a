package infra

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerName  string
	ServerPort  string
	Environment string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBDatabase string
	DBSSLMode  string
	DBDriver   string

	ProgressDBHost     string
	ProgressDBPort     string
	ProgressDBUser     string
	ProgressDBPassword string
	ProgressDBDatabase string
	ProgressDBSSLMode  string
	ProgressDBDriver   string

	SignatureToken     string
	AwsAccessKeyID     string
	AwsSecretAccessKey string
	AwsRegion          string
	AwsBucketXml       string
	GoogleMapsKey      string
	RedisUrl           string

	NddEndpoint     string
	NddCnpjEmpresa  string
	NddToken        string
	NddPtEmissor    string
	NddVersaoLayout string
	NddTimeout      time.Duration
	NddCertTipo     string
	NddCertPfxPath  string
	NddCertPath     string
	NddCertKeyPath  string
	NddCertSenha    string

	VpoMaxTentativasPolling int32
}

func NewConfig() Config {
	if os.Getenv("ENVIRONMENT") == "" {
		if err := godotenv.Load(".env"); err != nil {
			panic("Error loading env file")
		}
	}

	return Config{
		ServerName:  os.Getenv("SERVER_NAME"),
		ServerPort:  os.Getenv("SERVER_PORT"),
		Environment: os.Getenv("ENVIRONMENT"),

		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBDatabase: os.Getenv("DB_DATABASE"),
		DBSSLMode:  os.Getenv("DB_SSL_MODE"),
		DBDriver:   os.Getenv("DB_DRIVER"),

		ProgressDBHost:     os.Getenv("PROGRESS_DB_HOST"),
		ProgressDBPort:     os.Getenv("PROGRESS_DB_PORT"),
		ProgressDBUser:     os.Getenv("PROGRESS_DB_USER"),
		ProgressDBPassword: os.Getenv("PROGRESS_DB_PASSWORD"),
		ProgressDBDatabase: os.Getenv("PROGRESS_DB_DATABASE"),
		ProgressDBSSLMode:  os.Getenv("PROGRESS_DB_SSL_MODE"),
		ProgressDBDriver:   os.Getenv("PROGRESS_DB_DRIVER"),

		SignatureToken:     os.Getenv("TOKEN_SIGNATURE"),
		AwsAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AwsSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		AwsRegion:          os.Getenv("AWS_REGION"),
		AwsBucketXml:       os.Getenv("VPO_XML_BUCKET"),
		GoogleMapsKey:      os.Getenv("GOOGLE_MAPS_KEY"),
		RedisUrl:           os.Getenv("REDIS_URL"),

		NddEndpoint:     os.Getenv("NDD_ENDPOINT"),
		NddCnpjEmpresa:  os.Getenv("NDD_CNPJ_EMPRESA"),
		NddToken:        os.Getenv("NDD_TOKEN"),
		NddPtEmissor:    os.Getenv("NDD_PT_EMISSOR"),
		NddVersaoLayout: os.Getenv("NDD_VERSAO_LAYOUT"),
		NddTimeout:      parseSegundos(os.Getenv("NDD_TIMEOUT_SEGUNDOS"), 90),
		NddCertTipo:     os.Getenv("NDD_CERT_TIPO"),
		NddCertPfxPath:  os.Getenv("NDD_CERT_PFX_PATH"),
		NddCertPath:     os.Getenv("NDD_CERT_PATH"),
		NddCertKeyPath:  os.Getenv("NDD_CERT_KEY_PATH"),
		NddCertSenha:    os.Getenv("NDD_CERT_SENHA"),

		VpoMaxTentativasPolling: parseInt32(os.Getenv("VPO_MAX_TENTATIVAS_POLLING"), 50),
	}
}

func parseSegundos(valor string, padrao int) time.Duration {
	if valor == "" {
		return time.Duration(padrao) * time.Second
	}
	segundos, err := strconv.Atoi(valor)
	if err != nil || segundos <= 0 {
		return time.Duration(padrao) * time.Second
	}
	return time.Duration(segundos) * time.Second
}

func parseInt32(valor string, padrao int32) int32 {
	if valor == "" {
		return padrao
	}
	parsed, err := strconv.ParseInt(valor, 10, 32)
	if err != nil || parsed <= 0 {
		return padrao
	}
	return int32(parsed)
}
