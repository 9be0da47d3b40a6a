package nddcargo

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/crypto/pkcs12"
)

// Algoritmos exigidos pela NDD Cargo. SHA1 está obsoleto para uso geral,
// mas continua sendo o único aceito por esta API.
const (
	algC14N      = "http://www.w3.org/TR/2001/REC-xml-c14n-20010315"
	algRsaSha1   = "http://www.w3.org/2000/09/xmldsig#rsa-sha1"
	algSha1      = "http://www.w3.org/2000/09/xmldsig#sha1"
	algEnveloped = "http://www.w3.org/2000/09/xmldsig#enveloped-signature"
)

// ConfigCertificado aponta para o certificado A1 (ICP-Brasil) usado na
// assinatura: arquivo .pfx ou par PEM certificado+chave.
type ConfigCertificado struct {
	Tipo     string // "pfx" ou "pem"
	PfxPath  string
	CertPath string
	KeyPath  string
	Senha    string
}

// Assinador produz assinaturas XML-DSig envelopadas RSA-SHA1. O material
// do certificado é carregado uma única vez por processo, sob mutex, e a
// partir daí é somente-leitura.
type Assinador struct {
	config ConfigCertificado

	mu        sync.Mutex
	carregado bool
	chave     *rsa.PrivateKey
	certDER   []byte
}

func NewAssinador(config ConfigCertificado) *Assinador {
	return &Assinador{config: config}
}

// SignXml assina o documento com assinatura envelopada referenciando
// URI="#<referenceId>" e devolve o XML com o elemento Signature como
// último filho da raiz. Problemas de certificado falham alto: nunca
// devolve um documento sem assinatura.
func (a *Assinador) SignXml(xmlContent, referenceID string) (string, error) {
	if err := a.carregarCertificado(); err != nil {
		return "", err
	}

	canonico := canonicalizar(xmlContent)
	digest := sha1.Sum([]byte(canonico))
	digestValue := base64.StdEncoding.EncodeToString(digest[:])

	signedInfo := montarSignedInfo(referenceID, digestValue)

	resumo := sha1.Sum([]byte(canonicalizar(signedInfo)))
	assinatura, err := rsa.SignPKCS1v15(rand.Reader, a.chave, crypto.SHA1, resumo[:])
	if err != nil {
		return "", fmt.Errorf("erro ao gerar assinatura RSA: %w", err)
	}
	signatureValue := base64.StdEncoding.EncodeToString(assinatura)
	certBase64 := base64.StdEncoding.EncodeToString(a.certDER)

	var sb strings.Builder
	sb.WriteString(`<Signature xmlns="http://www.w3.org/2000/09/xmldsig#">`)
	sb.WriteString(signedInfo)
	sb.WriteString("<SignatureValue>" + signatureValue + "</SignatureValue>")
	sb.WriteString("<KeyInfo><X509Data><X509Certificate>" + certBase64 + "</X509Certificate></X509Data></KeyInfo>")
	sb.WriteString("</Signature>")

	// A assinatura entra como último filho do elemento raiz.
	fechamento := strings.LastIndex(xmlContent, "</")
	if fechamento < 0 {
		return "", fmt.Errorf("xml inválido para inserção de assinatura")
	}
	return xmlContent[:fechamento] + sb.String() + xmlContent[fechamento:], nil
}

func montarSignedInfo(referenceID, digestValue string) string {
	var sb strings.Builder
	sb.WriteString(`<SignedInfo xmlns="http://www.w3.org/2000/09/xmldsig#">`)
	sb.WriteString(`<CanonicalizationMethod Algorithm="` + algC14N + `"></CanonicalizationMethod>`)
	sb.WriteString(`<SignatureMethod Algorithm="` + algRsaSha1 + `"></SignatureMethod>`)
	sb.WriteString(`<Reference URI="#` + referenceID + `">`)
	sb.WriteString(`<Transforms>`)
	sb.WriteString(`<Transform Algorithm="` + algEnveloped + `"></Transform>`)
	sb.WriteString(`<Transform Algorithm="` + algC14N + `"></Transform>`)
	sb.WriteString(`</Transforms>`)
	sb.WriteString(`<DigestMethod Algorithm="` + algSha1 + `"></DigestMethod>`)
	sb.WriteString(`<DigestValue>` + digestValue + `</DigestValue>`)
	sb.WriteString(`</Reference>`)
	sb.WriteString(`</SignedInfo>`)
	return sb.String()
}

// canonicalizar remove a declaração XML e espaços nas bordas. Os builders
// deste pacote já emitem a forma canônica C14N (sem auto-fechamento, sem
// comentários, atributos em ordem), então não há reescrita a fazer.
func canonicalizar(xmlContent string) string {
	xmlContent = strings.TrimSpace(xmlContent)
	if strings.HasPrefix(xmlContent, "<?xml") {
		if fim := strings.Index(xmlContent, "?>"); fim >= 0 {
			xmlContent = strings.TrimSpace(xmlContent[fim+2:])
		}
	}
	return xmlContent
}

func (a *Assinador) carregarCertificado() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.carregado {
		return nil
	}

	var err error
	if a.config.Tipo == "pem" {
		err = a.carregarPem()
	} else {
		err = a.carregarPfx()
	}
	if err != nil {
		return fmt.Errorf("certificado digital: %w", err)
	}

	a.carregado = true
	return nil
}

func (a *Assinador) carregarPfx() error {
	conteudo, err := os.ReadFile(a.config.PfxPath)
	if err != nil {
		return fmt.Errorf("erro ao ler arquivo .pfx %s: %w", a.config.PfxPath, err)
	}

	chave, cert, err := pkcs12.Decode(conteudo, a.config.Senha)
	if err != nil {
		return fmt.Errorf("erro ao decodificar .pfx: %w", err)
	}

	rsaKey, ok := chave.(*rsa.PrivateKey)
	if !ok {
		return fmt.Errorf("chave privada do .pfx não é RSA")
	}

	a.chave = rsaKey
	a.certDER = cert.Raw
	return nil
}

func (a *Assinador) carregarPem() error {
	certPem, err := os.ReadFile(a.config.CertPath)
	if err != nil {
		return fmt.Errorf("erro ao ler certificado %s: %w", a.config.CertPath, err)
	}
	bloco, _ := pem.Decode(certPem)
	if bloco == nil || bloco.Type != "CERTIFICATE" {
		return fmt.Errorf("certificado PEM inválido em %s", a.config.CertPath)
	}
	cert, err := x509.ParseCertificate(bloco.Bytes)
	if err != nil {
		return fmt.Errorf("erro ao interpretar certificado: %w", err)
	}

	keyPem, err := os.ReadFile(a.config.KeyPath)
	if err != nil {
		return fmt.Errorf("erro ao ler chave privada %s: %w", a.config.KeyPath, err)
	}
	blocoChave, _ := pem.Decode(keyPem)
	if blocoChave == nil {
		return fmt.Errorf("chave privada PEM inválida em %s", a.config.KeyPath)
	}

	derChave := blocoChave.Bytes
	if x509.IsEncryptedPEMBlock(blocoChave) {
		derChave, err = x509.DecryptPEMBlock(blocoChave, []byte(a.config.Senha))
		if err != nil {
			return fmt.Errorf("erro ao decifrar chave privada: %w", err)
		}
	}

	chave, err := parseChavePrivada(derChave)
	if err != nil {
		return err
	}

	a.chave = chave
	a.certDER = cert.Raw
	return nil
}

func parseChavePrivada(der []byte) (*rsa.PrivateKey, error) {
	if chave, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return chave, nil
	}
	parsed, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("erro ao interpretar chave privada: %w", err)
	}
	chave, ok := parsed.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("chave privada não é RSA")
	}
	return chave, nil
}
