package nddcargo

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gerarCertificadoTeste(t *testing.T) (*Assinador, *rsa.PrivateKey) {
	t.Helper()

	chave, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	modelo := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "EMPRESA TESTE LTDA:12345678000190"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	certDER, err := x509.CreateCertificate(rand.Reader, &modelo, &modelo, &chave.PublicKey, chave)
	require.NoError(t, err)

	dir := t.TempDir()
	certPath := filepath.Join(dir, "cert.pem")
	keyPath := filepath.Join(dir, "key.pem")

	certPem := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	require.NoError(t, os.WriteFile(certPath, certPem, 0600))

	keyPem := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(chave)})
	require.NoError(t, os.WriteFile(keyPath, keyPem, 0600))

	assinador := NewAssinador(ConfigCertificado{Tipo: "pem", CertPath: certPath, KeyPath: keyPath})
	return assinador, chave
}

func extrairEntre(t *testing.T, conteudo, inicio, fim string) string {
	t.Helper()
	i := strings.Index(conteudo, inicio)
	require.GreaterOrEqual(t, i, 0, "marcador %q não encontrado", inicio)
	resto := conteudo[i:]
	f := strings.Index(resto, fim)
	require.GreaterOrEqual(t, f, 0, "marcador %q não encontrado", fim)
	return resto[:f+len(fim)]
}

func TestSignXmlEstrutura(t *testing.T) {
	assinador, _ := gerarCertificadoTeste(t)
	guid := "a1b2c3d4-0000-0000-0000-000000000001"
	documento := builderDeTeste().MontarVpoEnvio(guid, dadosVpoDeTeste(), waypointsDeTeste(), nil, "")

	assinado, err := assinador.SignXml(documento, guid)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(assinado, documento[:len(documento)-len("</operacaoValePedagio_envio>")]))
	assert.True(t, strings.HasSuffix(assinado, `</Signature></operacaoValePedagio_envio>`))
	assert.Contains(t, assinado, `<Signature xmlns="http://www.w3.org/2000/09/xmldsig#">`)
	assert.Contains(t, assinado, `<Reference URI="#`+guid+`">`)
	assert.Contains(t, assinado, `<Transform Algorithm="http://www.w3.org/2000/09/xmldsig#enveloped-signature">`)
	assert.Contains(t, assinado, `<SignatureMethod Algorithm="http://www.w3.org/2000/09/xmldsig#rsa-sha1">`)
	assert.Contains(t, assinado, "<X509Certificate>")
	assert.NotContains(t, assinado, "-----BEGIN CERTIFICATE-----")
}

func TestSignXmlDigestEAssinaturaVerificaveis(t *testing.T) {
	assinador, chave := gerarCertificadoTeste(t)
	documento := builderDeTeste().MontarVpoEnvio("g1", dadosVpoDeTeste(), waypointsDeTeste(), nil, "")

	assinado, err := assinador.SignXml(documento, "g1")
	require.NoError(t, err)

	// O digest cobre o documento inteiro antes da inserção da assinatura.
	digestEsperado := sha1.Sum([]byte(documento))
	digestXml := extrairEntre(t, assinado, "<DigestValue>", "</DigestValue>")
	digestXml = strings.TrimSuffix(strings.TrimPrefix(digestXml, "<DigestValue>"), "</DigestValue>")
	assert.Equal(t, base64.StdEncoding.EncodeToString(digestEsperado[:]), digestXml)

	signedInfo := extrairEntre(t, assinado, "<SignedInfo", "</SignedInfo>")
	resumo := sha1.Sum([]byte(signedInfo))

	valorXml := extrairEntre(t, assinado, "<SignatureValue>", "</SignatureValue>")
	valorXml = strings.TrimSuffix(strings.TrimPrefix(valorXml, "<SignatureValue>"), "</SignatureValue>")
	assinatura, err := base64.StdEncoding.DecodeString(valorXml)
	require.NoError(t, err)

	assert.NoError(t, rsa.VerifyPKCS1v15(&chave.PublicKey, crypto.SHA1, resumo[:], assinatura))
}

func TestSignXmlIgnoraDeclaracaoNoDigest(t *testing.T) {
	assinador, _ := gerarCertificadoTeste(t)
	documento := `<raiz><valor>1</valor></raiz>`

	semDeclaracao, err := assinador.SignXml(documento, "id1")
	require.NoError(t, err)
	comDeclaracao, err := assinador.SignXml(`<?xml version="1.0"?>`+documento, "id1")
	require.NoError(t, err)

	digestA := extrairEntre(t, semDeclaracao, "<DigestValue>", "</DigestValue>")
	digestB := extrairEntre(t, comDeclaracao, "<DigestValue>", "</DigestValue>")
	assert.Equal(t, digestA, digestB)
}

func TestSignXmlCertificadoInexistente(t *testing.T) {
	assinador := NewAssinador(ConfigCertificado{Tipo: "pem", CertPath: "/nao/existe.pem", KeyPath: "/nao/existe.key"})

	_, err := assinador.SignXml("<raiz></raiz>", "id")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "certificado digital")
}
