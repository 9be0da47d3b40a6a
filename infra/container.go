package infra

import (
	"database/sql"

	"valepedagio/infra/database"
	"valepedagio/infra/database/db_postgresql"
	"valepedagio/infra/database/db_progress"
	"valepedagio/infra/token"
	"valepedagio/internal/emissao"
	"valepedagio/internal/emissaolog"
	"valepedagio/internal/nddcargo"
	"valepedagio/internal/pracas"
	"valepedagio/internal/progress"
	"valepedagio/internal/transportador"
	"valepedagio/internal/ws"
	"valepedagio/pkg"
	"valepedagio/pkg/antt"
)

type ContainerDI struct {
	Config       Config
	ConnDB       *sql.DB
	ConnProgress *sql.DB

	RepositoryProgress      *progress.Repository
	RepositoryTransportador *transportador.Repository
	RepositoryPracas        *pracas.Repository
	RepositoryEmissaoLog    *emissaolog.Repository
	RepositoryEmissao       *emissao.Repository

	NddBuilder   *nddcargo.Builder
	NddAssinador *nddcargo.Assinador
	NddClient    *nddcargo.Client

	ServiceTransportador *transportador.Service
	ServicePracas        *pracas.Service
	ServiceEmissaoLog    *emissaolog.Service
	ServiceEmissao       *emissao.Service

	HandlerTransportador *transportador.Handler
	HandlerEmissaoLog    *emissaolog.Handler
	HandlerEmissao       *emissao.Handler
	WsHandler            *ws.Handler

	PasetoMaker *token.Maker
}

func NewContainerDI(config Config) *ContainerDI {
	container := &ContainerDI{Config: config}
	container.db()
	container.buildPkg()
	container.buildRepository()
	container.buildService()
	container.buildHandler()
	return container
}

func (c *ContainerDI) db() {
	dbConfig := database.Config{
		Host:        c.Config.DBHost,
		Port:        c.Config.DBPort,
		User:        c.Config.DBUser,
		Password:    c.Config.DBPassword,
		Database:    c.Config.DBDatabase,
		SSLMode:     c.Config.DBSSLMode,
		Driver:      c.Config.DBDriver,
		Environment: c.Config.Environment,
	}
	c.ConnDB = db_postgresql.NewConnection(&dbConfig)

	progressConfig := database.Config{
		Host:        c.Config.ProgressDBHost,
		Port:        c.Config.ProgressDBPort,
		User:        c.Config.ProgressDBUser,
		Password:    c.Config.ProgressDBPassword,
		Database:    c.Config.ProgressDBDatabase,
		SSLMode:     c.Config.ProgressDBSSLMode,
		Driver:      c.Config.ProgressDBDriver,
		Environment: c.Config.Environment,
	}
	c.ConnProgress = db_progress.NewConnection(&progressConfig)
}

func (c *ContainerDI) buildPkg() {
	pkg.InitRedis(c.Config.RedisUrl)
	antt.Init(pkg.Rdb)

	maker, _ := token.NewPasetoMaker(c.Config.SignatureToken)
	c.PasetoMaker = &maker

	c.NddBuilder = nddcargo.NewBuilder(
		c.Config.NddCnpjEmpresa,
		c.Config.NddToken,
		c.Config.NddPtEmissor,
		c.Config.NddVersaoLayout,
	)
	c.NddAssinador = nddcargo.NewAssinador(nddcargo.ConfigCertificado{
		Tipo:     c.Config.NddCertTipo,
		PfxPath:  c.Config.NddCertPfxPath,
		CertPath: c.Config.NddCertPath,
		KeyPath:  c.Config.NddCertKeyPath,
		Senha:    c.Config.NddCertSenha,
	})
	c.NddClient = nddcargo.NewClient(
		c.Config.NddEndpoint,
		c.Config.NddCnpjEmpresa,
		c.Config.NddToken,
		c.Config.NddVersaoLayout,
		c.Config.NddTimeout,
	)
}

func (c *ContainerDI) buildRepository() {
	c.RepositoryProgress = progress.NewProgressRepository(c.ConnProgress)
	c.RepositoryTransportador = transportador.NewTransportadorRepository(c.ConnDB)
	c.RepositoryPracas = pracas.NewPracasRepository(c.ConnDB)
	c.RepositoryEmissaoLog = emissaolog.NewEmissaoLogRepository(c.ConnDB)
	c.RepositoryEmissao = emissao.NewEmissaoRepository(c.ConnDB)
}

func (c *ContainerDI) buildService() {
	c.ServiceTransportador = transportador.NewTransportadorService(c.RepositoryTransportador, c.RepositoryProgress)
	c.ServicePracas = pracas.NewPracasService(c.RepositoryPracas, c.Config.GoogleMapsKey)
	c.ServiceEmissaoLog = emissaolog.NewEmissaoLogService(c.RepositoryEmissaoLog, c.Config.AwsBucketXml)
	c.ServiceEmissao = emissao.NewEmissaoService(
		c.RepositoryEmissao,
		c.RepositoryProgress,
		c.ServiceTransportador,
		c.ServicePracas,
		c.ServiceEmissaoLog,
		c.NddBuilder,
		c.NddAssinador,
		c.NddClient,
		c.Config.VpoMaxTentativasPolling,
	)
}

func (c *ContainerDI) buildHandler() {
	c.HandlerTransportador = transportador.NewTransportadorHandler(c.ServiceTransportador)
	c.HandlerEmissaoLog = emissaolog.NewEmissaoLogHandler(c.ServiceEmissaoLog)
	c.HandlerEmissao = emissao.NewEmissaoHandler(c.ServiceEmissao)

	hub := ws.NewHub()
	c.WsHandler = ws.NewWsHandler(hub)
	go hub.Run()

	// As transições de estado da emissão chegam aos painéis pelo hub.
	c.ServiceEmissao.Notificar = hub.Publicar
}
