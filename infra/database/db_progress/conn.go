package db_progress

import (
	"database/sql"
	"fmt"

	"valepedagio/infra/database"

	_ "github.com/lib/pq"
)

// NewConnection abre a conexão somente-leitura com o espelho do ERP
// Progress/OpenEdge. Não roda migrações: o schema PUB.* pertence ao ERP.
func NewConnection(config *database.Config) *sql.DB {
	driver := config.Driver
	dsn := config.Driver + "://" + config.User + ":" + config.Password + "@" +
		config.Host + ":" + config.Port + "/" + config.Database + config.SSLMode

	db, err := sql.Open(driver, dsn)
	if err != nil {
		errConnection(config.Environment, err)
	}

	if err := db.Ping(); err != nil {
		fmt.Println("Erro ao conectar ao banco Progress:", err)
		errConnection(config.Environment, err)
	}

	return db
}

func errConnection(environment string, err error) {
	fmt.Println("Erro de conexão Progress:", environment, err)
	panic("failed to connect " + environment + " progress database_infra: " + err.Error())
}
