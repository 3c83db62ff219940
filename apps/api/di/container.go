package di

import (
	"context"
	"fmt"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"go.uber.org/dig"
	"go.uber.org/zap"

	echoapi "github.com/trezcool/campus/apps/api/echo"
	"github.com/trezcool/campus/core"
	"github.com/trezcool/campus/core/catalog"
	"github.com/trezcool/campus/core/product"
	"github.com/trezcool/campus/core/student"
	appfs "github.com/trezcool/campus/fs"
	logsvc "github.com/trezcool/campus/services/logger"
	"github.com/trezcool/campus/storage/database"
	inmemdb "github.com/trezcool/campus/storage/database/inmem"
	sqlxrepos "github.com/trezcool/campus/storage/database/sqlx"
	"github.com/trezcool/campus/storage/static"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

func newLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewLogger(zl.Named("API"), conf)
}

func newDBLogger(zl *zap.Logger, conf *core.Config) core.Logger {
	return logsvc.NewLogger(zl.Named("DB"), conf)
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		applied, err := database.Migrate(context.Background(), db)
		if err != nil {
			_ = db.Close()
			return nil, err
		}
		if len(applied) > 0 {
			loggerParam.Logger.Info("migrations applied", map[string]interface{}{"migrations": applied})
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

// newProductRepository keeps the products API in memory, seeded with the shop dataset.
func newProductRepository(logger core.Logger) product.Repository {
	shop, err := static.LoadShop(appfs.FS)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading shop: %v", err), err)
	}
	return inmemdb.NewProductRepository(inmemdb.Open(), shop...)
}

func newProductCatalogSource(conf *core.Config, logger core.Logger) catalog.Source {
	products, err := static.LoadProducts(appfs.FS)
	if err != nil {
		logger.Fatal(fmt.Sprintf("loading products: %v", err), err)
	}
	return product.NewCatalogSource(products, conf.Catalog.MaxPrice)
}

func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	student.InitValidators(validate, translator)
	return validate
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(logsvc.NewZapLogger))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(sqlxrepos.NewStudentRepository))
	must(c.Provide(newProductRepository))
	must(c.Provide(student.NewService))
	must(c.Provide(product.NewService))
	must(c.Provide(student.NewCatalogSource, dig.Group("catalogs")))
	must(c.Provide(newProductCatalogSource, dig.Group("catalogs")))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))
	must(c.Provide(echoapi.NewServer))

	return c
}

// Visualize writes the dependency graph of c in DOT format to stdout.
func Visualize(c *dig.Container) error {
	return dig.Visualize(c, os.Stdout)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
