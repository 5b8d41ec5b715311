package commands

import (
	"context"
	"database/sql"
	"elca2dgnb/lib/configutil"
	"elca2dgnb/lib/dgnbtemplate"
	"elca2dgnb/lib/scrapers/elca"
	"elca2dgnb/lib/util/serviceutil"
	"elca2dgnb/services/export/db"
)

type ElcaConfig struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type TemplatesConfig struct {
	Dir string `json:"dir"`
	// when set, templates are not scanned for a V<version> marker and all
	// candidates report this constant instead
	StaticVersion string `json:"static_version"`
}

type Config struct {
	Elca      ElcaConfig      `json:"elca"`
	Templates TemplatesConfig `json:"templates"`
	// sqlite file holding the export run log
	Database  string `json:"database"`
	StampCell string `json:"stamp_cell"`
}

func loadConfig() Config {
	config, err := configutil.ReadRecursively[Config]("elca2dgnb.json5")
	if err != nil {
		serviceutil.Fatal("read elca2dgnb.json5", err)
	}
	return config
}

func newLoggedInClient(ctx context.Context, config Config) *elca.Client {
	client, err := elca.NewClient(ctx, elca.ClientOptions{
		BaseUrl: config.Elca.BaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("create elca client", err)
	}
	err = client.Login(ctx, config.Elca.Username, config.Elca.Password)
	if err != nil {
		serviceutil.Fatal("login to elca", err)
	}
	return client
}

func newResolver(config Config) dgnbtemplate.Resolver {
	var versioner dgnbtemplate.Versioner = dgnbtemplate.MarkerVersioner{}
	if config.Templates.StaticVersion != "" {
		versioner = dgnbtemplate.StaticVersioner(config.Templates.StaticVersion)
	}
	return dgnbtemplate.Resolver{
		Store:     dgnbtemplate.DirStore{Dir: config.Templates.Dir},
		Versioner: versioner,
	}
}

func openDatabase(config Config) *sql.DB {
	path := config.Database
	if path == "" {
		path = "elca2dgnb.db"
	}
	database, err := sql.Open("sqlite", path)
	if err != nil {
		serviceutil.Fatal("open run log database", err)
	}
	_, err = database.Exec(db.Schema)
	if err != nil {
		serviceutil.Fatal("apply run log schema", err)
	}
	return database
}
