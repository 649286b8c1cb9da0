package config

// Environment variables are read with the WARIBANK_ prefix, e.g.
// WARIBANK_DATABASE_PATH or WARIBANK_LOG_LEVEL.
const envPrefix = "WARIBANK"

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type DB struct {
	Driver string `envconfig:"DRIVER" default:"sqlite"`
	Path   string `envconfig:"PATH" default:"waribank.db"`
	Url    string `envconfig:"URL"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"text"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[waribank]"`
	File       string `envconfig:"FILE" default:"waribank.log"`
	Color      bool   `envconfig:"COLOR" default:"true"`
}

type Report struct {
	Dir string `envconfig:"DIR" default:"."`
}

type App struct {
	Env    string  `envconfig:"APP_ENV" default:"production"`
	DB     *DB     `envconfig:"DATABASE"`
	Log    *Log    `envconfig:"LOG"`
	Report *Report `envconfig:"REPORT"`
}

// IsDevelopment reports whether SQL statement logging should be on.
func (a *App) IsDevelopment() bool {
	return a.Env == "development"
}
