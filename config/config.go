package config

// Config is the root configuration for one SLCSP run.
type Config struct {
	Inputs   InputsConfig   `yaml:"inputs"`
	Output   string         `yaml:"output"`
	Postgres PostgresConfig `yaml:"postgres"`
	Quiet    bool           `yaml:"quiet"` // suppress per-ZIP progress lines
}

// InputsConfig names the input files. Plans and Zips may be CSV or Parquet.
type InputsConfig struct {
	Plans   string `yaml:"plans"`
	Zips    string `yaml:"zips"`
	Request string `yaml:"request"`
}

// PostgresConfig points at a database holding the plans and zips tables.
// When set, it replaces Inputs.Plans and Inputs.Zips as the reference source.
type PostgresConfig struct {
	URL      string `yaml:"url"` // full connection string, overrides the fields below
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"ssl_mode"`
	MaxConns int32  `yaml:"max_conns"`
}
