package config

// Default values for optional configuration fields.
const (
	DefaultPlansFile   = "plans.csv"
	DefaultZipsFile    = "zips.csv"
	DefaultRequestFile = "slcsp.csv"
	DefaultOutputFile  = "slcsp_out.csv"
	DefaultDBPort      = 5432
	DefaultDBSSLMode   = "prefer"
	DefaultDBMaxConns  = 4
)

func (c *Config) applyDefaults() {
	if c.Inputs.Plans == "" {
		c.Inputs.Plans = DefaultPlansFile
	}
	if c.Inputs.Zips == "" {
		c.Inputs.Zips = DefaultZipsFile
	}
	if c.Inputs.Request == "" {
		c.Inputs.Request = DefaultRequestFile
	}
	if c.Output == "" {
		c.Output = DefaultOutputFile
	}

	if c.Postgres.Port == 0 {
		c.Postgres.Port = DefaultDBPort
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = DefaultDBSSLMode
	}
	if c.Postgres.MaxConns == 0 {
		c.Postgres.MaxConns = DefaultDBMaxConns
	}
}
