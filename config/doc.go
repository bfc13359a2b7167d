// Package config loads the run configuration for slcsp.
//
// A YAML file is optional; every field has a default that matches the
// conventional file names (plans.csv, zips.csv, slcsp.csv). Files support
// ${VAR} environment variable interpolation.
package config
