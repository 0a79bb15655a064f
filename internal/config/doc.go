// Package config defines the application configuration structure and the
// viper-based loading of it from the environment and optional config file.
package config
