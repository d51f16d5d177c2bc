// Package config loads a tool's configuration from a YAML file, an optional
// .env file and the process environment using Viper.
//
// Environment variables carrying the tool's prefix override file values.
// APICALL_CLIENT_ROOT_URL, for example, sets client.root_url for a tool
// named "apicall".
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("apicall", &cfg, config.WithConfigFile(path))
package config
