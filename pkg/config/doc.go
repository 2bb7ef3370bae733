// Package config loads typed application configuration from environment
// variables, with an optional .env file for local development.
//
// Declare a struct with `env` tags and hand a pointer to Load:
//
//	type apiConfig struct {
//	    Addr     string `env:"HTTP_ADDR" envDefault:":8080"`
//	    AuthType string `env:"AUTH_TYPE" envDefault:"session_exp_auth"`
//	}
//
//	var cfg apiConfig
//	config.MustLoad(&cfg)
//
// Each configuration type is parsed once per process and cached, so wiring
// code in different packages can load the same type independently and agree
// on the result. Reset clears the cache between tests.
package config
