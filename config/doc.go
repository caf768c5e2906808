// Package config loads the settings of the hbnb console.
//
// Sources, lowest precedence first: built-in defaults, an optional YAML
// file, an optional .env file and HBNB_* environment variables. Command-line
// flags are applied on top by the binary.
//
//	backend: dynamodb
//	log_level: info
//	dynamodb:
//	  region: us-east-1
//	  table: hbnb
package config
