// Package validation checks configuration structs against their
// `validate` struct tags using go-playground/validator.
//
// Field names in failures come from the `mapstructure` tag, falling back to
// `json` and then to the snake_cased Go field name, so messages match the
// keys a user writes in a config file.
package validation
