// Package config loads process settings.
//
// Values come from a .env file in the working directory when present, then from the
// process environment. The credentials file path is not an environment setting; it is
// taken from the command line after the "serve" token.
package config
