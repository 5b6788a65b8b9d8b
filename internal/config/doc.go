// Package config loads settings for the server and the terminal client from
// an optional config file and WORDSAVER_* environment variables, and
// validates them before use.
package config
