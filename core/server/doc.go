// Package server holds configuration for the HTTP surface started by the serve command.
package server
