// Package main is the entry point of the HTTP lobby server.
package main

import (
	"log"

	"github.com/nautica/battleship-zk/internal/server"
)

func main() {
	app := &server.Application{}
	if err := app.Setup(); err != nil {
		log.Fatalf("server: setup failed: %v", err)
	}
	if err := app.E.Start(":" + app.Cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
