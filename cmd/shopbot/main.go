// Package main is the entry point for the shopbot service.
package main

import (
	_ "go.uber.org/automaxprocs/maxprocs"

	"github.com/kart-io/shopbot/internal/bot"
)

func main() {
	bot.NewApp().Run()
}
