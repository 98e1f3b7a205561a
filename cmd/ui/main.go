package main

import (
	"log"

	"goassay/ui"
)

func main() {
	app := ui.NewApp(ui.AppConfig{Port: "8080"})
	log.Println("Starting goassay demo on http://localhost:8080")
	log.Fatal(app.Start())
}
