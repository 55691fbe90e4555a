// Main entry point for the application
package main

import (
	"log"

	"github.com/serge22/media-accordion/internal/ui"
)

func main() {
	// Set the logger prefix
	log.SetPrefix("Media Accordion ")

	ui.CreateApplication()
}
