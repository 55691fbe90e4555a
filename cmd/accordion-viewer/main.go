package main

import (
	"github.com/serge22/media-accordion/internal/ui"
)

func main() {
	ui.CreateApplication()
}
