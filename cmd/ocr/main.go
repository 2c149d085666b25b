package main

import (
	"github.com/MeKo-Christian/pogo/cmd/ocr/cmd"
	"github.com/MeKo-Christian/pogo/internal/version"
)

func main() {
	version.Version = ocrVersion
	version.GitCommit = ocrCommit
	version.BuildDate = ocrDate
	cmd.Execute()
}

// Overridden via -ldflags at release build time.
var (
	ocrVersion = "dev"
	ocrCommit  = "unknown"
	ocrDate    = "unknown"
)
