// Copyright (c) 2026 Fogbound Project
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package main

import (
	"flag"
	"log"

	"fogbound/internal/app"
	"fogbound/internal/config"
)

func main() {
	configPath := flag.String("config", "./fogbound.conf", "path to configuration file")
	flag.Parse()

	log.Println("starting fogbound game")

	if err := config.InitGlobal(*configPath); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunGame(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
