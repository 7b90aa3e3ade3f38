package main

import (
	"github.com/OFFIS-RIT/paperkg/internal/cli"
	"github.com/OFFIS-RIT/paperkg/internal/util"
	"github.com/OFFIS-RIT/paperkg/pkg/logger"

	_ "github.com/lib/pq"
)

func main() {
	util.LoadEnv()
	cli.InitLogger(false)

	if err := cli.Execute(); err != nil {
		logger.Fatal("paperkg failed", "err", err)
	}
}
