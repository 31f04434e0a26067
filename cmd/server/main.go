package main

import (
	"github.com/linqs/GAIA-sub004/internal/server"
	"github.com/linqs/GAIA-sub004/internal/util"
	"github.com/linqs/GAIA-sub004/pkg/logger"
	"github.com/linqs/GAIA-sub004/pkg/logger/console"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: debug,
		JSON:  util.GetEnvBool("LOG_JSON", false),
	})
	logger.Init(consoleLogger)

	server.Init()
}
