package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"steuer-chat/cmd/chat"
	"steuer-chat/cmd/extract"
	"steuer-chat/cmd/report"
	"steuer-chat/cmd/root"
	"steuer-chat/cmd/serve"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func init() {
	// Load environment variables silently first (no logging yet)
	loadEnvSilently()

	// Configure the global log level before any logger emits a line
	logLevel := configureLogLevelDirectly()
	root.Log.SetLevel(logLevel)

	root.Init()

	root.Cmd.AddCommand(chat.Cmd)
	root.Cmd.AddCommand(serve.Cmd)
	root.Cmd.AddCommand(extract.Cmd)
	root.Cmd.AddCommand(report.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	envFile := ".env"
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		envFile = filepath.Join("..", ".env")
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			return
		}
	}

	_ = godotenv.Load(envFile)
}

// configureLogLevelDirectly sets the global log level for all logrus
// instances and returns the configured level
func configureLogLevelDirectly() logrus.Level {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
	return logLevel
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
