// @title HackOnX Registration & Judging API
// @version 1.0
// @description Backend API for hackathon registration, application workflow, judging and leaderboard

// @securityDefinitions.apikey AdminToken
// @in header
// @name x-admin-token
package main

import (
	"github.com/GitShailendra/HackOnX-sub001/api"
	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func main() {
	logging.BootstrapLogger()

	// Load env, .env is optional outside local runs
	if err := godotenv.Load(); err != nil {
		logging.Log.Debugf("no .env file loaded: %v", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logging.Log.Errorf("Failed to read config file: %v", err)
		panic("Failed to read config file: " + err.Error())
	}

	// Read config
	config := api.ReadConfig()

	// Start the service (inside the lambda)
	service := api.NewServer(config)
	service.Start()
}
