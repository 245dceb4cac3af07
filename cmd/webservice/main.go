package main

import (
	"context"
	"fmt"
	"os"

	"github.com/ayaxan7/seller-dashboard/config"
	"github.com/ayaxan7/seller-dashboard/internal/app"
	"github.com/ayaxan7/seller-dashboard/internal/infrastructure/database/mongodb"
	postgresDriver "github.com/ayaxan7/seller-dashboard/internal/infrastructure/database/postgres"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = logger

	conf := config.CreateNewConfig()

	db, err := postgresDriver.GetDBInstance(conf.PostgreSQLConfig.DBUsername, conf.PostgreSQLConfig.DBPassword, conf.PostgreSQLConfig.DBHost, conf.PostgreSQLConfig.DBPort, conf.PostgreSQLConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to the database")
	}

	mongoDB, err := mongodb.ConnectToMongoDB(fmt.Sprintf("mongodb://%s:%s", conf.MongoDBConfig.DBHost, conf.MongoDBConfig.DBPort), conf.MongoDBConfig.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}

	defer mongoDB.Client().Disconnect(context.Background())

	server := app.App{
		PostgresDB: db,
		MongoDB:    mongoDB,
		Config:     conf,
	}

	server.Start()
}
