package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment       string
	ServicePort       string
	MetricsPort       string
	JWTSecret         string
	PostgreSQLConfig  PostgreSQLConfig
	MongoDBConfig     MongoDBConfig
	BlobStorageConfig BlobStorageConfig
	KafkaConfig       KafkaConfig
	SMTPConfig        SMTPConfig
	TracingConfig     TracingConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

type MongoDBConfig struct {
	DBHost string
	DBPort string
	DBName string
}

type BlobStorageConfig struct {
	BaseURL string
	Bucket  string
	APIKey  string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Sender   string
	Password string
}

type TracingConfig struct {
	CollectorHost string
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		Environment: os.Getenv("ENVIRONMENT"),
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		MongoDBConfig: MongoDBConfig{
			DBHost: os.Getenv("MONGODB_HOST"),
			DBPort: os.Getenv("MONGODB_PORT"),
			DBName: os.Getenv("MONGODB_NAME"),
		},
		BlobStorageConfig: BlobStorageConfig{
			BaseURL: os.Getenv("BLOB_STORAGE_BASE_URL"),
			Bucket:  os.Getenv("BLOB_STORAGE_BUCKET"),
			APIKey:  os.Getenv("BLOB_STORAGE_API_KEY"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		SMTPConfig: SMTPConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Sender:   os.Getenv("SMTP_SENDER"),
			Password: os.Getenv("SMTP_PASSWORD"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("TRACING_COLLECTOR_HOST"),
		},
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	smtpPort, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err == nil {
		conf.SMTPConfig.Port = smtpPort
	}

	return &conf
}
