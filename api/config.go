package api

import (
	"sync"
	"time"

	"github.com/GitShailendra/HackOnX-sub001/logging"
	"github.com/spf13/viper"
)

type Config struct {
	StorageConfig
	ServerConfig
	AuthConfig
	MailConfig
}

type StorageConfig struct {
	TableNameApplications string
	TableNameAccounts     string
	BucketNameUploads     string
}

type ServerConfig struct {
	Port int
}

type AuthConfig struct {
	TokenSecret string
	TokenTTL    time.Duration
}

type MailConfig struct {
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	From         string
	QueueSize    int
}

var settingsOnce sync.Once

func ReadConfig() *Config {

	var conf = &Config{
		StorageConfig: StorageConfig{
			TableNameApplications: viper.GetString("storage.TableNameApplications"),
			TableNameAccounts:     viper.GetString("storage.TableNameAccounts"),
			BucketNameUploads:     viper.GetString("storage.BucketNameUploads"),
		},
		ServerConfig: ServerConfig{
			Port: viper.GetInt("server.port"),
		},
		AuthConfig: AuthConfig{
			TokenSecret: viper.GetString("auth.tokenSecret"),
			TokenTTL:    viper.GetDuration("auth.tokenTTL"),
		},
		MailConfig: MailConfig{
			SMTPHost:     viper.GetString("mail.smtpHost"),
			SMTPPort:     viper.GetInt("mail.smtpPort"),
			SMTPUsername: viper.GetString("mail.smtpUsername"),
			SMTPPassword: viper.GetString("mail.smtpPassword"),
			From:         viper.GetString("mail.from"),
			QueueSize:    getIntOrDefault("mail.queueSize", 64),
		},
	}

	if conf.AuthConfig.TokenTTL == 0 {
		conf.AuthConfig.TokenTTL = 12 * time.Hour
	}

	settingsOnce.Do(func() {
		logging.Log.Print("Reading settings!")
	})

	return conf
}

func getIntOrDefault(name string, def int) int {
	if viper.IsSet(name) {
		v := viper.GetInt(name)
		logging.Log.Printf("found '%s' in viper", name)
		return v
	}
	logging.Log.Printf("could not find '%s' in viper! Returning default", name)
	return def
}
