package config

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type AppConfig struct {
	DatabaseURL   string
	TelegramToken string
	AdminChatIDs  []int64
	IncludeHidden bool
}

var instance *AppConfig
var once sync.Once

// Get returns the process-wide configuration, loading .env on first use.
func Get() *AppConfig {
	once.Do(func() {
		instance = &AppConfig{}

		if err := godotenv.Load(); err != nil {
			logrus.Debugf("no .env file loaded: %s", err.Error())
		}

		instance.DatabaseURL = getEnv("DATABASE_URL", "dienstplan.db")
		instance.TelegramToken = getEnv("TELEGRAM_BOT_TOKEN", "")
		instance.AdminChatIDs = getEnvAsInt64List("ADMIN_CHAT_IDS")
		instance.IncludeHidden = getEnvAsBool("INCLUDE_HIDDEN", false)
	})

	return instance
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}

	return defaultVal
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valStr := getEnv(name, "")
	if val, err := strconv.ParseBool(valStr); err == nil {
		return val
	}

	return defaultVal
}

func getEnvAsInt64List(name string) []int64 {
	valStr := getEnv(name, "")
	if valStr == "" {
		return nil
	}

	var ids []int64
	for _, part := range strings.Split(valStr, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			logrus.Warnf("ignoring malformed chat id %q in %s", part, name)
			continue
		}
		ids = append(ids, id)
	}

	return ids
}
