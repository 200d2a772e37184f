package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	Env         string `env:"APP_ENV" envDefault:"development"`
	DatabaseDSN string `env:"DATABASE_DSN,required"`
	JWTSecret   string `env:"JWT_SECRET,required"`
	UploadDir   string `env:"UPLOAD_DIR" envDefault:"uploads"`
	CORSOrigin  string `env:"CORS_ORIGIN" envDefault:"http://localhost:5173"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	BcryptCost  int    `env:"BCRYPT_COST" envDefault:"10"`
}

var C Config

// Init loads the environment configuration and sets up the global logger.
// It panics on missing required variables so the process fails at startup,
// not on the first request.
func Init() {
	if err := env.Parse(&C); err != nil {
		panic("config: " + err.Error())
	}

	level, err := logrus.ParseLevel(C.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if C.IsProduction() {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
}

func (c Config) IsProduction() bool {
	return c.Env == "production"
}
