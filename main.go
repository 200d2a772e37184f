package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/studyhive/studyhive/internal/config"
	"github.com/studyhive/studyhive/internal/container"
	"github.com/studyhive/studyhive/internal/router"
)

func main() {
	c := container.New()

	handler := router.New(router.RouterConfig{
		UserHandler:      c.UserContainer.Handler,
		DocumentHandler:  c.DocumentContainer.Handler,
		QuizHandler:      c.QuizContainer.Handler,
		FlashcardHandler: c.FlashcardContainer.Handler,
		UploadDir:        c.Store.BaseDir(),
	})

	srv := &http.Server{
		Addr:              ":" + config.C.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logrus.Infof("Listening on :%s", config.C.Port)
	if err := srv.ListenAndServe(); err != nil {
		logrus.WithError(err).Fatal("Server stopped")
	}
}
