package main

import (
	"fmt"

	"github.com/hazadus/go-shuffler/internal/config"
	"github.com/hazadus/go-shuffler/internal/session"
)

// sessionStore создает хранилище сессии по настройке state_backend
func (app *Application) sessionStore() (session.Store, error) {
	if app.Store != nil {
		return app.Store, nil
	}

	switch app.Config.StateBackend {
	case config.BackendS3:
		store, err := session.NewS3Store(&session.S3Config{
			Region:     app.Config.AwsRegion,
			AccessKey:  app.Config.AwsAccessKey,
			SecretKey:  app.Config.AwsSecretKey,
			Endpoint:   app.Config.AwsEndpoint,
			BucketName: app.Config.AwsBucketName,
			Prefix:     app.Config.AwsPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("ошибка создания хранилища S3: %w", err)
		}
		return store, nil

	case config.BackendFile, "":
		return session.NewFileStore(app.Config.StateDir), nil

	default:
		return nil, fmt.Errorf("неизвестный state_backend: %q", app.Config.StateBackend)
	}
}

// sessionManager создает менеджер сессии
func (app *Application) sessionManager() (*session.Manager, error) {
	store, err := app.sessionStore()
	if err != nil {
		return nil, err
	}
	return session.NewManager(store, app.Config.SessionKey, app.Logger), nil
}
