package app

import (
	"context"
	"log"
	"net/http"

	"github.com/afrinode-dev/Africlick/internal/config"
)

type App struct {
	ServiceProvider *ServiceProvider
}

func NewApp() *App {
	return &App{}
}

func (s *App) initServiceProvider() {
	s.ServiceProvider = newServiceProvider()
}

func (s *App) Run() error {
	err := config.Load(".env")
	if err != nil {
		log.Printf("Error loading .env file: %v", err)
	}
	s.initServiceProvider()

	logger := s.ServiceProvider.Logger()

	ctx := context.Background()
	r := s.ServiceProvider.Router(ctx)

	logger.Info().Str("addr", s.ServiceProvider.HTTPCfg().Address()).Msg("starting server")
	return http.ListenAndServe(s.ServiceProvider.HTTPCfg().Address(), r)
}
