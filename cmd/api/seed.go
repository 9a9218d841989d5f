package main

import (
	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/usecase"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

// seedUsers crea admin y vendedor1 si todavía no existen (búsqueda por username).
func seedUsers(log *logger.Logger, uc *usecase.UserUseCase, cfg config.SeedConfig) {
	seeds := []dto.CreateUserRequest{
		{
			Username: "admin",
			Email:    "admin@monteirocorretora.com",
			Password: cfg.AdminPassword,
			Name:     "Administrador",
			Role:     string(entity.RoleAdmin),
		},
		{
			Username: "vendedor1",
			Email:    "vendedor@monteirocorretora.com",
			Password: cfg.SalesPassword,
			Name:     "João Vendedor",
			Role:     string(entity.RoleSales),
		},
	}
	for _, s := range seeds {
		created, err := uc.SeedUser(s)
		if err != nil {
			log.Fatal().Err(err).Str("username", s.Username).Msg("crear usuario semilla")
		}
		if created {
			log.Info().Str("username", s.Username).Str("role", s.Role).Msg("usuario semilla creado")
		}
	}
}
