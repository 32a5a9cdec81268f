// Seeds demo users and companies for local development.
package main

import (
	"context"

	"github.com/rs/zerolog/log"

	"buslink/internal/config"
	"buslink/internal/db"
	"buslink/internal/logger"
	"buslink/internal/model"
	"buslink/internal/repository"
	"buslink/internal/service"
)

type fixture struct {
	user    model.User
	company *service.ProfileUpdate
}

func str(s string) *string { return &s }

var fixtures = []fixture{
	{
		user: model.User{
			ID:        "demo-transport-express",
			Email:     "contact@transport-express.ci",
			FirstName: "Awa",
			LastName:  "Kone",
		},
		company: &service.ProfileUpdate{
			Name:        str("Transport Express CI"),
			Phone:       str("+225 07 07 07 07"),
			Address:     str("Boulevard VGE, Marcory"),
			City:        str("Abidjan"),
			Description: str("Lignes interurbaines Abidjan - Yamoussoukro - Bouake."),
		},
	},
	{
		user: model.User{
			ID:        "demo-sans-compagnie",
			Email:     "nouveau@busl.ink",
			FirstName: "Moussa",
			LastName:  "Traore",
		},
		// No company: exercises the "no company yet" read path.
		company: nil,
	},
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger.Setup(cfg.LogLevel, true)

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatal().Err(err).Msg("database init")
	}
	if err := gormDB.AutoMigrate(&model.User{}, &model.Company{}); err != nil {
		log.Fatal().Err(err).Msg("auto-migrate")
	}

	userRepo := repository.NewUserRepository(gormDB)
	companyService := service.NewCompanyService(repository.NewCompanyRepository(gormDB), nil)

	seeded := 0
	for _, f := range fixtures {
		user, err := userRepo.Upsert(ctx, &f.user)
		if err != nil {
			log.Fatal().Err(err).Str("user_id", f.user.ID).Msg("seed user")
		}
		if f.company != nil {
			if _, err := companyService.SaveProfile(ctx, user.ID, *f.company); err != nil {
				log.Fatal().Err(err).Str("user_id", user.ID).Msg("seed company")
			}
		}
		seeded++
	}

	log.Info().Int("users", seeded).Msg("seed complete")
}
