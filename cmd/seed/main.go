package main

import (
	"flag"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/singerjob/singerjob/internal/config"
	"github.com/singerjob/singerjob/internal/domain/opportunity"
	"github.com/singerjob/singerjob/internal/domain/user"
	"github.com/singerjob/singerjob/internal/observability"
	"github.com/singerjob/singerjob/internal/security"
	"github.com/singerjob/singerjob/internal/store"
)

// seed fills the configured store with a demo catalog and two demo
// accounts so a fresh deployment has something to browse. Existing
// data is left alone unless -force is passed.
func main() {
	force := flag.Bool("force", false, "overwrite existing seed data")
	flag.Parse()

	cfg := config.Load()
	log := observability.NewLogger(cfg.Env)

	st, err := store.Open(store.Config{
		Backend: store.Backend(cfg.StoreBackend),
		Redis: store.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		PostgresURL: cfg.DBURL,
	})

	if err != nil {
		log.Error("store open failed", "backend", cfg.StoreBackend, "err", err)
		os.Exit(1)
	}

	ctx, cancel := config.WithTimeout(15 * time.Second)
	defer cancel()

	// check if a catalog already exists

	_, found, err := store.Load[[]opportunity.Opportunity](ctx, st, store.KeyCatalog)

	if err != nil {
		log.Error("catalog check failed", "err", err)
		os.Exit(1)
	}

	if found && !*force {
		log.Info("store already seeded, pass -force to overwrite")
		return
	}

	if err := store.Save(ctx, st, store.KeyCatalog, sampleOpportunities()); err != nil {
		log.Error("catalog seed failed", "err", err)
		os.Exit(1)
	}

	artists, businessmen, err := sampleUsers()

	if err != nil {
		log.Error("user seed build failed", "err", err)
		os.Exit(1)
	}

	if err := store.Save(ctx, st, store.UsersKey(user.TypeArtist), artists); err != nil {
		log.Error("artist seed failed", "err", err)
		os.Exit(1)
	}

	if err := store.Save(ctx, st, store.UsersKey(user.TypeBusinessman), businessmen); err != nil {
		log.Error("businessman seed failed", "err", err)
		os.Exit(1)
	}

	log.Info("seed complete",
		"opportunities", len(sampleOpportunities()),
		"artists", len(artists),
		"businessmen", len(businessmen),
	)
}

func sampleOpportunities() []opportunity.Opportunity {
	base := time.Date(2026, time.August, 1, 12, 0, 0, 0, time.UTC)

	return []opportunity.Opportunity{
		{
			ID:          uuid.NewString(),
			Title:       "Vocalista para casa de shows",
			Description: "Apresentações semanais de MPB e jazz, repertório próprio bem-vindo",
			ArtType:     "Música",
			Location:    "São Paulo",
			PaymentRange: opportunity.PaymentRange{
				Min: 800,
				Max: 1500,
			},
			Company: opportunity.Company{
				Name:     "Casa Azul",
				Location: "São Paulo",
			},
			DatePosted:   base.AddDate(0, 0, 20),
			Requirements: []string{"2 anos de experiência em palco", "repertório de 30+ músicas"},
		},
		{
			ID:          uuid.NewString(),
			Title:       "Bailarinos para musical",
			Description: "Temporada de três meses, ensaios remunerados",
			ArtType:     "Dança",
			Location:    "Rio de Janeiro",
			PaymentRange: opportunity.PaymentRange{
				Min: 1200,
				Max: 2000,
			},
			Company: opportunity.Company{
				Name:     "Teatro Maré",
				Location: "Rio de Janeiro",
			},
			DatePosted:   base.AddDate(0, 0, 15),
			Requirements: []string{"formação em dança contemporânea"},
		},
		{
			ID:          uuid.NewString(),
			Title:       "Guitarrista para gravação",
			Description: "Sessão de estúdio para álbum independente",
			ArtType:     "Música",
			Location:    "Belo Horizonte",
			PaymentRange: opportunity.PaymentRange{
				Min: 500,
				Max: 900,
			},
			Company: opportunity.Company{
				Name: "Estúdio Mirante",
			},
			DatePosted: base.AddDate(0, 0, 10),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Ator para curta-metragem",
			Description: "Papel principal em produção universitária premiada",
			ArtType:     "Teatro",
			Location:    "São Paulo",
			PaymentRange: opportunity.PaymentRange{
				Min: 300,
				Max: 600,
			},
			Company: opportunity.Company{
				Name:     "Coletivo Lente",
				Location: "São Paulo",
			},
			DatePosted: base.AddDate(0, 0, 5),
		},
		{
			ID:          uuid.NewString(),
			Title:       "Muralista para fachada comercial",
			Description: "Painel de 40m² em avenida movimentada, material incluso",
			ArtType:     "Artes Visuais",
			Location:    "Curitiba",
			PaymentRange: opportunity.PaymentRange{
				Min: 2000,
				Max: 3500,
			},
			Company: opportunity.Company{
				Name:     "Galeria Urbana",
				Location: "Curitiba",
			},
			DatePosted: base.AddDate(0, 0, 2),
		},
		{
			ID:          uuid.NewString(),
			Title:       "DJ para festival de verão",
			Description: "Dois sets de uma hora, equipamento fornecido",
			ArtType:     "Música",
			Location:    "Florianópolis",
			PaymentRange: opportunity.PaymentRange{
				Min: 1500,
				Max: 2500,
			},
			Company: opportunity.Company{
				Name:     "Verão Produções",
				Location: "Florianópolis",
			},
			DatePosted: base.AddDate(0, 0, 25),
		},
	}
}

func sampleUsers() (artists, businessmen []user.Stored, err error) {
	hash, err := security.HashPassword("senha123")

	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()

	artists = []user.Stored{
		user.ToStored(user.User{
			ID:           uuid.NewString(),
			Name:         "Ana Ribeiro",
			Email:        "ana@example.com",
			PasswordHash: hash,
			UserType:     user.TypeArtist,
			ArtType:      "Música",
			Location:     "São Paulo",
			Bio:          "Cantora e compositora de MPB",
			Skills:       []string{"canto", "violão"},
			Experience:   4,
			CreatedAt:    now,
			UpdatedAt:    now,
		}),
		user.ToStored(user.User{
			ID:           uuid.NewString(),
			Name:         "Pedro Lima",
			Email:        "pedro@example.com",
			PasswordHash: hash,
			UserType:     user.TypeArtist,
			ArtType:      "Dança",
			Location:     "Rio de Janeiro",
			Bio:          "Bailarino contemporâneo",
			Skills:       []string{"dança contemporânea", "balé"},
			Experience:   6,
			CreatedAt:    now,
			UpdatedAt:    now,
		}),
	}

	businessmen = []user.Stored{
		user.ToStored(user.User{
			ID:           uuid.NewString(),
			Name:         "Carla Souza",
			Email:        "carla@casaazul.example.com",
			PasswordHash: hash,
			UserType:     user.TypeBusinessman,
			Location:     "São Paulo",
			CreatedAt:    now,
			UpdatedAt:    now,
		}),
	}

	return artists, businessmen, nil
}
