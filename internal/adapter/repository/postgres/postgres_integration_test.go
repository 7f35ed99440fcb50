//go:build integration

package postgres

import (
	"context"
	"sync"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/rrgdev/url-shortener/internal/config"
	"github.com/rrgdev/url-shortener/internal/entity"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	pkgpostgres "github.com/rrgdev/url-shortener/pkg/postgres"
)

const migrationsPath = "file://../../../../migrations"

type URLRepositoryIntegrationTestSuite struct {
	suite.Suite
	db   *sqlx.DB
	repo *URLRepository
}

func (suite *URLRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pgUser := "test"
	pgPassword := "test"
	pgDB := "url_shortener"

	pgCont, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image: "postgres:16-alpine",
			Env: map[string]string{
				"POSTGRES_USER":     pgUser,
				"POSTGRES_PASSWORD": pgPassword,
				"POSTGRES_DB":       pgDB,
			},
			ExposedPorts: []string{"5432/tcp"},
			WaitingFor:   wait.ForListeningPort("5432/tcp"),
		},
		Started: true,
	})
	if err != nil {
		suite.T().Fatalf("Failed to start postgres container: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := pgCont.Terminate(ctx); err != nil {
			suite.T().Fatalf("Failed to terminate postgres container: %v", err)
		}
	})

	pgHost, err := pgCont.Host(ctx)
	if err != nil {
		suite.T().Fatalf("Failed to get postgres container host: %v", err)
	}

	pgPort, err := pgCont.MappedPort(ctx, "5432")
	if err != nil {
		suite.T().Fatalf("Failed to get postgres container port: %v", err)
	}

	cfg := config.Postgres{
		User:     pgUser,
		Password: pgPassword,
		Host:     pgHost,
		Port:     pgPort.Int(),
		DB:       pgDB,
		SSLMode:  "disable",
	}

	suite.db, err = pkgpostgres.New(ctx, cfg.DSN())
	if err != nil {
		suite.T().Fatalf("Failed to connect to database: %v", err)
	}
	suite.T().Cleanup(func() {
		if err := suite.db.Close(); err != nil {
			suite.T().Fatalf("Failed to close database: %v", err)
		}
	})

	version, err := pkgpostgres.RunMigrations(migrationsPath, cfg.DSN())
	if err != nil {
		suite.T().Fatalf("Failed to run migrations: %v", err)
	}
	suite.Require().Equal(uint(1), version)

	suite.repo = NewURLRepository(suite.db)
}

func (suite *URLRepositoryIntegrationTestSuite) TearDownSubTest() {
	_, err := suite.db.ExecContext(context.Background(), `TRUNCATE TABLE urls RESTART IDENTITY CASCADE`)
	if err != nil {
		suite.T().Fatalf("Failed to clean urls table: %v", err)
	}
}

func (suite *URLRepositoryIntegrationTestSuite) TestSave() {
	suite.Run("short url id exists", func() {
		_, err := suite.repo.Save(context.Background(), "abc123", "https://example.com")
		suite.Require().NoError(err)

		rec, err := suite.repo.Save(context.Background(), "abc123", "https://other.com")

		suite.ErrorIs(err, entity.ErrShortURLIDExists)
		suite.Nil(rec)
	})

	suite.Run("success", func() {
		rec, err := suite.repo.Save(context.Background(), "abc123", "https://example.com")

		suite.NoError(err)
		suite.NotNil(rec)
		suite.Equal(int64(1), rec.ID)
		suite.Equal("abc123", rec.ShortURLID)
		suite.Equal("https://example.com", rec.FullURL)
		suite.Zero(rec.Visits)
		suite.False(rec.CreatedAt.IsZero())
	})
}

func (suite *URLRepositoryIntegrationTestSuite) TestRetrieveAllByFullURL() {
	suite.Run("success", func() {
		for _, id := range []string{"abc123", "def456"} {
			_, err := suite.repo.Save(context.Background(), id, "https://example.com")
			suite.Require().NoError(err)
		}

		recs, err := suite.repo.RetrieveAllByFullURL(context.Background(), "https://example.com")

		suite.NoError(err)
		suite.Len(recs, 2)
		suite.Equal("abc123", recs[0].ShortURLID)
		suite.Equal("def456", recs[1].ShortURLID)
	})
}

func (suite *URLRepositoryIntegrationTestSuite) TestIncrementVisits() {
	suite.Run("url not found", func() {
		rec, err := suite.repo.IncrementVisits(context.Background(), "abc123")

		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(rec)
	})

	suite.Run("concurrent increments", func() {
		_, err := suite.repo.Save(context.Background(), "abc123", "https://example.com")
		suite.Require().NoError(err)

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = suite.repo.IncrementVisits(context.Background(), "abc123")
			}()
		}
		wg.Wait()

		rec, err := suite.repo.RetrieveByShortURLID(context.Background(), "abc123")

		suite.NoError(err)
		suite.Equal(int64(20), rec.Visits)
	})
}

func TestURLRepositoryIntegration(t *testing.T) {
	suite.Run(t, new(URLRepositoryIntegrationTestSuite))
}
