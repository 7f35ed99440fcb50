package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rrgdev/url-shortener/internal/entity"
	"github.com/rrgdev/url-shortener/mocks/usecase"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testAttemptLimit = 3

type URLUseCaseTestSuite struct {
	suite.Suite
	errUnknown  error
	logger      *slog.Logger
	idGenMock   *usecase.MockIdGenerator
	urlRepoMock *usecase.MockUrlRepository
	uc          *URLUseCase
}

func (suite *URLUseCaseTestSuite) SetupSuite() {
	suite.errUnknown = errors.New("unknown error")
	suite.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
}

func (suite *URLUseCaseTestSuite) SetupSubTest() {
	suite.idGenMock = usecase.NewMockIdGenerator(suite.T())
	suite.urlRepoMock = usecase.NewMockUrlRepository(suite.T())
	suite.uc = New(testAttemptLimit, suite.idGenMock, suite.urlRepoMock, suite.logger)
}

func (suite *URLUseCaseTestSuite) TearDownSubTest() {
	suite.idGenMock.AssertExpectations(suite.T())
	suite.urlRepoMock.AssertExpectations(suite.T())
}

func (suite *URLUseCaseTestSuite) TestNew() {
	suite.Run("non-positive attempt limit", func() {
		uc := New(0, suite.idGenMock, suite.urlRepoMock, suite.logger)

		suite.Equal(DefaultAttemptLimit, uc.attemptLimit)
	})
}

func (suite *URLUseCaseTestSuite) TestCreateShortURL() {
	suite.Run("missing field", func() {
		for _, in := range []string{"", " ", "\t\n"} {
			rec, err := suite.uc.CreateShortURL(context.Background(), in)

			suite.ErrorIs(err, entity.ErrMissingField)
			suite.Nil(rec)
		}
	})

	suite.Run("invalid format", func() {
		for _, in := range []string{"not a url", "ftp://", "example"} {
			rec, err := suite.uc.CreateShortURL(context.Background(), in)

			suite.ErrorIs(err, entity.ErrInvalidFormat)
			suite.Nil(rec)
		}
	})

	suite.Run("id generation error", func() {
		suite.idGenMock.On("Generate").Once().Return("", suite.errUnknown)

		rec, err := suite.uc.CreateShortURL(context.Background(), "https://example.com")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(rec)
	})

	suite.Run("lookup error", func() {
		suite.idGenMock.On("Generate").Once().Return("abc123", nil)
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(nil, suite.errUnknown)

		rec, err := suite.uc.CreateShortURL(context.Background(), "https://example.com")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(rec)
	})

	suite.Run("attempts exhausted on existing id", func() {
		suite.idGenMock.On("Generate").Times(testAttemptLimit).Return("abc123", nil)
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Times(testAttemptLimit).
			Return(&entity.URL{ShortURLID: "abc123", FullURL: "https://other.com"}, nil)

		rec, err := suite.uc.CreateShortURL(context.Background(), "https://example.com")

		suite.ErrorIs(err, entity.ErrIDGenerationExhausted)
		suite.Nil(rec)
		suite.urlRepoMock.AssertNotCalled(suite.T(), "Save", mock.Anything, mock.Anything, mock.Anything)
	})

	suite.Run("attempts exhausted on insert conflicts", func() {
		suite.idGenMock.On("Generate").Times(testAttemptLimit).Return("abc123", nil)
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Times(testAttemptLimit).
			Return(nil, entity.ErrURLNotFound)
		suite.urlRepoMock.
			On("Save", context.Background(), "abc123", "https://example.com").
			Times(testAttemptLimit).
			Return(nil, entity.ErrShortURLIDExists)

		rec, err := suite.uc.CreateShortURL(context.Background(), "https://example.com")

		suite.ErrorIs(err, entity.ErrIDGenerationExhausted)
		suite.Nil(rec)
	})

	suite.Run("save error", func() {
		suite.idGenMock.On("Generate").Once().Return("abc123", nil)
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)
		suite.urlRepoMock.
			On("Save", context.Background(), "abc123", "https://example.com").
			Once().
			Return(nil, suite.errUnknown)

		rec, err := suite.uc.CreateShortURL(context.Background(), "https://example.com")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(rec)
	})

	suite.Run("success after collision", func() {
		suite.idGenMock.On("Generate").Once().Return("taken1", nil)
		suite.idGenMock.On("Generate").Once().Return("abc123", nil)
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "taken1").
			Once().
			Return(&entity.URL{ShortURLID: "taken1"}, nil)
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(nil, entity.ErrURLNotFound)
		suite.urlRepoMock.
			On("Save", context.Background(), "abc123", "https://example.com/page").
			Once().
			Return(&entity.URL{
				ID:         1,
				ShortURLID: "abc123",
				FullURL:    "https://example.com/page",
			}, nil)

		rec, err := suite.uc.CreateShortURL(context.Background(), "HTTPS://Example.com:443/page")

		suite.NoError(err)
		suite.NotNil(rec)
		suite.Equal("abc123", rec.ShortURLID)
		suite.Equal("https://example.com/page", rec.FullURL)
		suite.Zero(rec.Visits)
	})
}

func (suite *URLUseCaseTestSuite) TestProcessRedirection() {
	suite.Run("missing field", func() {
		location, err := suite.uc.ProcessRedirection(context.Background(), "  ")

		suite.ErrorIs(err, entity.ErrMissingField)
		suite.Nil(location)
	})

	suite.Run("url not found", func() {
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "zzz999").
			Once().
			Return(nil, entity.ErrURLNotFound)

		location, err := suite.uc.ProcessRedirection(context.Background(), "zzz999")

		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(location)
	})

	suite.Run("persisted data invalid", func() {
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(&entity.URL{ShortURLID: "abc123", FullURL: "http://exa mple.com"}, nil)

		location, err := suite.uc.ProcessRedirection(context.Background(), "abc123")

		suite.ErrorIs(err, entity.ErrPersistedDataInvalid)
		suite.Nil(location)
		suite.urlRepoMock.AssertNotCalled(suite.T(), "IncrementVisits", mock.Anything, mock.Anything)
	})

	suite.Run("increment error", func() {
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(&entity.URL{ShortURLID: "abc123", FullURL: "https://example.com"}, nil)
		suite.urlRepoMock.
			On("IncrementVisits", context.Background(), "abc123").
			Once().
			Return(nil, suite.errUnknown)

		location, err := suite.uc.ProcessRedirection(context.Background(), "abc123")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(location)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(&entity.URL{ShortURLID: "abc123", FullURL: "https://example.com/page"}, nil)
		suite.urlRepoMock.
			On("IncrementVisits", context.Background(), "abc123").
			Once().
			Return(&entity.URL{ShortURLID: "abc123", FullURL: "https://example.com/page", Visits: 1}, nil)

		location, err := suite.uc.ProcessRedirection(context.Background(), "abc123")

		suite.NoError(err)
		suite.NotNil(location)
		suite.Equal("https://example.com/page", location.String())
	})
}

func (suite *URLUseCaseTestSuite) TestGetURLByShortURLID() {
	suite.Run("missing field", func() {
		rec, err := suite.uc.GetURLByShortURLID(context.Background(), "")

		suite.ErrorIs(err, entity.ErrMissingField)
		suite.Nil(rec)
	})

	suite.Run("url not found", func() {
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "zzz999").
			Once().
			Return(nil, entity.ErrURLNotFound)

		rec, err := suite.uc.GetURLByShortURLID(context.Background(), "zzz999")

		suite.ErrorIs(err, entity.ErrURLNotFound)
		suite.Nil(rec)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("RetrieveByShortURLID", context.Background(), "abc123").
			Once().
			Return(&entity.URL{ShortURLID: "abc123", FullURL: "https://example.com", Visits: 2}, nil)

		rec, err := suite.uc.GetURLByShortURLID(context.Background(), "abc123")

		suite.NoError(err)
		suite.NotNil(rec)
		suite.Equal("abc123", rec.ShortURLID)
		suite.Equal(int64(2), rec.Visits)
	})
}

func (suite *URLUseCaseTestSuite) TestGetURLsByFullURL() {
	suite.Run("missing field", func() {
		recs, err := suite.uc.GetURLsByFullURL(context.Background(), " ")

		suite.ErrorIs(err, entity.ErrMissingField)
		suite.Nil(recs)
	})

	suite.Run("invalid format", func() {
		recs, err := suite.uc.GetURLsByFullURL(context.Background(), "example")

		suite.ErrorIs(err, entity.ErrInvalidFormat)
		suite.Nil(recs)
	})

	suite.Run("unknown error", func() {
		suite.urlRepoMock.
			On("RetrieveAllByFullURL", context.Background(), "https://example.com").
			Once().
			Return(nil, suite.errUnknown)

		recs, err := suite.uc.GetURLsByFullURL(context.Background(), "https://example.com")

		suite.ErrorIs(err, suite.errUnknown)
		suite.Nil(recs)
	})

	suite.Run("no urls", func() {
		suite.urlRepoMock.
			On("RetrieveAllByFullURL", context.Background(), "https://example.com").
			Once().
			Return(nil, nil)

		recs, err := suite.uc.GetURLsByFullURL(context.Background(), "https://example.com")

		suite.NoError(err)
		suite.NotNil(recs)
		suite.Empty(recs)
	})

	suite.Run("success", func() {
		suite.urlRepoMock.
			On("RetrieveAllByFullURL", context.Background(), "https://example.com/page").
			Once().
			Return([]*entity.URL{
				{ShortURLID: "abc123", FullURL: "https://example.com/page"},
				{ShortURLID: "def456", FullURL: "https://example.com/page"},
			}, nil)

		recs, err := suite.uc.GetURLsByFullURL(context.Background(), "HTTPS://EXAMPLE.COM/page")

		suite.NoError(err)
		suite.Len(recs, 2)
	})
}

func (suite *URLUseCaseTestSuite) TestIncrementVisits() {
	suite.Run("copies stored counter", func() {
		updatedAt := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
		rec := &entity.URL{ShortURLID: "abc123", Visits: 4}

		suite.urlRepoMock.
			On("IncrementVisits", context.Background(), "abc123").
			Once().
			Return(&entity.URL{ShortURLID: "abc123", Visits: 5, UpdatedAt: updatedAt}, nil)

		err := suite.uc.incrementVisits(context.Background(), rec)

		suite.NoError(err)
		suite.Equal(int64(5), rec.Visits)
		suite.Equal(updatedAt, rec.UpdatedAt)
	})
}

func TestURLUseCase(t *testing.T) {
	suite.Run(t, new(URLUseCaseTestSuite))
}
