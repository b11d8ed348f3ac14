package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	apperrors "weatherdash.app/errors"
	"weatherdash.app/models"
	"weatherdash.app/providers"
	"weatherdash.app/session"
)

// Mock chat provider for testing
type mockChat struct {
	mock.Mock
}

func (m *mockChat) Generate(prompt string) (string, error) {
	args := m.Called(prompt)
	return args.String(0), args.Error(1)
}

var _ providers.ChatProvider = (*mockChat)(nil)

type chatFixture struct {
	geocoder *mockGeocoder
	forecast *mockForecast
	chat     *mockChat
	store    *session.Store
	svc      *ChatService
	sess     *session.Session
}

func newChatFixture() *chatFixture {
	f := &chatFixture{
		geocoder: new(mockGeocoder),
		forecast: new(mockForecast),
		chat:     new(mockChat),
		store:    session.NewStore(),
	}
	f.svc = NewChatService(f.geocoder, f.forecast, f.chat, f.store)
	f.svc.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	f.sess = f.store.Create()
	return f
}

func forecastDaySeries() *models.TimeSeries {
	start := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	samples := make([]models.HourlySample, 3)
	temps := []float64{70, 85, 75}
	winds := []float64{4, 8, 6}
	precip := []float64{0.0, 0.2, 0.1}
	for i := range samples {
		samples[i] = models.HourlySample{
			Time:          start.Add(time.Duration(i) * time.Hour),
			Temperature:   temps[i],
			WindSpeed:     winds[i],
			Precipitation: precip[i],
		}
	}
	return &models.TimeSeries{Units: models.UnitsImperial, Samples: samples}
}

func askRequest(question string) *models.AskRequest {
	return &models.AskRequest{
		City:     "Atlanta",
		Date:     "2026-08-30",
		Units:    "imperial",
		Question: question,
	}
}

func TestChatService_Ask(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		f := newChatFixture()

		f.geocoder.On("Resolve", "Atlanta").Return(atlanta, nil)
		f.forecast.On("FetchHourly", atlanta, mock.Anything, mock.Anything, models.UnitsImperial,
			[]string{
				providers.HourlyFieldTemperature,
				providers.HourlyFieldWindSpeed,
				providers.HourlyFieldPrecipitation,
			}).Return(forecastDaySeries(), nil)
		f.chat.On("Generate", mock.AnythingOfType("string")).
			Return("Great day for hiking, no umbrella needed.", nil)

		resp, err := f.svc.Ask(f.sess.ID, askRequest("Is it a good day for hiking?"))

		require.NoError(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, 85.0, resp.Summary.HighTemp)
		assert.Equal(t, 70.0, resp.Summary.LowTemp)
		assert.Equal(t, 6.0, resp.Summary.AvgWind)
		assert.InDelta(t, 0.3, resp.Summary.TotalPrecip, 1e-9)
		assert.Equal(t, "Great day for hiking, no umbrella needed.", resp.Reply)

		require.Len(t, resp.Transcript, 2)
		assert.Equal(t, models.SpeakerUser, resp.Transcript[0].Speaker)
		assert.Equal(t, "Is it a good day for hiking?", resp.Transcript[0].Text)
		assert.Equal(t, models.SpeakerAssistant, resp.Transcript[1].Speaker)

		// The prompt embeds the summary and the verbatim question.
		prompt := f.chat.Calls[0].Arguments.String(0)
		assert.Contains(t, prompt, "Atlanta, Georgia, United States")
		assert.Contains(t, prompt, "High Temp: 85.0 °F")
		assert.Contains(t, prompt, "User question: Is it a good day for hiking?")

		f.geocoder.AssertExpectations(t)
		f.forecast.AssertExpectations(t)
		f.chat.AssertExpectations(t)
	})

	t.Run("EmptyQuestionRejected", func(t *testing.T) {
		f := newChatFixture()

		for _, question := range []string{"", "   "} {
			resp, err := f.svc.Ask(f.sess.ID, askRequest(question))

			assert.Error(t, err)
			assert.Nil(t, resp)

			var appErr *apperrors.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ValidationError, appErr.Type)
		}

		assert.Equal(t, 0, f.sess.Len())
		f.geocoder.AssertNotCalled(t, "Resolve", mock.Anything)
		f.chat.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("QuestionTrimmedBeforeRecording", func(t *testing.T) {
		f := newChatFixture()

		f.geocoder.On("Resolve", "Atlanta").Return(atlanta, nil)
		f.forecast.On("FetchHourly", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(forecastDaySeries(), nil)
		f.chat.On("Generate", mock.Anything).Return("Sure.", nil)

		_, err := f.svc.Ask(f.sess.ID, askRequest("  Will it rain?  "))

		require.NoError(t, err)
		turns := f.sess.Turns()
		require.Len(t, turns, 2)
		assert.Equal(t, "Will it rain?", turns[0].Text)
	})

	t.Run("LLMFailureKeepsUserTurn", func(t *testing.T) {
		f := newChatFixture()

		f.geocoder.On("Resolve", "Atlanta").Return(atlanta, nil)
		f.forecast.On("FetchHourly", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(forecastDaySeries(), nil)
		f.chat.On("Generate", mock.Anything).
			Return("", apperrors.NewExternalAPIError("chat API returned status code 503", nil))

		resp, err := f.svc.Ask(f.sess.ID, askRequest("Will it rain?"))

		assert.Error(t, err)
		assert.Nil(t, resp)

		turns := f.sess.Turns()
		require.Len(t, turns, 1)
		assert.Equal(t, models.SpeakerUser, turns[0].Speaker)
		assert.Equal(t, "Will it rain?", turns[0].Text)
	})

	t.Run("PastDateRejected", func(t *testing.T) {
		f := newChatFixture()

		req := askRequest("Will it rain?")
		req.Date = "2026-08-29"

		resp, err := f.svc.Ask(f.sess.ID, req)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Contains(t, err.Error(), "today or a future date")
		assert.Equal(t, 0, f.sess.Len())
		f.geocoder.AssertNotCalled(t, "Resolve", mock.Anything)
	})

	t.Run("InvalidDateRejected", func(t *testing.T) {
		f := newChatFixture()

		req := askRequest("Will it rain?")
		req.Date = "30/08/2026"

		resp, err := f.svc.Ask(f.sess.ID, req)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})

	t.Run("GeocodingNotFoundHaltsBeforeFetch", func(t *testing.T) {
		f := newChatFixture()

		f.geocoder.On("Resolve", "Zzyxqplace123").
			Return(nil, apperrors.NewNotFoundError("location not found"))

		req := askRequest("Will it rain?")
		req.City = "Zzyxqplace123"

		resp, err := f.svc.Ask(f.sess.ID, req)

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Equal(t, 0, f.sess.Len())
		f.forecast.AssertNotCalled(t, "FetchHourly",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("ForecastFailureLeavesTranscriptUnchanged", func(t *testing.T) {
		f := newChatFixture()

		f.geocoder.On("Resolve", "Atlanta").Return(atlanta, nil)
		f.forecast.On("FetchHourly", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, apperrors.NewExternalAPIError("forecast API returned status code 500", nil))

		resp, err := f.svc.Ask(f.sess.ID, askRequest("Will it rain?"))

		assert.Error(t, err)
		assert.Nil(t, resp)
		assert.Equal(t, 0, f.sess.Len())
		f.chat.AssertNotCalled(t, "Generate", mock.Anything)
	})

	t.Run("UnknownSession", func(t *testing.T) {
		f := newChatFixture()

		resp, err := f.svc.Ask("no-such-session", askRequest("Will it rain?"))

		assert.Error(t, err)
		assert.Nil(t, resp)

		var appErr *apperrors.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, apperrors.NotFoundError, appErr.Type)
	})
}

func TestChatService_Sessions(t *testing.T) {
	t.Run("NewSessionAndTranscript", func(t *testing.T) {
		f := newChatFixture()

		sess := f.svc.NewSession()
		assert.NotEmpty(t, sess.ID)

		turns, err := f.svc.Transcript(sess.ID)
		assert.NoError(t, err)
		assert.Empty(t, turns)
	})

	t.Run("EndSession", func(t *testing.T) {
		f := newChatFixture()

		sess := f.svc.NewSession()
		assert.NoError(t, f.svc.EndSession(sess.ID))

		_, err := f.svc.Transcript(sess.ID)
		assert.Error(t, err)
	})
}
