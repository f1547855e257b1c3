package session

import (
	"testing"

	"github.com/PoluyanbIch/quizbot/internal/service"
	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestNewMessagesLocale(t *testing.T) {
	tests := []struct {
		locale string
		want   language.Tag
	}{
		{locale: "uz", want: language.Uzbek},
		{locale: "en", want: language.English},
		{locale: "en-GB", want: language.English},
		{locale: "", want: language.Uzbek},
		{locale: "fr", want: language.Uzbek},
	}

	for _, tt := range tests {
		t.Run(tt.locale, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMessages(tt.locale).Locale())
		})
	}
}

func TestUzbekButtons(t *testing.T) {
	m := NewMessages("uz")

	assert.Equal(t, "➕ Yangi test qo'shish", m.NewTestButton())
	assert.Equal(t, "🚀 Boshlash", m.StartButton())
	assert.Equal(t, "🏁 Test tugadi!\n\n📊 Natija: 1/2 (50%)\n\nQayta boshlash uchun /start", m.Finished(1, 2))
}

func TestLeaderboardText(t *testing.T) {
	m := NewMessages("en")

	text := m.Leaderboard([]service.LeaderboardEntry{
		{Username: "ali", FirstName: "Ali", Score: 4, Total: 4, Percentage: 100, Date: "19.10.2026 09:30"},
		{FirstName: "Vali", Score: 1, Total: 2, Percentage: 50, Date: "19.10.2026 10:00"},
	})

	assert.Contains(t, text, "🥇 1. @ali - 100% (4/4)")
	assert.Contains(t, text, "🥈 2. Vali - 50% (1/2)")
}

func TestLimitBoundsArePlainDigits(t *testing.T) {
	for _, locale := range []string{"en", "uz"} {
		t.Run(locale, func(t *testing.T) {
			m := NewMessages(locale)

			assert.Contains(t, m.LimitRange(1200), "1200")
			assert.Contains(t, m.SetSelected("Tarix", 1200), "1200")
			assert.Contains(t, m.SubmissionAccepted(1200), "1200")
		})
	}
}
