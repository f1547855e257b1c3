package session

import (
	"strconv"
	"strings"

	"github.com/PoluyanbIch/quizbot/internal/service"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

type catalog struct {
	newTestButton string
	startButton   string

	welcome            string
	submissionFormat   string
	submissionAccepted string
	submissionRejected string
	setSelected        string
	setEmpty           string
	limitRange         string
	ready              string
	question           string
	correct            string
	wrong              string
	finished           string
	score              string
	noActiveTest       string
	startFirst         string
	newRecord          string
	leaderboardTitle   string
	leaderboardEmpty   string
	leaderboardRow     string
}

var supportedLocales = []language.Tag{language.Uzbek, language.English}

var catalogs = map[language.Tag]catalog{
	language.Uzbek: {
		newTestButton: "➕ Yangi test qo'shish",
		startButton:   "🚀 Boshlash",

		welcome: "👋 Assalomu alaykum! Test botiga xush kelibsiz.\n\n" +
			"📚 Quyidagi fanlardan birini tanlang yoki o'zingizni testingizni kiriting:",
		submissionFormat: "📝 Iltimos, test savollarini JSON formatida yuboring.\n\n" +
			"Format misoli:\n" +
			"```json\n" +
			"[\n" +
			"  {\n" +
			"    \"question\": \"O'zbekiston poytaxti qaysi?\",\n" +
			"    \"options\": [\"Toshkent\", \"Samarqand\", \"Buxoro\", \"Xiva\"],\n" +
			"    \"correct\": \"A\"\n" +
			"  }\n" +
			"]\n" +
			"```",
		submissionAccepted: "✅ %d ta savol qabul qilindi!\n\n🔢 Nechta savol yechmoqchisiz? (1 dan %s gacha son kiriting)",
		submissionRejected: "❌ Xatolik! JSON formati noto'g'ri yoki savollar topilmadi. Iltimos qaytadan urinib ko'ring.",
		setSelected:        "✅ %s fani tanlandi!\n📝 Jami savollar: %d\n\n🔢 Nechta savol yechmoqchisiz? (1 dan %s gacha son kiriting)",
		setEmpty:           "⚠️ %s fanida hozircha savollar yo'q. Boshqa fanni tanlang.",
		limitRange:         "❌ Iltimos, 1 va %s orasida son kiriting.",
		ready:              "🚀 Tayyor! %d ta tasodifiy savol tanlandi.\nBoshlaymizmi?",
		question:           "📝 Savol %d/%d\n\n%s\n\n",
		correct:            "✅ To'g'ri!",
		wrong:              "❌ Noto'g'ri! To'g'ri javob: %s",
		finished:           "🏁 Test tugadi!\n\n📊 Natija: %d/%d (%d%%)\n\nQayta boshlash uchun /start",
		score:              "📊 Joriy natija:\n✅ To'g'ri: %d\n❌ Noto'g'ri: %d\n📝 Jami: %d / %d",
		noActiveTest:       "⚠️ Hozirda faol test yo'q.",
		startFirst:         "⚠️ Avval testni boshlang. /start buyrug'i yordamida.",
		newRecord:          "🎉 Yangi rekord! Siz reytingda %d-o'rindasiz!",
		leaderboardTitle:   "🏆 Eng yaxshi natijalar\n\n",
		leaderboardEmpty:   "🏆 Hozircha natijalar yo'q. Birinchi bo'ling! 🎯",
		leaderboardRow:     "%s %d. %s - %d%% (%d/%d)\n   📅 %s\n",
	},
	language.English: {
		newTestButton: "➕ Add a new test",
		startButton:   "🚀 Start",

		welcome: "👋 Hello! Welcome to the quiz bot.\n\n" +
			"📚 Pick one of the subjects below or submit your own test:",
		submissionFormat: "📝 Please send the test questions as JSON.\n\n" +
			"Example:\n" +
			"```json\n" +
			"[\n" +
			"  {\n" +
			"    \"question\": \"What is the capital of France?\",\n" +
			"    \"options\": [\"Paris\", \"Rome\", \"Berlin\", \"Madrid\"],\n" +
			"    \"correct\": \"A\"\n" +
			"  }\n" +
			"]\n" +
			"```",
		submissionAccepted: "✅ %d questions accepted!\n\n🔢 How many do you want to answer? (enter a number from 1 to %s)",
		submissionRejected: "❌ Error! The JSON is malformed or has no usable questions. Please try again.",
		setSelected:        "✅ %s selected!\n📝 Questions available: %d\n\n🔢 How many do you want to answer? (enter a number from 1 to %s)",
		setEmpty:           "⚠️ %s has no questions yet. Pick another subject.",
		limitRange:         "❌ Please enter a number between 1 and %s.",
		ready:              "🚀 Ready! %d random questions selected.\nShall we begin?",
		question:           "📝 Question %d/%d\n\n%s\n\n",
		correct:            "✅ Correct!",
		wrong:              "❌ Wrong! Correct answer: %s",
		finished:           "🏁 Test finished!\n\n📊 Result: %d/%d (%d%%)\n\nSend /start to play again",
		score:              "📊 Current result:\n✅ Correct: %d\n❌ Wrong: %d\n📝 Answered: %d / %d",
		noActiveTest:       "⚠️ There is no active test.",
		startFirst:         "⚠️ Start a test first with the /start command.",
		newRecord:          "🎉 New record! You are #%d on the leaderboard!",
		leaderboardTitle:   "🏆 Top results\n\n",
		leaderboardEmpty:   "🏆 No results yet. Be the first! 🎯",
		leaderboardRow:     "%s %d. %s - %d%% (%d/%d)\n   📅 %s\n",
	},
}

// Messages renders the user facing texts for one locale.
type Messages struct {
	tag language.Tag
	c   catalog
	p   *message.Printer
}

// NewMessages picks the closest supported locale, falling back to Uzbek.
func NewMessages(locale string) *Messages {
	matcher := language.NewMatcher(supportedLocales)
	_, idx := language.MatchStrings(matcher, locale)
	tag := supportedLocales[idx]
	return &Messages{
		tag: tag,
		c:   catalogs[tag],
		p:   message.NewPrinter(tag),
	}
}

func (m *Messages) Locale() language.Tag { return m.tag }

func (m *Messages) NewTestButton() string { return m.c.newTestButton }
func (m *Messages) StartButton() string   { return m.c.startButton }

func (m *Messages) Welcome() string            { return m.c.welcome }
func (m *Messages) SubmissionFormat() string   { return m.c.submissionFormat }
func (m *Messages) SubmissionRejected() string { return m.c.submissionRejected }
func (m *Messages) Correct() string            { return m.c.correct }
func (m *Messages) NoActiveTest() string       { return m.c.noActiveTest }
func (m *Messages) StartFirst() string         { return m.c.startFirst }

// Range bounds are printed as plain digits, the way the limit must be typed back.

func (m *Messages) SubmissionAccepted(n int) string {
	return m.p.Sprintf(m.c.submissionAccepted, n, strconv.Itoa(n))
}

func (m *Messages) SetSelected(name string, n int) string {
	return m.p.Sprintf(m.c.setSelected, name, n, strconv.Itoa(n))
}

func (m *Messages) SetEmpty(name string) string {
	return m.p.Sprintf(m.c.setEmpty, name)
}

func (m *Messages) LimitRange(size int) string {
	return m.p.Sprintf(m.c.limitRange, strconv.Itoa(size))
}

func (m *Messages) Ready(n int) string {
	return m.p.Sprintf(m.c.ready, n)
}

func (m *Messages) Wrong(correct string) string {
	return m.p.Sprintf(m.c.wrong, correct)
}

func (m *Messages) Finished(score, total int) string {
	return m.p.Sprintf(m.c.finished, score, total, service.Percentage(score, total))
}

func (m *Messages) Score(correct, wrong, answered, total int) string {
	return m.p.Sprintf(m.c.score, correct, wrong, answered, total)
}

func (m *Messages) NewRecord(position int) string {
	return m.p.Sprintf(m.c.newRecord, position)
}

// Question renders the question header, text and lettered options.
func (m *Messages) Question(q service.QuizQuestion, number, total int) string {
	var b strings.Builder
	b.WriteString(m.p.Sprintf(m.c.question, number, total, q.Question))
	for i, l := range q.Letters() {
		b.WriteString(l + ") " + q.Options[i] + "\n")
	}
	return b.String()
}

func (m *Messages) Leaderboard(entries []service.LeaderboardEntry) string {
	if len(entries) == 0 {
		return m.c.leaderboardEmpty
	}

	var b strings.Builder
	b.WriteString(m.c.leaderboardTitle)
	for i, entry := range entries {
		name := entry.FirstName
		if entry.Username != "" {
			name = "@" + entry.Username
		}

		medal := "🔸"
		switch i {
		case 0:
			medal = "🥇"
		case 1:
			medal = "🥈"
		case 2:
			medal = "🥉"
		}

		b.WriteString(m.p.Sprintf(m.c.leaderboardRow, medal, i+1, name, entry.Percentage, entry.Score, entry.Total, entry.Date))
	}
	return b.String()
}
