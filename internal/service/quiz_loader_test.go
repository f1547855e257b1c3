package service

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var discardLogger = slog.New(slog.DiscardHandler)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const sourceJSON = `{
	"Tarix": [
		{"question": "TARIX FANIDAN TEST MATERIALLARI", "options": {"A": "", "B": ""}},
		{"question": "Savol", "options": {"A": "A", "B": "B", "C": "C", "D": "D"}, "correct": "To` + "`g`" + `ri javob"},
		{"question": "Amir Temur qaysi yilda tug'ilgan?", "options": {"A": "1336", "B": "1370", "C": "1405", "D": "1220"}, "correct": "a"},
		{"question": "Bu savolda variantlar yetarli emas", "options": {"A": "yolg'iz"}},
		{"question": "Qisqa?", "options": {"A": "ha", "B": "yo'q"}}
	],
	"Matematika": [
		{"question": "Ikki karra ikki nechaga teng?", "options": {"B": "5", "A": "4"}, "correct": "A"}
	],
	"Fizika": "not a list"
}`

func TestParseQuestionSetsJSON(t *testing.T) {
	path := writeFile(t, "quiz.json", sourceJSON)

	sets, err := ParseQuestionSets(path, discardLogger)
	require.NoError(t, err)
	require.Len(t, sets, 3)

	assert.Equal(t, "Tarix", sets[0].Name)
	require.Len(t, sets[0].Questions, 1)
	assert.Equal(t, 1, sets[0].Questions[0].ID)
	assert.Equal(t, []string{"1336", "1370", "1405", "1220"}, sets[0].Questions[0].Options)
	assert.Equal(t, "A", sets[0].Questions[0].Correct)

	assert.Equal(t, "Matematika", sets[1].Name)
	assert.Equal(t, []string{"4", "5"}, sets[1].Questions[0].Options)

	assert.Equal(t, "Fizika", sets[2].Name)
	assert.Empty(t, sets[2].Questions)
}

func TestParseQuestionSetsYAML(t *testing.T) {
	path := writeFile(t, "quiz.yaml", `
Biologiya:
  - question: Odam tanasida nechta suyak bor?
    options:
      A: "206"
      B: "300"
      C: "150"
    correct: A
  - Savol: Fotosintez qayerda sodir bo'ladi?
    options: [Xloroplast, Mitoxondriya]
    To_gri_javob: a
Kimyo:
  - question: Savol
    options: {A: x, B: y}
`)

	sets, err := ParseQuestionSets(path, discardLogger)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "Biologiya", sets[0].Name)
	require.Len(t, sets[0].Questions, 2)
	assert.Equal(t, []string{"206", "300", "150"}, sets[0].Questions[0].Options)
	assert.Equal(t, "Fotosintez qayerda sodir bo'ladi?", sets[0].Questions[1].Question)
	assert.Equal(t, 2, sets[0].Questions[1].ID)

	assert.Equal(t, "Kimyo", sets[1].Name)
	assert.Empty(t, sets[1].Questions)
}

func TestParseQuestionSetsXLSX(t *testing.T) {
	f := excelize.NewFile()
	t.Cleanup(func() { _ = f.Close() })

	require.NoError(t, f.SetSheetName("Sheet1", "Geografiya"))
	rows := [][]any{
		{"GEOGRAFIYA FANIDAN TEST MATERIALLARI"},
		{"№", "Savol", "A", "B", "C", "D", "To`g`ri javob"},
		{1, "Eng uzun daryo qaysi?", "Nil", "Amazonka", "Volga", "Dunay", "A"},
		{2, "Eng baland cho'qqi qaysi?", "Everest", "Elbrus", "", "", "a"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Geografiya", cell, &row))
	}

	_, err := f.NewSheet("Bosh")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "quiz.xlsx")
	require.NoError(t, f.SaveAs(path))

	sets, err := ParseQuestionSets(path, discardLogger)
	require.NoError(t, err)
	require.Len(t, sets, 2)

	assert.Equal(t, "Geografiya", sets[0].Name)
	require.Len(t, sets[0].Questions, 2)
	assert.Equal(t, "Eng uzun daryo qaysi?", sets[0].Questions[0].Question)
	assert.Equal(t, []string{"Everest", "Elbrus"}, sets[0].Questions[1].Options)
	assert.Equal(t, 2, sets[0].Questions[1].ID)

	assert.Equal(t, "Bosh", sets[1].Name)
	assert.Empty(t, sets[1].Questions)
}

func TestParseQuestionSetsErrors(t *testing.T) {
	tests := []struct {
		name string
		path func(t *testing.T) string
	}{
		{name: "missing file", path: func(t *testing.T) string { return filepath.Join(t.TempDir(), "quiz.json") }},
		{name: "invalid json", path: func(t *testing.T) string { return writeFile(t, "quiz.json", "{") }},
		{name: "json array root", path: func(t *testing.T) string { return writeFile(t, "quiz.json", "[]") }},
		{name: "yaml list root", path: func(t *testing.T) string { return writeFile(t, "quiz.yml", "- a\n- b\n") }},
		{name: "unsupported extension", path: func(t *testing.T) string { return writeFile(t, "quiz.txt", "") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseQuestionSets(tt.path(t), discardLogger)
			assert.ErrorIs(t, err, ErrSourceLoad)
		})
	}
}

func TestLoadQuestionStoreDegradesToEmpty(t *testing.T) {
	store := LoadQuestionStore(filepath.Join(t.TempDir(), "missing.json"), discardLogger)

	assert.Empty(t, store.SetNames())
	assert.Empty(t, store.Questions("Tarix"))
	assert.Zero(t, store.TotalQuestions())
}

func TestLoadQuestionStore(t *testing.T) {
	store := LoadQuestionStore(writeFile(t, "quiz.json", sourceJSON), discardLogger)

	assert.Equal(t, []string{"Tarix", "Matematika", "Fizika"}, store.SetNames())
	assert.True(t, store.HasSet("Fizika"))
	assert.False(t, store.HasSet("Kimyo"))
	assert.Equal(t, 2, store.TotalQuestions())
}
