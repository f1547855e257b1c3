package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/xuri/excelize/v2"
	"gopkg.in/yaml.v3"
)

var ErrSourceLoad = errors.New("failed to load question source")

// QuestionSet is a named, ordered list of questions.
type QuestionSet struct {
	Name      string
	Questions []QuizQuestion
}

type rawSet struct {
	name    string
	records []rawQuestion
}

// ParseQuestionSets reads a question source file. The file extension selects
// the format: .json, .yaml/.yml or .xlsx.
func ParseQuestionSets(filename string, logger *slog.Logger) ([]QuestionSet, error) {
	var (
		raw []rawSet
		err error
	)

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json":
		raw, err = readJSONSource(filename)
	case ".yaml", ".yml":
		raw, err = readYAMLSource(filename)
	case ".xlsx":
		raw, err = readXLSXSource(filename)
	default:
		err = fmt.Errorf("unsupported file type %q", filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrSourceLoad, filename, err)
	}

	sets := make([]QuestionSet, 0, len(raw))
	for _, rs := range raw {
		questions := filterQuestions(rs.records, true, logger.With("set", rs.name))
		logger.Info("loaded question set", "set", rs.name, "questions", len(questions), "records", len(rs.records))
		sets = append(sets, QuestionSet{Name: rs.name, Questions: questions})
	}
	return sets, nil
}

// LoadQuestionStore loads the question source, falling back to an empty store
// when the file is missing or invalid.
func LoadQuestionStore(filename string, logger *slog.Logger) *QuestionStore {
	sets, err := ParseQuestionSets(filename, logger)
	if err != nil {
		logger.Warn("question source unavailable, no sets loaded", "error", err)
		return NewQuestionStore(nil)
	}

	store := NewQuestionStore(sets)
	logger.Info("question store ready", "sets", len(store.SetNames()), "questions", store.TotalQuestions())
	return store
}

func readJSONSource(filename string) ([]rawSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}

	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, errors.New("expected an object of set name to questions")
	}

	var sets []rawSet
	doc.ForEach(func(name, list gjson.Result) bool {
		rs := rawSet{name: name.String()}
		list.ForEach(func(_, item gjson.Result) bool {
			if item.IsObject() {
				rs.records = append(rs.records, recordFromJSON(item))
			}
			return true
		})
		sets = append(sets, rs)
		return true
	})
	return sets, nil
}

func readYAMLSource(filename string) ([]rawSet, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 || doc.Content[0].Kind != yaml.MappingNode {
		return nil, errors.New("expected a mapping of set name to questions")
	}

	root := doc.Content[0]
	var sets []rawSet
	for i := 0; i+1 < len(root.Content); i += 2 {
		rs := rawSet{name: root.Content[i].Value}
		list := root.Content[i+1]
		if list.Kind == yaml.SequenceNode {
			for _, item := range list.Content {
				if item.Kind == yaml.MappingNode {
					rs.records = append(rs.records, recordFromYAML(item))
				}
			}
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

func recordFromYAML(item *yaml.Node) rawQuestion {
	fields := make(map[string]*yaml.Node, len(item.Content)/2)
	for i := 0; i+1 < len(item.Content); i += 2 {
		fields[item.Content[i].Value] = item.Content[i+1]
	}

	scalar := func(keys ...string) string {
		for _, k := range keys {
			if n, ok := fields[k]; ok && n.Kind == yaml.ScalarNode && n.Value != "" {
				return n.Value
			}
		}
		return ""
	}

	rec := rawQuestion{
		Question: scalar("question", "Savol"),
		Correct:  scalar("correct", "To_gri_javob"),
	}

	if opts, ok := fields["options"]; ok {
		switch opts.Kind {
		case yaml.SequenceNode:
			for _, n := range opts.Content {
				rec.Options = append(rec.Options, optionPair{Value: n.Value})
			}
		case yaml.MappingNode:
			for i := 0; i+1 < len(opts.Content); i += 2 {
				rec.Options = append(rec.Options, optionPair{Key: opts.Content[i].Value, Value: opts.Content[i+1].Value})
			}
		}
	}
	return rec
}

// readXLSXSource reads one set per sheet. Each row is laid out as
// №, question, A, B, C, D, correct.
func readXLSXSource(filename string) ([]rawSet, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var sets []rawSet
	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
		}

		rs := rawSet{name: sheet}
		for _, row := range rows {
			cell := func(i int) string {
				if i < len(row) {
					return row[i]
				}
				return ""
			}

			rec := rawQuestion{Question: cell(1), Correct: cell(6)}
			for i, l := range OptionLetters {
				rec.Options = append(rec.Options, optionPair{Key: l, Value: cell(2 + i)})
			}
			rs.records = append(rs.records, rec)
		}
		sets = append(sets, rs)
	}
	return sets, nil
}
