package bank

import (
	"errors"
	"slices"
	"strings"
	"testing"

	"quizgen/internal/question"
	"quizgen/internal/testutil"
)

func sampleQuestions() []question.Question {
	return testutil.Questions()
}

func ids(questions []question.Question) []string {
	out := make([]string, 0, len(questions))
	for _, q := range questions {
		out = append(out, q.ID)
	}
	return out
}

func TestAddAllIsIdempotent(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := NewStore(NewMemoryBlob(), nil)

	added, err := store.AddAll(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("add all: %v", err)
	}
	if added != 3 {
		t.Fatalf("expected 3 added, got %d", added)
	}
	once := store.Load(ctx)

	added, err = store.AddAll(ctx, sampleQuestions())
	if err != nil {
		t.Fatalf("add all again: %v", err)
	}
	if added != 0 {
		t.Fatalf("expected nothing added the second time, got %d", added)
	}
	twice := store.Load(ctx)
	if !slices.Equal(ids(once), ids(twice)) {
		t.Fatalf("expected same contents, got %v then %v", ids(once), ids(twice))
	}
}

func TestAddAllFirstWriteWins(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := NewStore(NewMemoryBlob(), nil)
	if _, err := store.AddAll(ctx, sampleQuestions()[:1]); err != nil {
		t.Fatalf("add all: %v", err)
	}
	changed := sampleQuestions()[0]
	changed.QuestionText = "Changed"
	if _, err := store.AddAll(ctx, []question.Question{changed}); err != nil {
		t.Fatalf("add all: %v", err)
	}
	stored := store.Load(ctx)
	if stored[0].QuestionText != "What is the capital of France?" {
		t.Fatalf("expected first write to win, got %q", stored[0].QuestionText)
	}
}

func TestRemoveTwiceIsNoop(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := NewStore(NewMemoryBlob(), nil)
	if _, err := store.AddAll(ctx, sampleQuestions()); err != nil {
		t.Fatalf("add all: %v", err)
	}
	removed, err := store.Remove(ctx, "q2")
	if err != nil || !removed {
		t.Fatalf("expected first remove to succeed, got removed=%v err=%v", removed, err)
	}
	removed, err = store.Remove(ctx, "q2")
	if err != nil {
		t.Fatalf("expected second remove to be a no-op, got %v", err)
	}
	if removed {
		t.Fatalf("expected second remove to report nothing removed")
	}
	if got := ids(store.Load(ctx)); !slices.Equal(got, []string{"q1", "q3"}) {
		t.Fatalf("unexpected ids %v", got)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := NewStore(NewMemoryBlob(), nil)
	if _, err := store.AddAll(ctx, sampleQuestions()); err != nil {
		t.Fatalf("add all: %v", err)
	}
	first := store.Load(ctx)
	if err := store.Save(ctx, first); err != nil {
		t.Fatalf("save: %v", err)
	}
	second := store.Load(ctx)
	if len(first) != len(second) {
		t.Fatalf("expected %d questions, got %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID || !first[i].CorrectAnswer.Equal(second[i].CorrectAnswer) {
			t.Fatalf("question %d changed across round trip: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestLoadDegradesCorruptBlobToEmpty(t *testing.T) {
	ctx := testutil.Context(t, 0)
	for name, blob := range map[string]string{
		"not json":     "{{{",
		"wrong shape":  `{"questions": 3}`,
		"invalid item": `[{"id":"x","questionText":"?","questionType":"essay","correctAnswer":"a"}]`,
	} {
		t.Run(name, func(t *testing.T) {
			memory := NewMemoryBlob()
			memory.Set([]byte(blob))
			store := NewStore(memory, nil)
			if got := store.Load(ctx); len(got) != 0 {
				t.Fatalf("expected empty bank, got %d questions", len(got))
			}
		})
	}
}

// staleRecord is a choice question whose answer is not among its options,
// as older bank files may contain.
const staleRecord = `{"id":"q2","questionText":"WWI began in?","questionType":"multiple_choice","options":["1912","1914"],"correctAnswer":"1913"}`

func TestLoadSkipsInvalidRecordsAndKeepsValidOnes(t *testing.T) {
	ctx := testutil.Context(t, 0)
	memory := NewMemoryBlob()
	memory.Set([]byte(`[{"id":"q1","questionText":"Capital of France?","questionType":"multiple_choice","options":["Berlin","Paris"],"correctAnswer":"Paris"},` + staleRecord + `]`))
	store := NewStore(memory, nil)

	if got := ids(store.Load(ctx)); !slices.Equal(got, []string{"q1"}) {
		t.Fatalf("expected valid record q1 only, got %v", got)
	}

	q3 := testutil.TrueFalse("q3", "Water is wet.", true)
	if _, err := store.AddAll(ctx, []question.Question{q3}); err != nil {
		t.Fatalf("add all: %v", err)
	}
	if got := ids(store.Load(ctx)); !slices.Equal(got, []string{"q1", "q3"}) {
		t.Fatalf("expected q1 and q3 after add, got %v", got)
	}
	data, _, _ := memory.Load(ctx)
	if !strings.Contains(string(data), `"correctAnswer":"1913"`) {
		t.Fatalf("expected invalid record written back, got %s", data)
	}

	clash := testutil.TrueFalse("q2", "Replacement", false)
	if added, err := store.AddAll(ctx, []question.Question{clash}); err != nil || added != 0 {
		t.Fatalf("expected stored invalid id to win, got added=%d err=%v", added, err)
	}

	removed, err := store.Remove(ctx, "q2")
	if err != nil || !removed {
		t.Fatalf("expected invalid record removable by id, got removed=%v err=%v", removed, err)
	}
	data, _, _ = memory.Load(ctx)
	if strings.Contains(string(data), `"q2"`) {
		t.Fatalf("expected q2 gone, got %s", data)
	}
}

func TestDecodeReportsInvalidRecords(t *testing.T) {
	data := []byte(`[` + staleRecord + `,{"questionType":"essay"},{"id":"q1","questionText":"?","questionType":"true_false","correctAnswer":true},{"id":"q1","questionText":"again","questionType":"true_false","correctAnswer":false}]`)
	questions, invalid, err := Decode(data)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := ids(questions); !slices.Equal(got, []string{"q1"}) {
		t.Fatalf("unexpected questions %v", got)
	}
	var got []string
	for _, record := range invalid {
		if record.Err == nil {
			t.Fatalf("expected an error for %s", record.ID)
		}
		got = append(got, record.ID)
	}
	if !slices.Equal(got, []string{"q2", "#1", "q1"}) {
		t.Fatalf("unexpected invalid records %v", got)
	}
	if _, _, err := Decode([]byte(`{"questions": []}`)); err == nil {
		t.Fatalf("expected error for a blob that is not a list")
	}
}

func TestAddAllReportsSaveFailure(t *testing.T) {
	ctx := testutil.Context(t, 0)
	memory := NewMemoryBlob()
	memory.SaveErr = errors.New("disk full")
	store := NewStore(memory, nil)
	if _, err := store.AddAll(ctx, sampleQuestions()); err == nil {
		t.Fatalf("expected save failure")
	}
	memory.SaveErr = nil
	added, err := store.AddAll(ctx, sampleQuestions())
	if err != nil || added != 3 {
		t.Fatalf("expected retry to merge everything, got added=%d err=%v", added, err)
	}
}

func TestUpdateReplacesByID(t *testing.T) {
	ctx := testutil.Context(t, 0)
	store := NewStore(NewMemoryBlob(), nil)
	if _, err := store.AddAll(ctx, sampleQuestions()); err != nil {
		t.Fatalf("add all: %v", err)
	}
	edited, err := question.EditOption(sampleQuestions()[0], 1, "Paris, France")
	if err != nil {
		t.Fatalf("edit option: %v", err)
	}
	updated, err := store.Update(ctx, edited)
	if err != nil || !updated {
		t.Fatalf("expected update, got updated=%v err=%v", updated, err)
	}
	stored := store.Load(ctx)
	if text, _ := stored[0].CorrectAnswer.Text(); text != "Paris, France" {
		t.Fatalf("expected edited answer, got %q", text)
	}

	missing := edited
	missing.ID = "nope"
	updated, err = store.Update(ctx, missing)
	if err != nil || updated {
		t.Fatalf("expected no-op for unknown id, got updated=%v err=%v", updated, err)
	}
}

func TestSelectByIDsKeepsBankOrder(t *testing.T) {
	selected, err := SelectByIDs(sampleQuestions(), []string{"q3", "q1"})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if got := ids(selected); !slices.Equal(got, []string{"q1", "q3"}) {
		t.Fatalf("unexpected order %v", got)
	}

	var configErr *question.ConfigurationError
	if _, err := SelectByIDs(sampleQuestions(), nil); !errors.As(err, &configErr) {
		t.Fatalf("expected configuration error for empty selection, got %v", err)
	}
	var rangeErr *question.RangeError
	if _, err := SelectByIDs(sampleQuestions(), []string{"q1", "q9"}); !errors.As(err, &rangeErr) {
		t.Fatalf("expected range error for unknown id, got %v", err)
	}
	if _, err := SelectAll(nil); !errors.As(err, &configErr) {
		t.Fatalf("expected configuration error for empty bank, got %v", err)
	}
}
