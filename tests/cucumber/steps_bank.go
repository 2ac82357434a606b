//go:build cucumber

package cucumber

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"quizgen/internal/bank"
	"quizgen/internal/testutil"
)

func (s *featureState) anEmptyQuestionBank() error {
	s.blob = bank.NewMemoryBlob()
	s.store = bank.NewStore(s.blob, nil)
	return nil
}

func (s *featureState) iAddTheSampleQuestions() error {
	_, err := s.store.AddAll(context.Background(), testutil.Questions())
	return err
}

func (s *featureState) theBankHolds(count int) error {
	if got := len(s.store.Load(context.Background())); got != count {
		return fmt.Errorf("expected %d questions in bank, got %d", count, got)
	}
	return nil
}

func (s *featureState) iRemove(id string) error {
	_, s.err = s.store.Remove(context.Background(), id)
	return nil
}

func (s *featureState) noErrorIsReported() error {
	if s.err != nil {
		return fmt.Errorf("expected no error, got %v", s.err)
	}
	return nil
}

func (s *featureState) iSaveTheLoadedBank() error {
	ctx := context.Background()
	return s.store.Save(ctx, s.store.Load(ctx))
}

func (s *featureState) theBankLists(ids string) error {
	var got []string
	for _, q := range s.store.Load(context.Background()) {
		got = append(got, q.ID)
	}
	if want := splitList(ids); !slices.Equal(got, want) {
		return fmt.Errorf("expected bank %v, got %v", want, got)
	}
	return nil
}

func (s *featureState) theStoredBankIsCorrupt() error {
	s.blob.Set([]byte(strings.Repeat("{", 3)))
	return nil
}
