package game

import "testing"

func TestResolveRange(t *testing.T) {
	t.Run("preset difficulties", func(t *testing.T) {
		cases := []struct {
			difficulty Difficulty
			want       Range
		}{
			{DifficultyEasy, Range{1, 50}},
			{DifficultyMedium, Range{1, 100}},
			{DifficultyHard, Range{1, 500}},
		}
		for _, c := range cases {
			got, err := ResolveRange(c.difficulty, nil)
			if err != nil {
				t.Fatalf("ResolveRange(%s): %v", c.difficulty, err)
			}
			if got != c.want {
				t.Errorf("ResolveRange(%s) = %+v, want %+v", c.difficulty, got, c.want)
			}
		}
	})

	t.Run("unknown difficulty", func(t *testing.T) {
		_, err := ResolveRange("impossible", nil)
		if !IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("custom without range", func(t *testing.T) {
		_, err := ResolveRange(DifficultyCustom, nil)
		if !IsValidation(err) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("custom with valid range", func(t *testing.T) {
		got, err := ResolveRange(DifficultyCustom, &Range{Min: 10, Max: 20})
		if err != nil {
			t.Fatalf("ResolveRange custom: %v", err)
		}
		if got != (Range{10, 20}) {
			t.Errorf("got %+v", got)
		}
	})
}

func TestValidateCustomRange(t *testing.T) {
	cases := []struct {
		name  string
		r     Range
		valid bool
	}{
		{"min below one", Range{0, 10}, false},
		{"negative min", Range{-5, 10}, false},
		{"max equals min", Range{5, 5}, false},
		{"max below min", Range{10, 5}, false},
		{"max above cap", Range{1, CustomRangeCap + 1}, false},
		{"smallest valid", Range{1, 2}, true},
		{"max at cap", Range{1, CustomRangeCap}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := ValidateCustomRange(c.r)
			if c.valid && err != nil {
				t.Errorf("expected valid, got %v", err)
			}
			if !c.valid && !IsValidation(err) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestValidatePlayers(t *testing.T) {
	if err := ValidatePlayers("alice", "bob"); err != nil {
		t.Errorf("distinct names should validate: %v", err)
	}
	if err := ValidatePlayers("", "bob"); !IsValidation(err) {
		t.Errorf("empty first name should fail, got %v", err)
	}
	if err := ValidatePlayers("alice", ""); !IsValidation(err) {
		t.Errorf("empty second name should fail, got %v", err)
	}
	if err := ValidatePlayers("alice", "alice"); !IsValidation(err) {
		t.Errorf("identical names should fail, got %v", err)
	}
}

func testSession(target int) *Session {
	return &Session{
		ID:          "test",
		Mode:        ModeSingle,
		Range:       Range{Min: 1, Max: 100},
		Target:      target,
		TargetSet:   true,
		MaxAttempts: MaxAttemptsSingle,
		Single:      &SingleState{Difficulty: DifficultyMedium},
	}
}

func TestApplyGuess(t *testing.T) {
	t.Run("out of range does not consume an attempt", func(t *testing.T) {
		s := testSession(50)
		if _, err := s.ApplyGuess(101); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if _, err := s.ApplyGuess(0); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if s.Attempts != 0 {
			t.Errorf("attempts = %d, want 0", s.Attempts)
		}
	})

	t.Run("correct guess wins", func(t *testing.T) {
		s := testSession(50)
		res, err := s.ApplyGuess(50)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeWin {
			t.Errorf("outcome = %s, want win", res.Outcome)
		}
		if res.Attempts != 1 || res.Target != 50 {
			t.Errorf("got attempts=%d target=%d", res.Attempts, res.Target)
		}
	})

	t.Run("hints point at the target", func(t *testing.T) {
		s := testSession(50)
		res, err := s.ApplyGuess(80)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeContinue || res.Hint != HintLower {
			t.Errorf("guess above target: got %s/%s", res.Outcome, res.Hint)
		}
		res, err = s.ApplyGuess(20)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeContinue || res.Hint != HintHigher {
			t.Errorf("guess below target: got %s/%s", res.Outcome, res.Hint)
		}
		if res.Attempts != 2 || res.Remaining != MaxAttemptsSingle-2 {
			t.Errorf("attempts=%d remaining=%d", res.Attempts, res.Remaining)
		}
	})

	t.Run("budget exhaustion loses and reveals the target", func(t *testing.T) {
		s := testSession(50)
		for i := 1; i < MaxAttemptsSingle; i++ {
			res, err := s.ApplyGuess(1)
			if err != nil {
				t.Fatal(err)
			}
			if res.Outcome != OutcomeContinue {
				t.Fatalf("attempt %d: outcome = %s, want continue", i, res.Outcome)
			}
			if res.Remaining != MaxAttemptsSingle-i {
				t.Errorf("attempt %d: remaining = %d, want %d", i, res.Remaining, MaxAttemptsSingle-i)
			}
		}
		res, err := s.ApplyGuess(1)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeLose {
			t.Errorf("final outcome = %s, want lose", res.Outcome)
		}
		if res.Target != 50 {
			t.Errorf("target = %d, want 50", res.Target)
		}
	})

	t.Run("winning on the last attempt beats the budget", func(t *testing.T) {
		s := testSession(50)
		for i := 1; i < MaxAttemptsSingle; i++ {
			if _, err := s.ApplyGuess(1); err != nil {
				t.Fatal(err)
			}
		}
		res, err := s.ApplyGuess(50)
		if err != nil {
			t.Fatal(err)
		}
		if res.Outcome != OutcomeWin {
			t.Errorf("outcome = %s, want win", res.Outcome)
		}
		if res.Attempts != MaxAttemptsSingle {
			t.Errorf("attempts = %d, want %d", res.Attempts, MaxAttemptsSingle)
		}
	})
}
