package wizard

import (
	"context"
	"errors"
	"testing"
)

func TestQuestionsOnlyMissing(t *testing.T) {
	tests := []struct {
		name  string
		known Result
		want  []string
	}{
		{"nothing known", Result{}, []string{QuestionUsername, QuestionPackageName}},
		{"username known", Result{Username: "alice"}, []string{QuestionPackageName}},
		{"package known", Result{PackageName: "lib"}, []string{QuestionUsername}},
		{"all known", Result{Username: "alice", PackageName: "lib"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qs := Questions(tt.known, "rbxts-lib")
			if len(qs) != len(tt.want) {
				t.Fatalf("got %d questions, want %d", len(qs), len(tt.want))
			}
			for i, q := range qs {
				if q.ID != tt.want[i] {
					t.Errorf("question %d = %q, want %q", i, q.ID, tt.want[i])
				}
				if !q.Required {
					t.Errorf("question %q should be required", q.ID)
				}
			}
		})
	}
}

func TestQuestionsPackageDefault(t *testing.T) {
	qs := Questions(Result{Username: "alice"}, "rbxts-lib")
	if qs[0].Default != "rbxts-lib" {
		t.Errorf("Default = %q, want rbxts-lib", qs[0].Default)
	}
}

func TestAnswer(t *testing.T) {
	pkg := Questions(Result{Username: "x"}, "rbxts-lib")[0]
	user := Questions(Result{PackageName: "x"}, "")[0]

	tests := []struct {
		name    string
		q       Question
		raw     string
		want    string
		wantErr bool
	}{
		{"plain", user, "alice", "alice", false},
		{"trimmed", user, "  alice \n", "alice", false},
		{"empty required", user, "   ", "", true},
		{"default used", pkg, "", "rbxts-lib", false},
		{"override default", pkg, "mylib", "mylib", false},
		{"at sign", pkg, "@rbxts/lib", "", true},
		{"slash", pkg, "rbxts/lib", "", true},
		{"nfc", user, "jose\u0301", "jos\u00e9", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Answer(&tt.q, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Answer(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Answer(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestAnswerRequiredError(t *testing.T) {
	q := Question{ID: QuestionUsername, Required: true}
	if _, err := Answer(&q, ""); !errors.Is(err, ErrRequired) {
		t.Errorf("error = %v, want ErrRequired", err)
	}
}

func TestSaveAnswer(t *testing.T) {
	var r Result
	saveAnswer(QuestionUsername, "alice", &r)
	saveAnswer(QuestionPackageName, "lib", &r)
	saveAnswer("unknown", "ignored", &r)
	if r != (Result{Username: "alice", PackageName: "lib"}) {
		t.Errorf("result = %+v", r)
	}
}

func TestRunNoQuestions(t *testing.T) {
	if _, err := Run(context.Background(), nil, Result{}, Options{}); !errors.Is(err, ErrNoQuestions) {
		t.Errorf("error = %v, want ErrNoQuestions", err)
	}
}

func TestNewWizardTheme(t *testing.T) {
	if newWizardTheme() == nil {
		t.Fatal("newWizardTheme() returned nil")
	}
}
