package repository

import (
	"strings"
	"testing"
)

func TestJSONTextExprByDialectSQLite(t *testing.T) {
	got := jsonTextExprByDialect("sqlite", "customer", "email")
	want := "json_extract(customer, '$.email')"
	if got != want {
		t.Fatalf("sqlite json expr mismatch, want %s got %s", want, got)
	}
}

func TestJSONTextExprByDialectPostgres(t *testing.T) {
	got := jsonTextExprByDialect("postgres", "customer", "email")
	want := "(customer::jsonb ->> 'email')"
	if got != want {
		t.Fatalf("postgres json expr mismatch, want %s got %s", want, got)
	}
}

func TestBuildJSONLikeCondition(t *testing.T) {
	condition, argCount := buildJSONLikeConditionByDialect("sqlite",
		[]string{"tracking_id"},
		[]jsonColumnKey{
			{Column: "customer", Key: "name"},
			{Column: "shipping", Key: "to"},
		},
	)
	if argCount != 3 {
		t.Fatalf("arg count want 3 got %d", argCount)
	}
	if !strings.Contains(condition, "tracking_id LIKE ?") {
		t.Fatalf("condition should contain tracking_id LIKE, got %s", condition)
	}
	if !strings.Contains(condition, "json_extract(customer, '$.name') LIKE ?") {
		t.Fatalf("condition should contain customer name LIKE, got %s", condition)
	}
	if !strings.Contains(condition, "json_extract(shipping, '$.to') LIKE ?") {
		t.Fatalf("condition should contain shipping to LIKE, got %s", condition)
	}
}

func TestBuildJSONLikeConditionPostgresUsesILike(t *testing.T) {
	condition, argCount := buildJSONLikeConditionByDialect("postgres",
		[]string{"tracking_id"},
		[]jsonColumnKey{{Column: "customer", Key: "email"}},
	)
	if argCount != 2 {
		t.Fatalf("arg count want 2 got %d", argCount)
	}
	if !strings.Contains(condition, "tracking_id ILIKE ?") {
		t.Fatalf("condition should use ILIKE, got %s", condition)
	}
	if strings.Contains(condition, " LIKE ?") {
		t.Fatalf("postgres condition should not contain plain LIKE, got %s", condition)
	}
}

func TestRepeatLikeArgs(t *testing.T) {
	args := repeatLikeArgs("%test%", 3)
	if len(args) != 3 {
		t.Fatalf("args len want 3 got %d", len(args))
	}
	for idx, arg := range args {
		if arg != "%test%" {
			t.Fatalf("args[%d] want %%test%% got %v", idx, arg)
		}
	}
}
