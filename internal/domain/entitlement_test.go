package domain

import (
	"errors"
	"testing"
)

func mustPlan(t *testing.T, id PlanID) Plan {
	t.Helper()
	p, err := PlanByID(id)
	if err != nil {
		t.Fatalf("PlanByID(%q) error: %v", id, err)
	}
	return p
}

func TestPlanByIDUnknown(t *testing.T) {
	if _, err := PlanByID("enterprise"); !errors.Is(err, ErrUnknownPlan) {
		t.Fatalf("PlanByID(enterprise) = %v, want ErrUnknownPlan", err)
	}
}

func TestPlanLimitsArePointwiseOrdered(t *testing.T) {
	plans := Plans()
	for i := 1; i < len(plans); i++ {
		lo, hi := plans[i-1].Limits, plans[i].Limits
		if !limitGE(hi.MaxDocuments, lo.MaxDocuments) {
			t.Errorf("%s MaxDocuments %d < %s %d", plans[i].ID, hi.MaxDocuments, plans[i-1].ID, lo.MaxDocuments)
		}
		if !limitGE(hi.MaxStorageBytes, lo.MaxStorageBytes) {
			t.Errorf("%s MaxStorageBytes %d < %s %d", plans[i].ID, hi.MaxStorageBytes, plans[i-1].ID, lo.MaxStorageBytes)
		}
		if !limitGE(hi.MaxAIRecommendations, lo.MaxAIRecommendations) {
			t.Errorf("%s MaxAIRecommendations %d < %s %d", plans[i].ID, hi.MaxAIRecommendations, plans[i-1].ID, lo.MaxAIRecommendations)
		}
		if lo.CanDeleteDocuments && !hi.CanDeleteDocuments {
			t.Errorf("%s loses deletion permission held by %s", plans[i].ID, plans[i-1].ID)
		}
	}
}

func limitGE(a, b Limit) bool {
	if !a.Bounded() {
		return true
	}
	if !b.Bounded() {
		return false
	}
	return a >= b
}

func TestCanUpload(t *testing.T) {
	tests := []struct {
		name     string
		plan     PlanID
		docs     int
		used     int64
		incoming int64
		want     error
	}{
		{"free under limit", PlanFree, 2, 0, 1024, nil},
		{"free at document limit", PlanFree, 3, 0, 1024, ErrDocumentLimitExceeded},
		{"free over storage", PlanFree, 0, gib - 10, 20, ErrStorageLimitExceeded},
		{"basic under limit", PlanBasic, 14, 0, 1024, nil},
		{"basic at document limit", PlanBasic, 15, 0, 1024, ErrDocumentLimitExceeded},
		{"pro over storage", PlanPro, 10, 25 * gib, 1, ErrStorageLimitExceeded},
		// Both bounds violated: the count violation wins.
		{"free both violated", PlanFree, 3, 2 * gib, gib, ErrDocumentLimitExceeded},
		{"ultraPro huge usage", PlanUltraPro, 1_000_000, 1 << 50, 1 << 40, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpload(mustPlan(t, tt.plan), tt.docs, tt.used, tt.incoming)
			if !errors.Is(err, tt.want) && !(err == nil && tt.want == nil) {
				t.Fatalf("CanUpload() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCanUploadUltraProNeverDenies(t *testing.T) {
	plan := mustPlan(t, PlanUltraPro)
	for docs := 0; docs < 10_000; docs += 97 {
		if err := CanUpload(plan, docs, int64(docs)*gib, gib); err != nil {
			t.Fatalf("CanUpload(ultraPro, %d docs) = %v, want nil", docs, err)
		}
	}
}

func TestCanDelete(t *testing.T) {
	allowed := map[PlanID]bool{PlanFree: false, PlanBasic: false, PlanPro: true, PlanUltraPro: true}
	for id, ok := range allowed {
		err := CanDelete(mustPlan(t, id))
		if ok && err != nil {
			t.Errorf("CanDelete(%s) = %v, want nil", id, err)
		}
		if !ok && !errors.Is(err, ErrDeletionNotPermitted) {
			t.Errorf("CanDelete(%s) = %v, want ErrDeletionNotPermitted", id, err)
		}
	}
}

func TestRecommendationQuota(t *testing.T) {
	tests := []struct {
		plan PlanID
		want Limit
	}{
		{PlanFree, 0},
		{PlanBasic, 5},
		{PlanPro, 25},
		{PlanUltraPro, Unbounded},
	}
	for _, tt := range tests {
		if got := RecommendationQuota(mustPlan(t, tt.plan)); got != tt.want {
			t.Errorf("RecommendationQuota(%s) = %d, want %d", tt.plan, got, tt.want)
		}
	}
}

func TestMusicEnabled(t *testing.T) {
	enabled := map[PlanID]bool{PlanFree: false, PlanBasic: false, PlanPro: true, PlanUltraPro: true}
	for id, want := range enabled {
		if got := MusicEnabled(mustPlan(t, id)); got != want {
			t.Errorf("MusicEnabled(%s) = %v, want %v", id, got, want)
		}
	}
}

func TestLimitAllows(t *testing.T) {
	if !Unbounded.Allows(1 << 62) {
		t.Fatal("Unbounded.Allows() must always pass")
	}
	if Limit(3).Allows(4) {
		t.Fatal("Limit(3).Allows(4) must deny")
	}
	if !Limit(3).Allows(3) {
		t.Fatal("Limit(3).Allows(3) must pass")
	}
}
