package domain_test

import (
	"testing"

	"github.com/jonesrussell/gobrief/internal/domain"
)

func TestFingerprint_NormalizesTitle(t *testing.T) {
	t.Parallel()

	a := domain.Event{Title: "Russian invasion of Ukraine"}
	b := domain.Event{Title: "  russian INVASION of ukraine "}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("expected equal fingerprints for titles differing only in case and whitespace")
	}
}

func TestFingerprint_DistinctTitles(t *testing.T) {
	t.Parallel()

	a := domain.Event{Title: "Election in France"}
	b := domain.Event{Title: "Election in Germany"}

	if a.Fingerprint() == b.Fingerprint() {
		t.Errorf("expected different fingerprints for different titles")
	}
}

func TestFingerprint_IgnoresText(t *testing.T) {
	t.Parallel()

	a := domain.Event{Title: "Summit", Text: "first wording"}
	b := domain.Event{Title: "Summit", Text: "updated wording"}

	if a.Fingerprint() != b.Fingerprint() {
		t.Errorf("expected fingerprint to depend on the title only")
	}
}
