package builder

import "github.com/aretw0/clicktree/pkg/domain"

// Validate reports the first item that breaks the level rules as a
// *domain.LevelError. An empty list is valid.
func Validate(items []domain.Item) error {
	prev := 0
	for i, it := range items {
		switch {
		case it.Level < 0:
			return &domain.LevelError{Index: i, Level: it.Level, Previous: prev, Reason: "negative level"}
		case i == 0 && it.Level != 0:
			return &domain.LevelError{Index: i, Level: it.Level, Previous: prev, Reason: "first item must be at level 0"}
		case it.Level > prev+1:
			return &domain.LevelError{Index: i, Level: it.Level, Previous: prev, Reason: "level rises by more than one"}
		}
		prev = it.Level
	}
	return nil
}
