package preview

import (
	"fmt"

	"github.com/tbeaumont/crfstudio/internal/domain"
)

// Choice is an option prepared for rendering: its display label and the
// identity recorded into the answer map.
type Choice struct {
	Label    string
	Identity string
}

// OptionIdentity returns the answer-matching identity for an option: its
// value when non-empty, otherwise a deterministic fallback derived from
// the field id and the option's index in the STORED array. The fallback
// must not depend on render order, or previously recorded answers would
// silently stop matching.
func OptionIdentity(fieldID string, opt domain.Option, index int) string {
	if opt.Value != "" {
		return opt.Value
	}
	return fmt.Sprintf("%s-opt-%d", fieldID, index)
}

// Choices prepares a field's options for rendering. Identities are
// assigned over the stored array before blank options are filtered out,
// so filtering never shifts an identity.
func Choices(f domain.Field) []Choice {
	var out []Choice
	for i, opt := range f.Settings.Options {
		if opt.IsBlank() {
			continue
		}
		label := opt.Label
		if label == "" {
			label = opt.Value
		}
		out = append(out, Choice{
			Label:    label,
			Identity: OptionIdentity(f.ID, opt, i),
		})
	}
	return out
}
