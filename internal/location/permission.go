package location

import (
	"context"
	"strings"
)

type Permission string

const (
	PermissionCoarse Permission = "coarse"
	PermissionFine   Permission = "fine"
)

// Report is the outcome of one permission request.
type Report struct {
	AllGranted           bool
	AnyPermanentlyDenied bool
}

// Prompter asks for a set of permissions.
type Prompter interface {
	RequestPermissions(ctx context.Context, perms []Permission) (Report, error)
}

// ConfigPrompter answers permission requests from a fixed grant list, which
// is how a headless install records the user's choice.
type ConfigPrompter struct {
	granted           map[Permission]bool
	permanentlyDenied map[Permission]bool
}

func NewConfigPrompter(granted, permanentlyDenied []string) *ConfigPrompter {
	return &ConfigPrompter{
		granted:           toSet(granted),
		permanentlyDenied: toSet(permanentlyDenied),
	}
}

func (p *ConfigPrompter) RequestPermissions(_ context.Context, perms []Permission) (Report, error) {
	report := Report{AllGranted: true}
	for _, perm := range perms {
		if !p.granted[perm] {
			report.AllGranted = false
		}
		if p.permanentlyDenied[perm] {
			report.AnyPermanentlyDenied = true
		}
	}
	return report, nil
}

func toSet(values []string) map[Permission]bool {
	set := make(map[Permission]bool, len(values))
	for _, v := range values {
		set[Permission(strings.ToLower(strings.TrimSpace(v)))] = true
	}
	return set
}
