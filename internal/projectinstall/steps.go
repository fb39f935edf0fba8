package projectinstall

import "fmt"

// runSteps runs steps in order and stops at the first error.
func runSteps(steps []func() error) error {
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

// bestEffort wraps op so that its failure is reported to the warning writer and never returned.
// format receives the target directory and the error.
func (m *Manager) bestEffort(format string, dir string, op func() error) func() error {
	return func() error {
		if err := op(); err != nil {
			_, _ = fmt.Fprintf(m.warnWriter, format, dir, err)
		}
		return nil
	}
}

func skipStep() error {
	return nil
}
