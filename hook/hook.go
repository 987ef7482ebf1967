package hook

import "fmt"

// Interface is a try/catch/finally triple for code that must always run its
// cleanup, panics included.
type Interface interface {
	// Try runs the guarded work.
	Try() error
	// Catch handles the error returned by Try and may replace it.
	Catch(err error) error
	// Finally always runs, after Try and Catch.
	Finally()
}

func Call(hook Interface) (err error) {
	if hook == nil {
		return fmt.Errorf("hook cannot be nil")
	}

	defer hook.Finally()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic occurred during hook execution: %v", r)
		}
	}()

	tryErr := hook.Try()
	if tryErr != nil {
		err = hook.Catch(tryErr)
		return err
	}

	return nil
}
