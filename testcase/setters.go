package testcase

// SetTitle returns an UpdateSetter that sets the test case's title.
func SetTitle(title string) UpdateSetter {
	return func(tc *TestCase) error {
		if err := validateTitle(title); err != nil {
			return err
		}
		tc.Title = title
		return nil
	}
}

// SetDescription returns an UpdateSetter that sets the test case's description.
func SetDescription(description string) UpdateSetter {
	return func(tc *TestCase) error {
		if err := validateDescription(description); err != nil {
			return err
		}
		tc.Description = description
		return nil
	}
}

// SetStatus returns an UpdateSetter that sets the test case's status.
func SetStatus(status Status) UpdateSetter {
	return func(tc *TestCase) error {
		if !status.IsValid() {
			return ErrInvalidStatus
		}
		tc.Status = status
		return nil
	}
}

// SetPriority returns an UpdateSetter that sets the test case's priority.
func SetPriority(priority Priority) UpdateSetter {
	return func(tc *TestCase) error {
		if !priority.IsValid() {
			return ErrUnknownPriority
		}
		tc.Priority = priority
		return nil
	}
}
