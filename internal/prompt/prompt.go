package prompt

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"
)

// ConfirmApply asks the operator to confirm before mutating the
// database. Returns false without error when the operator declines.
func ConfirmApply(operationCount int) (bool, error) {
	prompt := promptui.Prompt{
		Label:     fmt.Sprintf("Apply %d schema operation(s)", operationCount),
		IsConfirm: true,
	}

	_, err := prompt.Run()
	if err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return false, nil
		}
		return false, fmt.Errorf("confirmation prompt failed: %w", err)
	}

	return true, nil
}

// SelectProfile asks the operator to pick one of the available profile
// names. Profiles are always selected explicitly, never inferred.
func SelectProfile(names []string) (string, error) {
	prompt := promptui.Select{
		Label: "Select schema profile",
		Items: names,
	}

	i, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("profile selection failed: %w", err)
	}

	return names[i], nil
}
