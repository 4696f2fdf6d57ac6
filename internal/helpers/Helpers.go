package helpers

import (
	"github.com/manifoldco/promptui"
)

// Confirm asks a y/N question. Anything but an explicit yes, including a
// missing terminal, is a no.
func Confirm(message string) bool {
	prompt := promptui.Prompt{
		Label:     message,
		IsConfirm: true,
	}

	_, err := prompt.Run()

	return err == nil
}
