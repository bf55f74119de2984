package utils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/codevault/lw-compiler/constants/lipgloss"
)

// ConfirmPrompt asks the user a yes/no question and returns their answer.
// An empty answer or EOF counts as no.
func ConfirmPrompt(question string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)

	fmt.Print(lipgloss.BlueSky.Render(fmt.Sprintf("%s [y/N] ", question)))

	userInput, err := reader.ReadString('\n')
	if err != nil {
		if err == io.EOF {
			return false, nil
		}
		return false, fmt.Errorf("error reading input: %v", err)
	}

	answer := strings.ToLower(strings.TrimSpace(userInput))
	return answer == "y" || answer == "yes", nil
}
