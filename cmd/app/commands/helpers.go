// Package commands contains CLI command implementations for the application.
package commands

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	budgetDomain "github.com/allisson/budgets/internal/budget/domain"
	cryptoDomain "github.com/allisson/budgets/internal/crypto/domain"
	apperrors "github.com/allisson/budgets/internal/errors"
)

// Output formats accepted by the --format flag.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// DecryptionErrorMarker replaces a field that could not be decrypted in text output.
const DecryptionErrorMarker = "[Decryption Error]"

// IOTuple holds reader and writers for commands, allowing for testing.
// Prompts go to PromptWriter so that Writer only carries command output.
type IOTuple struct {
	Reader       io.Reader
	Writer       io.Writer
	PromptWriter io.Writer
}

// DefaultIO returns an IOTuple with os.Stdin, os.Stdout and os.Stderr for prompts.
func DefaultIO() IOTuple {
	return IOTuple{
		Reader:       os.Stdin,
		Writer:       os.Stdout,
		PromptWriter: os.Stderr,
	}
}

// ErrorMessage turns an error returned by a command into the line shown to the user.
func ErrorMessage(err error) string {
	switch {
	case apperrors.Is(err, cryptoDomain.ErrKeyCorrupt):
		return fmt.Sprintf("key file is corrupt or unreadable: %v", err)
	case apperrors.Is(err, budgetDomain.ErrDuplicateBudgetName):
		return "a budget with that name already exists"
	case apperrors.Is(err, budgetDomain.ErrBudgetNotFound):
		return "budget not found"
	case apperrors.Is(err, budgetDomain.ErrItemNotFound):
		return "item not found"
	case apperrors.Is(err, apperrors.ErrInvalidInput):
		return fmt.Sprintf("invalid input: %v", err)
	default:
		return err.Error()
	}
}

// PrintError writes a red failure line for err.
func PrintError(writer io.Writer, err error) {
	_, _ = fmt.Fprintf(writer, "%s %s\n", color.RedString("✗"), ErrorMessage(err))
}

// printSuccess writes a green success line.
func printSuccess(writer io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(writer, "%s %s\n", color.GreenString("✓"), fmt.Sprintf(format, args...))
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(writer io.Writer, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, _ = fmt.Fprintln(writer, string(jsonBytes))
	return nil
}

// confirm asks a yes/no question on the prompt writer and reports whether the
// answer was y or yes. Without a prompt writer the question goes to stderr.
func confirm(io IOTuple, prompt string) (bool, error) {
	promptWriter := io.PromptWriter
	if promptWriter == nil {
		promptWriter = os.Stderr
	}
	_, _ = fmt.Fprintf(promptWriter, "%s (y/n): ", prompt)

	reader := bufio.NewReader(io.Reader)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}
