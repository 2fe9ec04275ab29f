// Package shell turns user-triggered actions into calls on the services and
// reports every outcome through a Notifier.
package shell

import (
	"fmt"
	"io"
	"sync"
)

// Notification titles
const (
	TitleInputError             = "Input Error"
	TitleLoginFailed            = "Login Failed"
	TitleRegistrationFailed     = "Registration Failed"
	TitleRegistrationSuccessful = "Registration Successful"
	TitleError                  = "Error"
	TitleSuccess                = "Success"
	TitleExportSuccessful       = "Export Successful"
)

// Notifier shows a message to the user. Warn is for failures, Inform for
// confirmations.
type Notifier interface {
	Warn(title, message string)
	Inform(title, message string)
}

// ConsoleNotifier writes notifications as "[title] message" lines
type ConsoleNotifier struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleNotifier creates a ConsoleNotifier writing to out
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

func (n *ConsoleNotifier) Warn(title, message string) {
	n.print(title, message)
}

func (n *ConsoleNotifier) Inform(title, message string) {
	n.print(title, message)
}

func (n *ConsoleNotifier) print(title, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	fmt.Fprintf(n.out, "[%s] %s\n", title, message)
}
