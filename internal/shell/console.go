package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/Donny1114/Device-Management-System/internal/model"
)

var errQuit = errors.New("quit")

// Console is the interactive terminal front end: a login/register screen
// followed by the inventory menu.
type Console struct {
	in      *bufio.Reader
	out     io.Writer
	actions *Actions
}

// NewConsole creates a Console reading commands from in
func NewConsole(in io.Reader, out io.Writer, actions *Actions) *Console {
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		actions: actions,
	}
}

// Run blocks until the user quits or input ends
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "--- DEVICE INVENTORY ---")

	session, err := c.authScreen(ctx)
	if err != nil {
		if errors.Is(err, errQuit) {
			return nil
		}
		return err
	}

	err = c.inventoryScreen(ctx, session)
	if errors.Is(err, errQuit) {
		return nil
	}
	return err
}

func (c *Console) authScreen(ctx context.Context) (*model.Session, error) {
	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1. Login")
		fmt.Fprintln(c.out, "2. Register")
		fmt.Fprintln(c.out, "3. Quit")
		choice, err := c.prompt("Choice: ")
		if err != nil {
			return nil, err
		}

		switch choice {
		case "1":
			username, err := c.prompt("Username: ")
			if err != nil {
				return nil, err
			}
			password, err := c.promptSecret("Password: ")
			if err != nil {
				return nil, err
			}
			if session, ok := c.actions.Login(ctx, username, password); ok {
				return session, nil
			}
		case "2":
			username, err := c.prompt("Username: ")
			if err != nil {
				return nil, err
			}
			password, err := c.promptSecret("Password: ")
			if err != nil {
				return nil, err
			}
			confirm, err := c.promptSecret("Confirm Password: ")
			if err != nil {
				return nil, err
			}
			c.actions.Register(ctx, username, password, confirm)
		case "3":
			return nil, errQuit
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) inventoryScreen(ctx context.Context, session *model.Session) error {
	fmt.Fprintf(c.out, "\nLogged in as %s\n", session.Username)
	c.listDevices(ctx)

	for {
		fmt.Fprintln(c.out)
		fmt.Fprintln(c.out, "1. List devices")
		fmt.Fprintln(c.out, "2. Add device")
		fmt.Fprintln(c.out, "3. Export report (.xlsx)")
		fmt.Fprintln(c.out, "4. Export report (.pdf)")
		fmt.Fprintln(c.out, "5. Export report (.csv)")
		fmt.Fprintln(c.out, "6. Quit")
		choice, err := c.prompt("Choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.listDevices(ctx)
		case "2":
			req, err := c.readDevice()
			if err != nil {
				return err
			}
			if _, ok := c.actions.AddDevice(ctx, req); ok {
				c.listDevices(ctx)
			}
		case "3", "4", "5":
			path, err := c.prompt("Save report to: ")
			if err != nil {
				return err
			}
			switch choice {
			case "3":
				c.actions.ExportSpreadsheet(ctx, path)
			case "4":
				c.actions.ExportDocument(ctx, path)
			default:
				c.actions.ExportCSV(ctx, path)
			}
		case "6":
			return errQuit
		default:
			fmt.Fprintln(c.out, "Invalid choice.")
		}
	}
}

func (c *Console) readDevice() (model.AddDeviceRequest, error) {
	var req model.AddDeviceRequest
	var err error

	if req.Name, err = c.prompt("Name: "); err != nil {
		return req, err
	}
	for i, t := range model.DeviceTypes {
		fmt.Fprintf(c.out, "  %d. %s\n", i+1, t)
	}
	typeChoice, err := c.prompt(fmt.Sprintf("Type [1-%d]: ", len(model.DeviceTypes)))
	if err != nil {
		return req, err
	}
	req.Type = typeChoice
	if n, convErr := strconv.Atoi(typeChoice); convErr == nil && n >= 1 && n <= len(model.DeviceTypes) {
		req.Type = model.DeviceTypes[n-1]
	}
	if req.Count, err = c.prompt("Count: "); err != nil {
		return req, err
	}
	if req.SerialNumber, err = c.prompt("Serial Number: "); err != nil {
		return req, err
	}
	if req.Issues, err = c.prompt("Issues: "); err != nil {
		return req, err
	}
	if req.Comment, err = c.prompt("Comment: "); err != nil {
		return req, err
	}
	return req, nil
}

func (c *Console) listDevices(ctx context.Context) {
	devices, ok := c.actions.LoadDevices(ctx)
	if !ok {
		return
	}
	if len(devices) == 0 {
		fmt.Fprintln(c.out, "No devices.")
		return
	}

	w := tabwriter.NewWriter(c.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tCOUNT\tSERIAL\tISSUES\tCOMMENT")
	for _, d := range devices {
		fmt.Fprintln(w, strings.Join(d.Row(), "\t"))
	}
	w.Flush()
}

// prompt reads one line with surrounding whitespace removed
func (c *Console) prompt(label string) (string, error) {
	line, err := c.readLine(label)
	return strings.TrimSpace(line), err
}

// promptSecret reads one line as typed, dropping only the line ending
func (c *Console) promptSecret(label string) (string, error) {
	return c.readLine(label)
}

// readLine returns the next line without its line ending. End of input is
// reported as errQuit.
func (c *Console) readLine(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	line = strings.TrimRight(line, "\r\n")
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line != "" {
				return line, nil
			}
			fmt.Fprintln(c.out)
			return "", errQuit
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}
