// Package menu implements the interactive controller loop: it reads one
// numbered choice at a time, dispatches to the matching operation, and keeps
// looping until the quit choice. Domain errors are reported and recovered;
// nothing here terminates the process.
package menu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/config"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/mail"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/internal/sqlite"
	"github.com/mariopl2020/goods-order-autoreminder-by-email/pkg/types"
)

// action is the closed set of menu operations. The numeric values are the
// menu keys the user types.
type action int

const (
	actionQuit          action = 0
	actionListDue       action = 1
	actionSendReminders action = 2
	actionListAll       action = 3
	actionAdd           action = 4
	actionChangeStock   action = 5
	actionSeed          action = 6
	actionReset         action = 7
	actionExport        action = 8
)

// parseAction maps one input line to an action. A line that is not an integer
// or not a known key is ErrUnknownChoice.
func parseAction(line string) (action, error) {
	n, err := strconv.Atoi(line)
	if err != nil {
		return 0, fmt.Errorf("choice %q: %w", line, types.ErrUnknownChoice)
	}
	a := action(n)
	if a < actionQuit || a > actionExport {
		return 0, fmt.Errorf("choice %d: %w", n, types.ErrUnknownChoice)
	}
	return a, nil
}

// Params collects the controller's collaborators. Store, Config, In, and Out
// are required; Clock and NewSession default to the real thing.
type Params struct {
	Store  *sqlite.Store
	Config *config.Config
	In     io.Reader
	Out    io.Writer

	// Clock supplies "today" for due checks and review-date refreshes.
	Clock func() time.Time

	// NewSession opens a mail session for one reminder batch.
	NewSession func() (mail.Session, error)
}

// Controller runs the menu loop against an already-opened store. The store's
// lifetime is owned by the caller.
type Controller struct {
	store      *sqlite.Store
	cfg        *config.Config
	in         *bufio.Scanner
	out        io.Writer
	clock      func() time.Time
	newSession func() (mail.Session, error)
}

// New builds a Controller from Params, filling in defaults.
func New(p Params) *Controller {
	c := &Controller{
		store:      p.Store,
		cfg:        p.Config,
		in:         bufio.NewScanner(p.In),
		out:        p.Out,
		clock:      p.Clock,
		newSession: p.NewSession,
	}
	if c.clock == nil {
		c.clock = time.Now
	}
	if c.newSession == nil {
		c.newSession = func() (mail.Session, error) {
			return mail.DialSMTP(c.cfg.SMTPHost, c.cfg.SMTPPort, c.cfg.AdminEmail)
		}
	}
	return c
}

// Startup performs the flag-driven operations that run before the loop: an
// optional storage reset, then an optional interactive add. A failed reset is
// fatal (the store is unusable); a failed add is reported like any menu
// operation and does not prevent the loop from starting.
func (c *Controller) Startup(resetDB, add bool) error {
	if resetDB {
		if err := c.reset(); err != nil {
			return fmt.Errorf("reset storage: %w", err)
		}
	}
	if add {
		if err := c.Add(); err != nil {
			c.reportError(err)
		}
	}
	return nil
}

// Run loops until the quit choice or end of input. Every handled error prints
// a message and returns control to the prompt.
func (c *Controller) Run() error {
	for {
		c.printMenu()
		line, ok := c.readLine()
		if !ok {
			// End of input quits like choice 0.
			return c.in.Err()
		}

		act, err := parseAction(line)
		if err != nil {
			c.reportError(err)
			continue
		}
		if act == actionQuit {
			return nil
		}
		if err := c.dispatch(act); err != nil {
			c.reportError(err)
		}
	}
}

func (c *Controller) dispatch(act action) error {
	switch act {
	case actionListDue:
		return c.listDue()
	case actionSendReminders:
		return c.sendReminders()
	case actionListAll:
		return c.listAll()
	case actionAdd:
		return c.Add()
	case actionChangeStock:
		return c.changeStock()
	case actionSeed:
		return c.seed()
	case actionReset:
		return c.reset()
	case actionExport:
		return c.export()
	default:
		return fmt.Errorf("choice %d: %w", act, types.ErrUnknownChoice)
	}
}

func (c *Controller) printMenu() {
	fmt.Fprint(c.out, `
Choose option:
1 - Show materials to review
2 - Send email reminders
3 - Show all materials
4 - Add new material
5 - Change material stock
6 - Add sample materials
7 - Reset database
8 - Export stock table to xlsx
0 - Exit
`)
}

// readLine reads one trimmed input line. ok is false at end of input.
func (c *Controller) readLine() (line string, ok bool) {
	if !c.in.Scan() {
		return "", false
	}
	return trimmed(c.in.Text()), true
}

// prompt prints a question and reads the answer line.
func (c *Controller) prompt(question string) (string, error) {
	fmt.Fprintln(c.out, question)
	line, ok := c.readLine()
	if !ok {
		return "", fmt.Errorf("input closed: %w", io.ErrUnexpectedEOF)
	}
	return line, nil
}

// reportError prints the human-readable message for a recoverable error.
func (c *Controller) reportError(err error) {
	switch {
	case errors.Is(err, types.ErrUnknownChoice):
		fmt.Fprintln(c.out, "Unknown option. Try again!")
	case errors.Is(err, types.ErrValidation):
		fmt.Fprintln(c.out, "Entered wrong value. Try again!")
	case errors.Is(err, types.ErrNotFound):
		fmt.Fprintln(c.out, "Provided SKU does not exist. Try again")
	case errors.Is(err, types.ErrAuthentication):
		fmt.Fprintln(c.out, "Email login failed. No reminders were sent.")
	default:
		log.Error().Err(err).Msg("operation failed")
		fmt.Fprintf(c.out, "Operation failed: %v\n", err)
	}
}
