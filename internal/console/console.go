// Package console drives an Environment from a line-oriented text menu.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/ukydev/transport-sim/internal/models"
	"github.com/ukydev/transport-sim/internal/sim"
)

const mainMenu = `========= MAIN MENU =========
1. Register a new vehicle
2. List registered vehicles
3. Create a new mission
4. List active missions
5. Run simulation cycle
6. Show vehicle details
7. Exit
=============================
`

// Console reads menu choices from in and writes prompts and results to out.
// Run must be called at most once.
type Console struct {
	env *sim.Environment
	in  io.Reader
	out io.Writer

	ctx     context.Context
	lines   <-chan string
	readErr error // written before lines is closed
}

// New creates a console over the given environment and streams.
func New(env *sim.Environment, in io.Reader, out io.Writer) *Console {
	return &Console{
		env: env,
		in:  in,
		out: out,
	}
}

// NewObserver returns an observer that prints each event message on its own line.
func NewObserver(w io.Writer) models.Observer {
	return models.ObserverFunc(func(e models.Event) {
		fmt.Fprintln(w, e.Message)
	})
}

// Run shows the menu until the user exits, input ends or ctx is cancelled.
// Cancellation interrupts a pending prompt and counts as a normal exit.
// Command errors are reported and the menu is shown again.
func (c *Console) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	c.ctx = ctx
	c.lines = c.readLines(done)

	for {
		if ctx.Err() != nil {
			return nil
		}
		fmt.Fprint(c.out, mainMenu)
		line, ok := c.prompt("Choose an option: ")
		if !ok {
			return c.stopErr()
		}
		choice, err := strconv.Atoi(line)
		if err != nil {
			fmt.Fprintln(c.out, "Invalid option.")
			continue
		}

		cmd, ok := c.readCommand(sim.Op(choice))
		if !ok {
			continue
		}

		res, err := c.env.Dispatch(cmd)
		if err != nil {
			c.report(err)
			continue
		}
		c.render(cmd, res)
		if res.Exit {
			return nil
		}
	}
}

// readCommand prompts for the arguments of op. It returns false when the
// menu should be shown again without dispatching anything.
func (c *Console) readCommand(op sim.Op) (sim.Command, bool) {
	cmd := sim.Command{Op: op}
	switch op {
	case sim.OpRegisterVehicle:
		fmt.Fprintln(c.out, "Register vehicle - choose a type:")
		for i, k := range models.VehicleKinds {
			fmt.Fprintf(c.out, "%d. %s\n", i+1, k)
		}
		n, ok := c.promptIndex("Option: ", len(models.VehicleKinds))
		if !ok {
			return cmd, false
		}
		id, ok := c.prompt("Vehicle ID: ")
		if !ok {
			return cmd, false
		}
		if n == 0 {
			fmt.Fprintln(c.out, "Invalid option. No vehicle was registered.")
			return cmd, false
		}
		cmd.VehicleKind = models.VehicleKinds[n-1]
		cmd.VehicleID = id

	case sim.OpCreateMission:
		var ok bool
		if cmd.Origin, ok = c.prompt("Mission origin: "); !ok {
			return cmd, false
		}
		if cmd.Destination, ok = c.prompt("Mission destination: "); !ok {
			return cmd, false
		}
		fmt.Fprintln(c.out, "Choose the mission type:")
		fmt.Fprintln(c.out, "1. Land")
		fmt.Fprintln(c.out, "2. Air")
		fmt.Fprintln(c.out, "3. Water")
		n, ok := c.promptIndex("Option: ", len(models.MissionKinds))
		if !ok {
			return cmd, false
		}
		if cmd.VehicleID, ok = c.prompt("Assigned vehicle ID: "); !ok {
			return cmd, false
		}
		if n == 0 {
			fmt.Fprintln(c.out, "Invalid mission type.")
			return cmd, false
		}
		cmd.MissionKind = models.MissionKinds[n-1]

	case sim.OpSimulate:
		return c.readSimulate(cmd)

	case sim.OpShowVehicle:
		var ok bool
		if cmd.VehicleID, ok = c.prompt("Vehicle ID to inspect: "); !ok {
			return cmd, false
		}

	case sim.OpListVehicles, sim.OpListActiveMissions, sim.OpExit:

	default:
		fmt.Fprintln(c.out, "Invalid option.")
		return cmd, false
	}
	return cmd, true
}

func (c *Console) readSimulate(cmd sim.Command) (sim.Command, bool) {
	fmt.Fprintln(c.out, "What would you like to do?")
	fmt.Fprintln(c.out, "1. Simulate all active missions")
	fmt.Fprintln(c.out, "2. Simulate a specific mission")
	n, ok := c.promptIndex("Option: ", 2)
	if !ok {
		return cmd, false
	}
	switch n {
	case 1:
		return cmd, true
	case 2:
	default:
		fmt.Fprintln(c.out, "Invalid option.")
		return cmd, false
	}

	active := c.env.ActiveMissions()
	if len(active) == 0 {
		fmt.Fprintln(c.out, "No active missions to simulate.")
		return cmd, false
	}
	fmt.Fprintln(c.out, "Available active missions:")
	for i, m := range active {
		fmt.Fprintf(c.out, "%d. Origin: %s, Destination: %s (Vehicle: %s)\n", i+1, m.Origin, m.Destination, m.Vehicle.ID)
	}
	idx, ok := c.promptIndex("Select the number of the mission to simulate: ", len(active))
	if !ok {
		return cmd, false
	}
	if idx == 0 {
		fmt.Fprintln(c.out, "Invalid selection. Returning to the main menu.")
		return cmd, false
	}
	cmd.MissionIndex = idx
	return cmd, true
}

func (c *Console) render(cmd sim.Command, res sim.Result) {
	switch cmd.Op {
	case sim.OpRegisterVehicle:
		fmt.Fprintf(c.out, "%s registered successfully.\n", res.Vehicle.Kind)
	case sim.OpListVehicles:
		fmt.Fprintln(c.out, "Registered vehicles:")
		for _, v := range res.Vehicles {
			fmt.Fprintf(c.out, "%s (%s)\n", v.ID, v.Kind)
		}
	case sim.OpCreateMission:
		fmt.Fprintln(c.out, "Mission registered successfully.")
	case sim.OpListActiveMissions:
		fmt.Fprintln(c.out, "Active missions:")
		for _, m := range res.Missions {
			fmt.Fprintf(c.out, "%s -> %s (Vehicle: %s)\n", m.Origin, m.Destination, m.Vehicle.ID)
		}
	case sim.OpShowVehicle:
		v := res.Vehicle
		fmt.Fprintln(c.out, "Vehicle details:")
		fmt.Fprintf(c.out, "ID: %s\n", v.ID)
		fmt.Fprintf(c.out, "Type: %s\n", v.Kind)
		fmt.Fprintf(c.out, "Capacity: %s\n", strconv.FormatFloat(v.Capacity, 'f', 1, 64))
		fmt.Fprintf(c.out, "Location: %s\n", v.Location)
		fmt.Fprintf(c.out, "Capabilities: %s\n", v.Capabilities())
	case sim.OpExit:
		fmt.Fprintln(c.out, "Exiting...")
	}
}

func (c *Console) report(err error) {
	log.WithError(err).Debug("Command failed")
	switch {
	case errors.Is(err, sim.ErrVehicleNotFound):
		fmt.Fprintln(c.out, "Vehicle not found.")
	default:
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}

// readLines scans c.in on its own goroutine so prompts can also wait on the
// context. The goroutine exits at end of input or once done is closed.
func (c *Console) readLines(done <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(c.in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-done:
				return
			}
		}
		c.readErr = sc.Err()
	}()
	return lines
}

// stopErr is the result of Run once a prompt could not be answered.
func (c *Console) stopErr() error {
	if c.ctx.Err() != nil {
		return nil
	}
	// The prompt failed without cancellation, so lines is closed.
	return c.readErr
}

// prompt writes label and reads one trimmed line. It returns false at end of
// input or when the context is cancelled.
func (c *Console) prompt(label string) (string, bool) {
	fmt.Fprint(c.out, label)
	select {
	case <-c.ctx.Done():
		return "", false
	case line, ok := <-c.lines:
		if !ok {
			return "", false
		}
		return strings.TrimSpace(line), true
	}
}

// promptIndex reads a 1-based choice in [1, limit]. Anything else yields 0 so
// callers can report the invalid choice in context; false means end of input.
func (c *Console) promptIndex(label string, limit int) (int, bool) {
	line, ok := c.prompt(label)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > limit {
		return 0, true
	}
	return n, true
}
