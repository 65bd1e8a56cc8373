// internal/dispatcher/dispatcher.go
package dispatcher

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/quadlink/linkmon/internal/monitor"
)

// Actions is the exact contract the dispatcher drives.
type Actions interface {
	RunDiagnosticProbe()
	SendSerialCommand(text string) bool
}

const prompt = "\nEnter command (help, test, power, quit): "

// Run reads operator commands line by line until quit or end of input.
// Commands are matched exactly after trimming and lowercasing. The loop
// never mutates connection status itself; everything goes through a.
func Run(in io.Reader, out io.Writer, a Actions) {
	sc := bufio.NewScanner(in)

	for {
		fmt.Fprint(out, prompt)

		if !sc.Scan() {
			// End of input behaves like quit.
			return
		}

		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "quit":
			return

		case "help":
			fmt.Fprintln(out, "Available commands:")
			fmt.Fprintln(out, "  help   - show this help")
			fmt.Fprintln(out, "  test   - run the diagnostic probe")
			fmt.Fprintln(out, "  power  - send a power test to the serial peripheral")
			fmt.Fprintln(out, "  quit   - exit")

		case "test":
			a.RunDiagnosticProbe()

		case "power":
			if !a.SendSerialCommand(monitor.PowerTestCommand) {
				fmt.Fprintln(out, "power command rejected - serial peripheral not connected")
			}

		default:
			fmt.Fprintln(out, "Unknown command. Type 'help' for available commands.")
		}
	}
}
