// Package client implements the interactive terminal client.
package client

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// Display renders server messages and the board with configured colors.
type Display struct {
	serverColor *color.Color
	gameColor   *color.Color
	winColor    *color.Color
	loseColor   *color.Color
	errorColor  *color.Color
	infoColor   *color.Color
	markXColor  *color.Color
	markOColor  *color.Color
}

// NewDisplay creates a new display instance with configured colors.
func NewDisplay() *Display {
	return &Display{
		serverColor: color.New(color.FgCyan, color.Bold),
		gameColor:   color.New(color.FgYellow, color.Bold),
		winColor:    color.New(color.FgGreen, color.Bold),
		loseColor:   color.New(color.FgRed, color.Bold),
		errorColor:  color.New(color.FgRed),
		infoColor:   color.New(color.FgWhite),
		markXColor:  color.New(color.FgCyan, color.Bold),
		markOColor:  color.New(color.FgMagenta, color.Bold),
	}
}

// PrintBanner displays the client banner.
func (that *Display) PrintBanner() {
	that.gameColor.Println(`
╔══════════════════════════════╗
║      TIC-TAC-TOE ONLINE      ║
╚══════════════════════════════╝`)
}

func (that *Display) PrintServer(format string, args ...any) {
	that.serverColor.Printf("[server] "+format+"\n", args...)
}

func (that *Display) PrintGame(format string, args ...any) {
	that.gameColor.Printf("[game] "+format+"\n", args...)
}

func (that *Display) PrintWin(format string, args ...any) {
	that.winColor.Printf("[game] "+format+"\n", args...)
}

func (that *Display) PrintLose(format string, args ...any) {
	that.loseColor.Printf("[game] "+format+"\n", args...)
}

func (that *Display) PrintError(format string, args ...any) {
	that.errorColor.Printf("[error] "+format+"\n", args...)
}

func (that *Display) PrintInfo(format string, args ...any) {
	that.infoColor.Printf(format+"\n", args...)
}

// PrintBoard renders a nine-character encoded board as a 3x3 grid.
func (that *Display) PrintBoard(encoded string) {
	if len(encoded) != 9 {
		that.PrintError("malformed board: %q", encoded)
		return
	}

	var sb strings.Builder

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			switch encoded[y*3+x] {
			case '1':
				sb.WriteString(that.markXColor.Sprint(" X "))
			case '2':
				sb.WriteString(that.markOColor.Sprint(" O "))
			default:
				sb.WriteString("   ")
			}
			if x < 2 {
				sb.WriteString("|")
			}
		}
		sb.WriteString("\n")
		if y < 2 {
			sb.WriteString("---+---+---\n")
		}
	}

	fmt.Print(sb.String())
}
