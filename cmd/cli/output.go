package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/hairizuan-noorazman/testcase-service/testcase"
)

var (
	statusColors = map[testcase.Status]*color.Color{
		testcase.StatusPending:    color.New(color.FgCyan),
		testcase.StatusInProgress: color.New(color.FgYellow),
		testcase.StatusPassed:     color.New(color.FgGreen),
		testcase.StatusFailed:     color.New(color.FgRed, color.Bold),
	}

	priorityColors = map[testcase.Priority]*color.Color{
		testcase.PriorityHigh:   color.New(color.FgRed),
		testcase.PriorityMedium: color.New(color.FgYellow),
		testcase.PriorityLow:    color.New(color.FgGreen),
	}
)

func printJSON(v interface{}) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to marshal JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

// printRawJSON pretty-prints an API response body as-is.
func printRawJSON(body []byte) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		fmt.Println(string(body))
		return
	}
	printJSON(raw)
}

func printTable(headers []string, rows [][]string) {
	writeTable(os.Stdout, headers, rows)
}

func writeTable(out io.Writer, headers []string, rows [][]string) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(headers, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()
}

func printMessage(msg string) {
	fmt.Println(msg)
}

func printSuccess(msg string) {
	color.New(color.FgGreen).Println(msg)
}

func colorStatus(s testcase.Status) string {
	if c, ok := statusColors[s]; ok {
		return c.Sprint(string(s))
	}
	return string(s)
}

func colorPriority(p testcase.Priority) string {
	if c, ok := priorityColors[p]; ok {
		return c.Sprint(string(p))
	}
	return string(p)
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis when there is room for one.
func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:maxInt(max, 0)])
	}
	return string(r[:max-3]) + "..."
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func confirmAction(prompt string, skipConfirm bool) bool {
	if skipConfirm {
		return true
	}

	fmt.Printf("%s [y/N]: ", prompt)
	scanner := bufio.NewScanner(os.Stdin)
	if scanner.Scan() {
		answer := strings.TrimSpace(strings.ToLower(scanner.Text()))
		return answer == "y" || answer == "yes"
	}
	return false
}
